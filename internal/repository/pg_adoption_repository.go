package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/raselworshop/pet-adoption-server/internal/model"
)

type pgAdoptionRepository struct {
	pool *pgxpool.Pool
}

// NewPgAdoptionRepository returns a PostgreSQL-backed AdoptionRepository.
func NewPgAdoptionRepository(pool *pgxpool.Pool) AdoptionRepository {
	return &pgAdoptionRepository{pool: pool}
}

const requestSelectCols = `id, pet_id, pet_name, pet_image, adopter_name,
	adopter_email, adopter_phone, adopter_address, status, created_at, updated_at`

func scanRequest(scan func(...any) error) (*model.AdoptionRequest, error) {
	req := &model.AdoptionRequest{}
	if err := scan(
		&req.ID, &req.PetID, &req.PetName, &req.PetImage, &req.AdopterName,
		&req.AdopterEmail, &req.AdopterPhone, &req.AdopterAddress,
		&req.Status, &req.CreatedAt, &req.UpdatedAt,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return req, nil
}

// Create inserts through a select on the pet row, so a request cannot land
// on a pet that was adopted between the caller's availability check and the
// insert.
func (r *pgAdoptionRepository) Create(ctx context.Context, req *model.AdoptionRequest) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO adoption_requests
		 (pet_id, pet_name, pet_image, adopter_name, adopter_email, adopter_phone, adopter_address)
		 SELECT p.id, $2, $3, $4, $5, $6, $7
		 FROM pets p
		 WHERE p.id = $1 AND NOT p.adopted
		 RETURNING id, status, created_at, updated_at`,
		req.PetID, req.PetName, req.PetImage,
		req.AdopterName, req.AdopterEmail, req.AdopterPhone, req.AdopterAddress,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicate
		}
		return mapNoRows(err)
	}
	return nil
}

func (r *pgAdoptionRepository) FindByID(ctx context.Context, id string) (*model.AdoptionRequest, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+requestSelectCols+` FROM adoption_requests WHERE id = $1`, id)
	return scanRequest(row.Scan)
}

func (r *pgAdoptionRepository) ListByAdopter(ctx context.Context, adopterEmail string, limit, offset int) ([]*model.AdoptionRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+requestSelectCols+`
		 FROM adoption_requests
		 WHERE adopter_email = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		adopterEmail, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *pgAdoptionRepository) ListByPetOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]*model.AdoptionRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+prefixCols(requestSelectCols, "ar.")+`
		 FROM adoption_requests ar
		 JOIN pets p ON p.id = ar.pet_id
		 WHERE p.owner_email = $1
		 ORDER BY ar.created_at DESC
		 LIMIT $2 OFFSET $3`,
		ownerEmail, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]*model.AdoptionRequest, error) {
	var list []*model.AdoptionRequest
	for rows.Next() {
		req, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// prefixCols qualifies every column in a comma-separated list with the given
// table alias, for joined queries reusing the shared column list.
func prefixCols(cols, prefix string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = prefix + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// Resolve runs the compound transition in one transaction: the request moves
// out of pending, and on accept the pet is marked adopted and every sibling
// pending request is rejected. Either all of it commits or none of it does,
// so status=accepted with adopted=false is never observable.
func (r *pgAdoptionRepository) Resolve(ctx context.Context, id string, status string) error {
	if status != model.RequestAccepted && status != model.RequestRejected {
		return fmt.Errorf("invalid resolution status: %s", status)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var petID string
	err = tx.QueryRow(ctx,
		`UPDATE adoption_requests SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND status = 'pending'
		 RETURNING pet_id`,
		status, id).Scan(&petID)
	if err != nil {
		return mapNoRows(err)
	}

	if status == model.RequestAccepted {
		tag, err := tx.Exec(ctx,
			`UPDATE pets SET adopted = TRUE, updated_at = NOW() WHERE id = $1`, petID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("accept request %s: pet %s missing: %w", id, petID, ErrNotFound)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE adoption_requests SET status = 'rejected', updated_at = NOW()
			 WHERE pet_id = $1 AND status = 'pending' AND id <> $2`,
			petID, id); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *pgAdoptionRepository) Cancel(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE adoption_requests SET status = 'cancelled', updated_at = NOW()
		 WHERE id = $1 AND status = 'pending'`,
		id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
