package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/raselworshop/pet-adoption-server/internal/model"
)

type pgPetRepository struct {
	pool *pgxpool.Pool
}

// NewPgPetRepository returns a PostgreSQL-backed PetRepository.
func NewPgPetRepository(pool *pgxpool.Pool) PetRepository {
	return &pgPetRepository{pool: pool}
}

const petSelectCols = `id, name, category, description, image_url,
	owner_email, adopted, created_at, updated_at`

func scanPet(scan func(...any) error) (*model.Pet, error) {
	p := &model.Pet{}
	if err := scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.ImageURL,
		&p.OwnerEmail, &p.Adopted, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return p, nil
}

func (r *pgPetRepository) Create(ctx context.Context, pet *model.Pet) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO pets (name, category, description, image_url, owner_email)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, adopted, created_at, updated_at`,
		pet.Name, pet.Category, pet.Description, pet.ImageURL, pet.OwnerEmail,
	).Scan(&pet.ID, &pet.Adopted, &pet.CreatedAt, &pet.UpdatedAt)
}

func (r *pgPetRepository) FindByID(ctx context.Context, id string) (*model.Pet, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+petSelectCols+` FROM pets WHERE id = $1`, id)
	return scanPet(row.Scan)
}

func (r *pgPetRepository) List(ctx context.Context, filter model.PetFilter) ([]*model.Pet, error) {
	where := []string{}
	args := []any{}
	argIdx := 1

	if filter.Adopted != nil {
		where = append(where, fmt.Sprintf("adopted = $%d", argIdx))
		args = append(args, *filter.Adopted)
		argIdx++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", argIdx))
		args = append(args, filter.Search)
		argIdx++
	}
	if filter.Category != "" {
		where = append(where, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, filter.Category)
		argIdx++
	}

	query := `SELECT ` + petSelectCols + ` FROM pets`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []*model.Pet
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

func (r *pgPetRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]*model.Pet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+petSelectCols+` FROM pets WHERE owner_email = $1 ORDER BY created_at DESC`,
		ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []*model.Pet
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

func (r *pgPetRepository) Patch(ctx context.Context, id string, patch model.PetPatch) error {
	setClauses := []string{}
	args := []any{}
	argIdx := 1

	if patch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *patch.Name)
		argIdx++
	}
	if patch.Category != nil {
		setClauses = append(setClauses, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *patch.Category)
		argIdx++
	}
	if patch.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *patch.Description)
		argIdx++
	}
	if patch.ImageURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("image_url = $%d", argIdx))
		args = append(args, *patch.ImageURL)
		argIdx++
	}
	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE pets SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argIdx)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgPetRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAdopted distinguishes "row absent" from "value already as requested" by
// matched-vs-modified counts: the conditional update reports a change, and a
// zero-row update falls back to an existence check.
func (r *pgPetRepository) SetAdopted(ctx context.Context, id string, adopted bool) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pets SET adopted = $1, updated_at = NOW() WHERE id = $2 AND adopted <> $1`,
		adopted, id)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, ErrNotFound
	}
	return false, nil
}

func (r *pgPetRepository) CountByCategory(ctx context.Context) ([]*model.PetCategoryCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category,
		        COUNT(*)::int AS total,
		        COUNT(*) FILTER (WHERE adopted)::int AS adopted
		 FROM pets
		 GROUP BY category
		 ORDER BY total DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*model.PetCategoryCount
	for rows.Next() {
		c := &model.PetCategoryCount{}
		if err := rows.Scan(&c.Category, &c.Total, &c.Adopted); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
