package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/raselworshop/pet-adoption-server/internal/model"
)

// PgUserRepository is the PostgreSQL implementation of UserRepository.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgUserRepository returns a PostgreSQL-backed UserRepository.
func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

// Ping verifies database connectivity (DB interface).
func (r *PgUserRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

const userSelectCols = `id, email, COALESCE(provider_id, ''), name,
	COALESCE(password_hash, ''), role, banned, created_at, updated_at`

func scanUser(scan func(...any) error) (*model.User, error) {
	u := &model.User{}
	if err := scan(
		&u.ID, &u.Email, &u.ProviderID, &u.Name,
		&u.PasswordHash, &u.Role, &u.Banned, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return u, nil
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE id = $1`, id)
	return scanUser(row.Scan)
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE email = $1`, email)
	return scanUser(row.Scan)
}

func (r *PgUserRepository) FindByProviderID(ctx context.Context, providerID string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE provider_id = $1`, providerID)
	return scanUser(row.Scan)
}

// CreateIfAbsent inserts the user atomically. The unique constraints on email
// and provider_id arbitrate concurrent identical registrations; when the row
// already exists nothing is written and created=false is returned.
func (r *PgUserRepository) CreateIfAbsent(ctx context.Context, user *model.User) (bool, error) {
	role := user.Role
	if role == "" {
		role = model.RoleMember
	}
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO users (email, provider_id, name, password_hash, role)
		 VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5)
		 ON CONFLICT DO NOTHING`,
		user.Email, user.ProviderID, user.Name, user.PasswordHash, role)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	row := r.pool.QueryRow(ctx,
		`SELECT id, role, created_at, updated_at FROM users WHERE email = $1`, user.Email)
	if err := row.Scan(&user.ID, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return false, fmt.Errorf("read back created user: %w", err)
	}
	return true, nil
}

func (r *PgUserRepository) UpdateEmailByProviderID(ctx context.Context, providerID, email string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $1, updated_at = NOW() WHERE provider_id = $2`,
		email, providerID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns users ordered by created_at desc.
func (r *PgUserRepository) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userSelectCols+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgUserRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET banned = $1, updated_at = NOW() WHERE id = $2`,
		banned, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) SetRole(ctx context.Context, id string, role string) error {
	if role != model.RoleMember && role != model.RoleAdmin {
		return fmt.Errorf("invalid role: %s", role)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`,
		role, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
