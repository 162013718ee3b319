package repository

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/raselworshop/pet-adoption-server/internal/model"
)

type pgCampaignRepository struct {
	pool *pgxpool.Pool
}

// NewPgCampaignRepository returns a PostgreSQL-backed CampaignRepository.
func NewPgCampaignRepository(pool *pgxpool.Pool) CampaignRepository {
	return &pgCampaignRepository{pool: pool}
}

const campaignSelectCols = `id, name, category, description, image_url,
	target_amount, donated_amount, paused, owner_email, created_at, updated_at`

func scanCampaign(scan func(...any) error) (*model.Campaign, error) {
	c := &model.Campaign{}
	if err := scan(
		&c.ID, &c.Name, &c.Category, &c.Description, &c.ImageURL,
		&c.TargetAmount, &c.DonatedAmount, &c.Paused, &c.OwnerEmail,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return c, nil
}

func (r *pgCampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO campaigns (name, category, description, image_url, target_amount, owner_email)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, donated_amount, paused, created_at, updated_at`,
		c.Name, c.Category, c.Description, c.ImageURL, c.TargetAmount, c.OwnerEmail,
	).Scan(&c.ID, &c.DonatedAmount, &c.Paused, &c.CreatedAt, &c.UpdatedAt)
}

// FindByID loads the campaign and its donor entries, oldest donation first.
func (r *pgCampaignRepository) FindByID(ctx context.Context, id string) (*model.Campaign, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+campaignSelectCols+` FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row.Scan)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, campaign_id, donor_name, donor_email, user_email, amount, transaction_id, created_at
		 FROM donations
		 WHERE campaign_id = $1
		 ORDER BY created_at ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	donors := []*model.Donor{}
	for rows.Next() {
		d := &model.Donor{}
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.Name, &d.Email, &d.UserEmail,
			&d.Amount, &d.TransactionID, &d.CreatedAt); err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	c.Donors = donors
	return c, nil
}

func (r *pgCampaignRepository) List(ctx context.Context, limit, offset int) (*model.CampaignListResult, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM campaigns`).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignSelectCols+`
		 FROM campaigns
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows.Scan)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &model.CampaignListResult{
		Campaigns: campaigns,
		HasMore:   offset+len(campaigns) < total,
	}, nil
}

// Random returns a window of campaigns starting at a random offset, the same
// cheap sampling the listing page uses for its "show me a few" cards.
func (r *pgCampaignRepository) Random(ctx context.Context, limit int) ([]*model.Campaign, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM campaigns`).Scan(&total); err != nil {
		return nil, err
	}
	skip := 0
	if total > 0 {
		skip = rand.Intn(total)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignSelectCols+` FROM campaigns ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows.Scan)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *pgCampaignRepository) Patch(ctx context.Context, id string, patch model.CampaignPatch) error {
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
	if patch.TargetAmount != nil {
		setClauses = append(setClauses, fmt.Sprintf("target_amount = $%d", argIdx))
		args = append(args, *patch.TargetAmount)
		argIdx++
	}
	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE campaigns SET %s WHERE id = $%d",
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

func (r *pgCampaignRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgCampaignRepository) SetPaused(ctx context.Context, id string, paused bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET paused = $1, updated_at = NOW() WHERE id = $2`,
		paused, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordDonation appends the donor entry and increments the running total in
// one transaction. The row lock on the campaign serializes concurrent
// donations to the same campaign; the UNIQUE transaction_id makes replayed
// payment callbacks surface as ErrDuplicate instead of double-counting.
func (r *pgCampaignRepository) RecordDonation(ctx context.Context, campaignID string, donor *model.Donor) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var paused bool
	err = tx.QueryRow(ctx,
		`SELECT paused FROM campaigns WHERE id = $1 FOR UPDATE`, campaignID).Scan(&paused)
	if err != nil {
		return mapNoRows(err)
	}
	if paused {
		return ErrCampaignPaused
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO donations (campaign_id, donor_name, donor_email, user_email, amount, transaction_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		campaignID, donor.Name, donor.Email, donor.UserEmail, donor.Amount, donor.TransactionID,
	).Scan(&donor.ID, &donor.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicate
		}
		return err
	}
	donor.CampaignID = campaignID

	if _, err := tx.Exec(ctx,
		`UPDATE campaigns SET donated_amount = donated_amount + $1, updated_at = NOW() WHERE id = $2`,
		donor.Amount, campaignID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Refund removes matching donor entries and decrements the total by their
// combined amount in one transaction. A non-empty transactionID narrows the
// refund to a single entry.
func (r *pgCampaignRepository) Refund(ctx context.Context, campaignID, donorEmail, transactionID string) (*RefundResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT TRUE FROM campaigns WHERE id = $1 FOR UPDATE`, campaignID).Scan(&exists)
	if err != nil {
		return nil, mapNoRows(err)
	}

	query := `DELETE FROM donations WHERE campaign_id = $1 AND donor_email = $2`
	args := []any{campaignID, donorEmail}
	if transactionID != "" {
		query += ` AND transaction_id = $3`
		args = append(args, transactionID)
	}
	query += ` RETURNING amount`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	result := &RefundResult{}
	for rows.Next() {
		var amount int
		if err := rows.Scan(&amount); err != nil {
			rows.Close()
			return nil, err
		}
		result.Entries++
		result.Amount += amount
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if result.Entries == 0 {
		return nil, ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`UPDATE campaigns SET donated_amount = donated_amount - $1, updated_at = NOW() WHERE id = $2`,
		result.Amount, campaignID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *pgCampaignRepository) TotalsByCategory(ctx context.Context) ([]*model.CategoryTotal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category, SUM(donated_amount)::int AS total
		 FROM campaigns
		 GROUP BY category
		 ORDER BY total DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []*model.CategoryTotal
	for rows.Next() {
		t := &model.CategoryTotal{}
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *pgCampaignRepository) TopDonors(ctx context.Context, limit int) ([]*model.DonorTotal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT donor_email, SUM(amount)::int AS total, COUNT(*)::int AS entries
		 FROM donations
		 GROUP BY donor_email
		 ORDER BY total DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donors []*model.DonorTotal
	for rows.Next() {
		d := &model.DonorTotal{}
		if err := rows.Scan(&d.Email, &d.Total, &d.Count); err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	return donors, rows.Err()
}
