package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kawanlib/internal/model"

	"github.com/jackc/pgx/v5"
)

// PortfolioRepository defines operations for portfolio data
type PortfolioRepository interface {
	Create(ctx context.Context, p *model.Portfolio) error
	FindByID(ctx context.Context, id int) (*model.Portfolio, error)
	FindByUser(ctx context.Context, userID int) ([]model.Portfolio, error)
	Update(ctx context.Context, p *model.Portfolio) error
	Delete(ctx context.Context, id int) error
	UpdateFileKey(ctx context.Context, id int, fileKey *string) error
}

type portfolioRepository struct {
	db DB
}

// NewPortfolioRepository creates a new PortfolioRepository
func NewPortfolioRepository(db DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

const portfolioColumns = `id, user_id, title, description, url, file_key, created_at, updated_at`

// Create inserts a new portfolio entry
func (r *portfolioRepository) Create(ctx context.Context, p *model.Portfolio) error {
	sql := `INSERT INTO portfolios (user_id, title, description, url)
            VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, p.UserID, p.Title, p.Description, p.URL).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create portfolio: %w", err)
	}
	return nil
}

// FindByID retrieves a portfolio entry by ID
func (r *portfolioRepository) FindByID(ctx context.Context, id int) (*model.Portfolio, error) {
	p := &model.Portfolio{}
	sql := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&p.ID, &p.UserID, &p.Title, &p.Description, &p.URL, &p.FileKey, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find portfolio by ID: %w", err)
	}
	return p, nil
}

// FindByUser retrieves all portfolio entries for a user
func (r *portfolioRepository) FindByUser(ctx context.Context, userID int) ([]model.Portfolio, error) {
	sql := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolios by user: %w", err)
	}
	defer rows.Close()

	var portfolios []model.Portfolio
	for rows.Next() {
		var p model.Portfolio
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Title, &p.Description, &p.URL, &p.FileKey, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio row: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio rows: %w", err)
	}
	return portfolios, nil
}

// Update modifies an existing portfolio entry
func (r *portfolioRepository) Update(ctx context.Context, p *model.Portfolio) error {
	sql := `UPDATE portfolios SET title = $1, description = $2, url = $3 WHERE id = $4 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, p.Title, p.Description, p.URL, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("portfolio not found for update")
		}
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	return nil
}

// Delete removes a portfolio entry
func (r *portfolioRepository) Delete(ctx context.Context, id int) error {
	sql := `DELETE FROM portfolios WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("portfolio not found for deletion")
	}
	return nil
}

// UpdateFileKey sets or clears the attachment key for a portfolio entry
func (r *portfolioRepository) UpdateFileKey(ctx context.Context, id int, fileKey *string) error {
	sql := `UPDATE portfolios SET file_key = $1 WHERE id = $2 RETURNING updated_at`
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, sql, fileKey, id).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("portfolio not found for file key update")
		}
		return fmt.Errorf("failed to update portfolio file key: %w", err)
	}
	return nil
}
