package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kawanlib/internal/model"

	"github.com/jackc/pgx/v5"
)

// DecreeRepository defines operations for decree data
type DecreeRepository interface {
	Create(ctx context.Context, decree *model.Decree) error
	FindByID(ctx context.Context, id int) (*model.Decree, error)
	FindAll(ctx context.Context, filters model.DecreeFilters) ([]model.Decree, error)
	Update(ctx context.Context, decree *model.Decree) error
	Delete(ctx context.Context, id int) error
	UpdateFileKey(ctx context.Context, id int, fileKey *string) error
}

type decreeRepository struct {
	db DB
}

// NewDecreeRepository creates a new DecreeRepository
func NewDecreeRepository(db DB) DecreeRepository {
	return &decreeRepository{db: db}
}

const decreeColumns = `id, employee_id, number, title, category, description, effective_date, expires_date, file_key, created_at, updated_at`

// Create inserts a new decree
func (r *decreeRepository) Create(ctx context.Context, d *model.Decree) error {
	sql := `INSERT INTO decrees (employee_id, number, title, category, description, effective_date, expires_date)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		d.EmployeeID, d.Number, d.Title, d.Category, d.Description, d.EffectiveDate, d.ExpiresDate,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create decree: %w", err)
	}
	return nil
}

// FindByID retrieves a decree by ID
func (r *decreeRepository) FindByID(ctx context.Context, id int) (*model.Decree, error) {
	d := &model.Decree{}
	sql := `SELECT ` + decreeColumns + ` FROM decrees WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&d.ID, &d.EmployeeID, &d.Number, &d.Title, &d.Category, &d.Description,
		&d.EffectiveDate, &d.ExpiresDate, &d.FileKey, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find decree by ID: %w", err)
	}
	return d, nil
}

// FindAll retrieves decrees with optional filters
func (r *decreeRepository) FindAll(ctx context.Context, filters model.DecreeFilters) ([]model.Decree, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + decreeColumns + ` FROM decrees`)

	args := []any{}
	argCount := 1
	var conditions []string

	if filters.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argCount))
		args = append(args, *filters.EmployeeID)
		argCount++
	}
	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if filters.Query != nil && *filters.Query != "" {
		conditions = append(conditions, fmt.Sprintf("(number ILIKE $%d OR title ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filters.Query+"%")
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY effective_date DESC, created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query decrees: %w", err)
	}
	defer rows.Close()

	var decrees []model.Decree
	for rows.Next() {
		var d model.Decree
		if err := rows.Scan(
			&d.ID, &d.EmployeeID, &d.Number, &d.Title, &d.Category, &d.Description,
			&d.EffectiveDate, &d.ExpiresDate, &d.FileKey, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan decree row: %w", err)
		}
		decrees = append(decrees, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decree rows: %w", err)
	}
	return decrees, nil
}

// Update modifies an existing decree
func (r *decreeRepository) Update(ctx context.Context, d *model.Decree) error {
	sql := `UPDATE decrees
            SET number = $1, title = $2, category = $3, description = $4, effective_date = $5, expires_date = $6
            WHERE id = $7 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		d.Number, d.Title, d.Category, d.Description, d.EffectiveDate, d.ExpiresDate, d.ID,
	).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("decree not found for update")
		}
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update decree: %w", err)
	}
	return nil
}

// Delete removes a decree
func (r *decreeRepository) Delete(ctx context.Context, id int) error {
	sql := `DELETE FROM decrees WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete decree: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("decree not found for deletion")
	}
	return nil
}

// UpdateFileKey sets or clears the stored document key for a decree
func (r *decreeRepository) UpdateFileKey(ctx context.Context, id int, fileKey *string) error {
	sql := `UPDATE decrees SET file_key = $1 WHERE id = $2 RETURNING updated_at`
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, sql, fileKey, id).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("decree not found for file key update")
		}
		return fmt.Errorf("failed to update decree file key: %w", err)
	}
	return nil
}
