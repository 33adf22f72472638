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

// CertificationRepository defines operations for certification data
type CertificationRepository interface {
	Create(ctx context.Context, cert *model.Certification) error
	FindByID(ctx context.Context, id int) (*model.Certification, error)
	FindAll(ctx context.Context, filters model.CertificationFilters) ([]model.Certification, error)
	Update(ctx context.Context, cert *model.Certification) error
	Delete(ctx context.Context, id int) error
	UpdateFileKey(ctx context.Context, id int, fileKey *string) error
}

type certificationRepository struct {
	db DB
}

// NewCertificationRepository creates a new CertificationRepository
func NewCertificationRepository(db DB) CertificationRepository {
	return &certificationRepository{db: db}
}

const certificationColumns = `id, employee_id, name, issuer, credential_number, issued_date, expires_date, file_key, created_at, updated_at`

// Create inserts a new certification
func (r *certificationRepository) Create(ctx context.Context, c *model.Certification) error {
	sql := `INSERT INTO certifications (employee_id, name, issuer, credential_number, issued_date, expires_date)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		c.EmployeeID, c.Name, c.Issuer, c.CredentialNumber, c.IssuedDate, c.ExpiresDate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create certification: %w", err)
	}
	return nil
}

// FindByID retrieves a certification by ID
func (r *certificationRepository) FindByID(ctx context.Context, id int) (*model.Certification, error) {
	c := &model.Certification{}
	sql := `SELECT ` + certificationColumns + ` FROM certifications WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&c.ID, &c.EmployeeID, &c.Name, &c.Issuer, &c.CredentialNumber,
		&c.IssuedDate, &c.ExpiresDate, &c.FileKey, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find certification by ID: %w", err)
	}
	return c, nil
}

// FindAll retrieves certifications with optional filters
func (r *certificationRepository) FindAll(ctx context.Context, filters model.CertificationFilters) ([]model.Certification, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + certificationColumns + ` FROM certifications`)

	args := []any{}
	argCount := 1
	var conditions []string

	if filters.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argCount))
		args = append(args, *filters.EmployeeID)
		argCount++
	}
	if filters.Issuer != nil && *filters.Issuer != "" {
		conditions = append(conditions, fmt.Sprintf("issuer = $%d", argCount))
		args = append(args, *filters.Issuer)
		argCount++
	}
	if filters.Query != nil && *filters.Query != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR credential_number ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filters.Query+"%")
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY issued_date DESC, created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query certifications: %w", err)
	}
	defer rows.Close()

	var certs []model.Certification
	for rows.Next() {
		var c model.Certification
		if err := rows.Scan(
			&c.ID, &c.EmployeeID, &c.Name, &c.Issuer, &c.CredentialNumber,
			&c.IssuedDate, &c.ExpiresDate, &c.FileKey, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan certification row: %w", err)
		}
		certs = append(certs, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating certification rows: %w", err)
	}
	return certs, nil
}

// Update modifies an existing certification
func (r *certificationRepository) Update(ctx context.Context, c *model.Certification) error {
	sql := `UPDATE certifications
            SET name = $1, issuer = $2, credential_number = $3, issued_date = $4, expires_date = $5
            WHERE id = $6 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		c.Name, c.Issuer, c.CredentialNumber, c.IssuedDate, c.ExpiresDate, c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("certification not found for update")
		}
		return fmt.Errorf("failed to update certification: %w", err)
	}
	return nil
}

// Delete removes a certification
func (r *certificationRepository) Delete(ctx context.Context, id int) error {
	sql := `DELETE FROM certifications WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete certification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("certification not found for deletion")
	}
	return nil
}

// UpdateFileKey sets or clears the stored document key for a certification
func (r *certificationRepository) UpdateFileKey(ctx context.Context, id int, fileKey *string) error {
	sql := `UPDATE certifications SET file_key = $1 WHERE id = $2 RETURNING updated_at`
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, sql, fileKey, id).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("certification not found for file key update")
		}
		return fmt.Errorf("failed to update certification file key: %w", err)
	}
	return nil
}
