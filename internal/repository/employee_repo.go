package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kawanlib/internal/model"

	"github.com/jackc/pgx/v5"
)

// EmployeeRepository defines operations for employee data
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	FindByID(ctx context.Context, id int) (*model.Employee, error)
	FindAll(ctx context.Context, filters model.EmployeeFilters) ([]model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id int) error
}

type employeeRepository struct {
	db DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, nip, name, position, department, email, phone, address, hire_date, status, created_at, updated_at`

// Create inserts a new employee record
func (r *employeeRepository) Create(ctx context.Context, e *model.Employee) error {
	sql := `INSERT INTO employees (nip, name, position, department, email, phone, address, hire_date, status)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		e.NIP, e.Name, e.Position, e.Department, e.Email, e.Phone, e.Address, e.HireDate, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// FindByID retrieves an employee by ID
func (r *employeeRepository) FindByID(ctx context.Context, id int) (*model.Employee, error) {
	e := &model.Employee{}
	sql := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&e.ID, &e.NIP, &e.Name, &e.Position, &e.Department, &e.Email, &e.Phone,
		&e.Address, &e.HireDate, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find employee by ID: %w", err)
	}
	return e, nil
}

// FindAll retrieves employees with optional filters
func (r *employeeRepository) FindAll(ctx context.Context, filters model.EmployeeFilters) ([]model.Employee, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + employeeColumns + ` FROM employees`)

	args := []any{}
	argCount := 1
	var conditions []string

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.Department != nil && *filters.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argCount))
		args = append(args, *filters.Department)
		argCount++
	}
	if filters.Query != nil && *filters.Query != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR nip ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filters.Query+"%")
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name ASC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(
			&e.ID, &e.NIP, &e.Name, &e.Position, &e.Department, &e.Email, &e.Phone,
			&e.Address, &e.HireDate, &e.Status, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}
	return employees, nil
}

// Update modifies an existing employee record
func (r *employeeRepository) Update(ctx context.Context, e *model.Employee) error {
	sql := `UPDATE employees
            SET name = $1, position = $2, department = $3, email = $4, phone = $5, address = $6, hire_date = $7, status = $8
            WHERE id = $9 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		e.Name, e.Position, e.Department, e.Email, e.Phone, e.Address, e.HireDate, e.Status, e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("employee not found for update")
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return nil
}

// Delete removes an employee record
func (r *employeeRepository) Delete(ctx context.Context, id int) error {
	sql := `DELETE FROM employees WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("employee not found for deletion")
	}
	return nil
}
