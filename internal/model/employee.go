package model

import "time"

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

// Employee is a personnel record managed by the portal
type Employee struct {
	ID         int       `json:"id"`
	NIP        string    `json:"nip"` // civil-service employee number, unique
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Address    *string   `json:"address,omitempty"`
	HireDate   time.Time `json:"hire_date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateEmployeeRequest is used for creating a new employee record
type CreateEmployeeRequest struct {
	NIP        string    `json:"nip" binding:"required"`
	Name       string    `json:"name" binding:"required"`
	Position   string    `json:"position" binding:"required"`
	Department string    `json:"department" binding:"required"`
	Email      *string   `json:"email" binding:"omitempty,email"`
	Phone      *string   `json:"phone"`
	Address    *string   `json:"address"`
	HireDate   time.Time `json:"hire_date" binding:"required"`
	Status     string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

type UpdateEmployeeRequest struct {
	Name       *string    `json:"name,omitempty"`
	Position   *string    `json:"position,omitempty"`
	Department *string    `json:"department,omitempty"`
	Email      *string    `json:"email,omitempty" binding:"omitempty,email"`
	Phone      *string    `json:"phone,omitempty"`
	Address    *string    `json:"address,omitempty"`
	HireDate   *time.Time `json:"hire_date,omitempty"`
	Status     *string    `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

// EmployeeFilters contains filter parameters for employee listings
type EmployeeFilters struct {
	Status     *string
	Department *string
	Query      *string // matches name or NIP
}
