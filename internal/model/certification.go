package model

import "time"

// Certification is a professional certification held by an employee
type Certification struct {
	ID               int        `json:"id"`
	EmployeeID       int        `json:"employee_id"`
	Name             string     `json:"name"`
	Issuer           string     `json:"issuer"`
	CredentialNumber *string    `json:"credential_number,omitempty"`
	IssuedDate       time.Time  `json:"issued_date"`
	ExpiresDate      *time.Time `json:"expires_date,omitempty"`
	FileKey          *string    `json:"file_key,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateCertificationRequest is used for registering a new certification
type CreateCertificationRequest struct {
	EmployeeID       int        `json:"employee_id" binding:"required,gt=0"`
	Name             string     `json:"name" binding:"required"`
	Issuer           string     `json:"issuer" binding:"required"`
	CredentialNumber *string    `json:"credential_number"`
	IssuedDate       time.Time  `json:"issued_date" binding:"required"`
	ExpiresDate      *time.Time `json:"expires_date"`
}

type UpdateCertificationRequest struct {
	Name             *string    `json:"name,omitempty"`
	Issuer           *string    `json:"issuer,omitempty"`
	CredentialNumber *string    `json:"credential_number,omitempty"`
	IssuedDate       *time.Time `json:"issued_date,omitempty"`
	ExpiresDate      *time.Time `json:"expires_date,omitempty"`
}

// CertificationFilters contains filter parameters for certification listings
type CertificationFilters struct {
	EmployeeID *int
	Issuer     *string
	Query      *string // matches name or credential number
}
