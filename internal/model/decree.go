package model

import "time"

const (
	DecreeCategoryAppointment = "appointment"
	DecreeCategoryPromotion   = "promotion"
	DecreeCategoryTransfer    = "transfer"
	DecreeCategoryDismissal   = "dismissal"
	DecreeCategoryOther       = "other"
)

// Decree is a surat keputusan issued for an employee
type Decree struct {
	ID            int        `json:"id"`
	EmployeeID    int        `json:"employee_id"`
	Number        string     `json:"number"` // decree number, unique
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Description   *string    `json:"description,omitempty"`
	EffectiveDate time.Time  `json:"effective_date"`
	ExpiresDate   *time.Time `json:"expires_date,omitempty"`
	FileKey       *string    `json:"file_key,omitempty"` // object storage key of the scanned document
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateDecreeRequest is used for registering a new decree
type CreateDecreeRequest struct {
	EmployeeID    int        `json:"employee_id" binding:"required,gt=0"`
	Number        string     `json:"number" binding:"required"`
	Title         string     `json:"title" binding:"required"`
	Category      string     `json:"category" binding:"required,oneof=appointment promotion transfer dismissal other"`
	Description   *string    `json:"description"`
	EffectiveDate time.Time  `json:"effective_date" binding:"required"`
	ExpiresDate   *time.Time `json:"expires_date"`
}

type UpdateDecreeRequest struct {
	Number        *string    `json:"number,omitempty"`
	Title         *string    `json:"title,omitempty"`
	Category      *string    `json:"category,omitempty" binding:"omitempty,oneof=appointment promotion transfer dismissal other"`
	Description   *string    `json:"description,omitempty"`
	EffectiveDate *time.Time `json:"effective_date,omitempty"`
	ExpiresDate   *time.Time `json:"expires_date,omitempty"`
}

// DecreeFilters contains filter parameters for decree listings
type DecreeFilters struct {
	EmployeeID *int
	Category   *string
	Query      *string // matches number or title
}
