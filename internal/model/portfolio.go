package model

import "time"

// Portfolio is a work item in a user's personal portfolio
type Portfolio struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	URL         *string   `json:"url,omitempty"`
	FileKey     *string   `json:"file_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePortfolioRequest is used for adding a portfolio entry
type CreatePortfolioRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	URL         *string `json:"url" binding:"omitempty,url"`
}

type UpdatePortfolioRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty" binding:"omitempty,url"`
}
