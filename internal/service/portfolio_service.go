package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path"

	"kawanlib/internal/model"
	"kawanlib/internal/repository"
	"kawanlib/internal/storage"
)

var (
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrForbidden         = errors.New("forbidden: user does not have permission for this action")
)

// PortfolioService defines operations for user portfolios. Entries are
// owned: only the owner or an admin may read or modify them.
type PortfolioService interface {
	CreatePortfolio(ctx context.Context, userID int, req model.CreatePortfolioRequest) (*model.Portfolio, error)
	GetPortfolioByID(ctx context.Context, id, userID int, userRole string) (*model.Portfolio, error)
	GetUserPortfolios(ctx context.Context, userID int) ([]model.Portfolio, error)
	UpdatePortfolio(ctx context.Context, id, userID int, req model.UpdatePortfolioRequest) (*model.Portfolio, error)
	DeletePortfolio(ctx context.Context, id, userID int, userRole string) error

	UploadDocument(ctx context.Context, id, userID int, fileHeader *multipart.FileHeader) (*model.Portfolio, error)
	DownloadDocument(ctx context.Context, id, userID int, userRole string) ([]byte, string, string, error)
}

type portfolioService struct {
	repo  repository.PortfolioRepository
	files storage.FileStore
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(repo repository.PortfolioRepository, files storage.FileStore) PortfolioService {
	return &portfolioService{repo: repo, files: files}
}

func (s *portfolioService) CreatePortfolio(ctx context.Context, userID int, req model.CreatePortfolioRequest) (*model.Portfolio, error) {
	p := &model.Portfolio{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create portfolio in repo: %w", err)
	}
	return p, nil
}

func (s *portfolioService) GetPortfolioByID(ctx context.Context, id, userID int, userRole string) (*model.Portfolio, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find portfolio by ID: %w", err)
	}
	if p == nil {
		return nil, ErrPortfolioNotFound
	}
	if userRole != model.RoleAdmin && p.UserID != userID {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *portfolioService) GetUserPortfolios(ctx context.Context, userID int) ([]model.Portfolio, error) {
	portfolios, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user portfolios from repo: %w", err)
	}
	return portfolios, nil
}

func (s *portfolioService) UpdatePortfolio(ctx context.Context, id, userID int, req model.UpdatePortfolioRequest) (*model.Portfolio, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find portfolio for update: %w", err)
	}
	if existing == nil {
		return nil, ErrPortfolioNotFound
	}
	if existing.UserID != userID { // Only the owner can edit
		return nil, ErrForbidden
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.URL != nil {
		existing.URL = req.URL
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update portfolio in repo: %w", err)
	}
	return existing, nil
}

func (s *portfolioService) DeletePortfolio(ctx context.Context, id, userID int, userRole string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find portfolio for deletion: %w", err)
	}
	if existing == nil {
		return ErrPortfolioNotFound
	}
	if userRole != model.RoleAdmin && existing.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete portfolio in repo: %w", err)
	}
	if existing.FileKey != nil {
		if err := s.files.Remove(ctx, *existing.FileKey); err != nil {
			log.Printf("failed to remove portfolio document %s: %v", *existing.FileKey, err)
		}
	}
	return nil
}

func (s *portfolioService) UploadDocument(ctx context.Context, id, userID int, fileHeader *multipart.FileHeader) (*model.Portfolio, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find portfolio for document upload: %w", err)
	}
	if p == nil {
		return nil, ErrPortfolioNotFound
	}
	if p.UserID != userID { // Only the owner can attach files
		return nil, ErrForbidden
	}

	key, err := saveDocument(ctx, s.files, "portfolios", id, fileHeader)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFileKey(ctx, id, &key); err != nil {
		s.files.Remove(ctx, key) // Attempt to clean up
		return nil, fmt.Errorf("failed to update portfolio with file key: %w", err)
	}

	if p.FileKey != nil {
		if err := s.files.Remove(ctx, *p.FileKey); err != nil {
			log.Printf("failed to remove superseded portfolio document %s: %v", *p.FileKey, err)
		}
	}

	p.FileKey = &key
	return p, nil
}

func (s *portfolioService) DownloadDocument(ctx context.Context, id, userID int, userRole string) ([]byte, string, string, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to find portfolio for document download: %w", err)
	}
	if p == nil {
		return nil, "", "", ErrPortfolioNotFound
	}
	if userRole != model.RoleAdmin && p.UserID != userID {
		return nil, "", "", ErrForbidden
	}
	if p.FileKey == nil || *p.FileKey == "" {
		return nil, "", "", ErrDocumentNotFound
	}

	data, contentType, err := s.files.Download(ctx, *p.FileKey)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to fetch portfolio document: %w", err)
	}
	return data, contentType, path.Base(*p.FileKey), nil
}
