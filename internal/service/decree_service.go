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
	ErrDecreeNotFound    = errors.New("decree not found")
	ErrDecreeNumberTaken = errors.New("decree with this number already exists")
)

// DecreeService defines operations for decrees and their scanned documents
type DecreeService interface {
	CreateDecree(ctx context.Context, req model.CreateDecreeRequest) (*model.Decree, error)
	GetDecreeByID(ctx context.Context, id int) (*model.Decree, error)
	GetDecrees(ctx context.Context, filters model.DecreeFilters) ([]model.Decree, error)
	UpdateDecree(ctx context.Context, id int, req model.UpdateDecreeRequest) (*model.Decree, error)
	DeleteDecree(ctx context.Context, id int) error

	UploadDocument(ctx context.Context, id int, fileHeader *multipart.FileHeader) (*model.Decree, error)
	DownloadDocument(ctx context.Context, id int) ([]byte, string, string, error) // data, content type, filename
	DeleteDocument(ctx context.Context, id int) error
}

type decreeService struct {
	repo         repository.DecreeRepository
	employeeRepo repository.EmployeeRepository
	files        storage.FileStore
}

// NewDecreeService creates a new DecreeService
func NewDecreeService(repo repository.DecreeRepository, employeeRepo repository.EmployeeRepository, files storage.FileStore) DecreeService {
	return &decreeService{repo: repo, employeeRepo: employeeRepo, files: files}
}

func (s *decreeService) CreateDecree(ctx context.Context, req model.CreateDecreeRequest) (*model.Decree, error) {
	employee, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check employee for decree: %w", err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	decree := &model.Decree{
		EmployeeID:    req.EmployeeID,
		Number:        req.Number,
		Title:         req.Title,
		Category:      req.Category,
		Description:   req.Description,
		EffectiveDate: req.EffectiveDate,
		ExpiresDate:   req.ExpiresDate,
	}

	if err := s.repo.Create(ctx, decree); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDecreeNumberTaken
		}
		return nil, fmt.Errorf("failed to create decree in repo: %w", err)
	}
	return decree, nil
}

func (s *decreeService) GetDecreeByID(ctx context.Context, id int) (*model.Decree, error) {
	decree, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find decree by ID: %w", err)
	}
	if decree == nil {
		return nil, ErrDecreeNotFound
	}
	return decree, nil
}

func (s *decreeService) GetDecrees(ctx context.Context, filters model.DecreeFilters) ([]model.Decree, error) {
	decrees, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get decrees from repo: %w", err)
	}
	return decrees, nil
}

func (s *decreeService) UpdateDecree(ctx context.Context, id int, req model.UpdateDecreeRequest) (*model.Decree, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find decree for update: %w", err)
	}
	if existing == nil {
		return nil, ErrDecreeNotFound
	}

	if req.Number != nil {
		existing.Number = *req.Number
	}
	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Category != nil {
		existing.Category = *req.Category
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.EffectiveDate != nil {
		existing.EffectiveDate = *req.EffectiveDate
	}
	if req.ExpiresDate != nil {
		existing.ExpiresDate = req.ExpiresDate
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDecreeNumberTaken
		}
		return nil, fmt.Errorf("failed to update decree in repo: %w", err)
	}
	return existing, nil
}

func (s *decreeService) DeleteDecree(ctx context.Context, id int) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find decree for deletion: %w", err)
	}
	if existing == nil {
		return ErrDecreeNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete decree in repo: %w", err)
	}
	// Orphaned object is harmless; removal is best effort.
	if existing.FileKey != nil {
		if err := s.files.Remove(ctx, *existing.FileKey); err != nil {
			log.Printf("failed to remove decree document %s: %v", *existing.FileKey, err)
		}
	}
	return nil
}

func (s *decreeService) UploadDocument(ctx context.Context, id int, fileHeader *multipart.FileHeader) (*model.Decree, error) {
	decree, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find decree for document upload: %w", err)
	}
	if decree == nil {
		return nil, ErrDecreeNotFound
	}

	key, err := saveDocument(ctx, s.files, "decrees", id, fileHeader)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFileKey(ctx, id, &key); err != nil {
		s.files.Remove(ctx, key) // Attempt to clean up
		return nil, fmt.Errorf("failed to update decree with file key: %w", err)
	}

	// Replace, not accumulate: drop the previous document if there was one.
	if decree.FileKey != nil {
		if err := s.files.Remove(ctx, *decree.FileKey); err != nil {
			log.Printf("failed to remove superseded decree document %s: %v", *decree.FileKey, err)
		}
	}

	decree.FileKey = &key
	return decree, nil
}

func (s *decreeService) DownloadDocument(ctx context.Context, id int) ([]byte, string, string, error) {
	decree, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to find decree for document download: %w", err)
	}
	if decree == nil {
		return nil, "", "", ErrDecreeNotFound
	}
	if decree.FileKey == nil || *decree.FileKey == "" {
		return nil, "", "", ErrDocumentNotFound
	}

	data, contentType, err := s.files.Download(ctx, *decree.FileKey)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to fetch decree document: %w", err)
	}
	return data, contentType, path.Base(*decree.FileKey), nil
}

func (s *decreeService) DeleteDocument(ctx context.Context, id int) error {
	decree, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find decree for document deletion: %w", err)
	}
	if decree == nil {
		return ErrDecreeNotFound
	}
	if decree.FileKey == nil || *decree.FileKey == "" {
		return ErrDocumentNotFound
	}

	if err := s.repo.UpdateFileKey(ctx, id, nil); err != nil {
		return fmt.Errorf("failed to clear decree file key: %w", err)
	}
	if err := s.files.Remove(ctx, *decree.FileKey); err != nil {
		log.Printf("failed to remove decree document %s: %v", *decree.FileKey, err)
	}
	return nil
}
