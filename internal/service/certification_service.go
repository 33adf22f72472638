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

var ErrCertificationNotFound = errors.New("certification not found")

// CertificationService defines operations for certifications and their documents
type CertificationService interface {
	CreateCertification(ctx context.Context, req model.CreateCertificationRequest) (*model.Certification, error)
	GetCertificationByID(ctx context.Context, id int) (*model.Certification, error)
	GetCertifications(ctx context.Context, filters model.CertificationFilters) ([]model.Certification, error)
	UpdateCertification(ctx context.Context, id int, req model.UpdateCertificationRequest) (*model.Certification, error)
	DeleteCertification(ctx context.Context, id int) error

	UploadDocument(ctx context.Context, id int, fileHeader *multipart.FileHeader) (*model.Certification, error)
	DownloadDocument(ctx context.Context, id int) ([]byte, string, string, error)
}

type certificationService struct {
	repo         repository.CertificationRepository
	employeeRepo repository.EmployeeRepository
	files        storage.FileStore
}

// NewCertificationService creates a new CertificationService
func NewCertificationService(repo repository.CertificationRepository, employeeRepo repository.EmployeeRepository, files storage.FileStore) CertificationService {
	return &certificationService{repo: repo, employeeRepo: employeeRepo, files: files}
}

func (s *certificationService) CreateCertification(ctx context.Context, req model.CreateCertificationRequest) (*model.Certification, error) {
	employee, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check employee for certification: %w", err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	cert := &model.Certification{
		EmployeeID:       req.EmployeeID,
		Name:             req.Name,
		Issuer:           req.Issuer,
		CredentialNumber: req.CredentialNumber,
		IssuedDate:       req.IssuedDate,
		ExpiresDate:      req.ExpiresDate,
	}

	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, fmt.Errorf("failed to create certification in repo: %w", err)
	}
	return cert, nil
}

func (s *certificationService) GetCertificationByID(ctx context.Context, id int) (*model.Certification, error) {
	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find certification by ID: %w", err)
	}
	if cert == nil {
		return nil, ErrCertificationNotFound
	}
	return cert, nil
}

func (s *certificationService) GetCertifications(ctx context.Context, filters model.CertificationFilters) ([]model.Certification, error) {
	certs, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get certifications from repo: %w", err)
	}
	return certs, nil
}

func (s *certificationService) UpdateCertification(ctx context.Context, id int, req model.UpdateCertificationRequest) (*model.Certification, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find certification for update: %w", err)
	}
	if existing == nil {
		return nil, ErrCertificationNotFound
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Issuer != nil {
		existing.Issuer = *req.Issuer
	}
	if req.CredentialNumber != nil {
		existing.CredentialNumber = req.CredentialNumber
	}
	if req.IssuedDate != nil {
		existing.IssuedDate = *req.IssuedDate
	}
	if req.ExpiresDate != nil {
		existing.ExpiresDate = req.ExpiresDate
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update certification in repo: %w", err)
	}
	return existing, nil
}

func (s *certificationService) DeleteCertification(ctx context.Context, id int) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find certification for deletion: %w", err)
	}
	if existing == nil {
		return ErrCertificationNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete certification in repo: %w", err)
	}
	if existing.FileKey != nil {
		if err := s.files.Remove(ctx, *existing.FileKey); err != nil {
			log.Printf("failed to remove certification document %s: %v", *existing.FileKey, err)
		}
	}
	return nil
}

func (s *certificationService) UploadDocument(ctx context.Context, id int, fileHeader *multipart.FileHeader) (*model.Certification, error) {
	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find certification for document upload: %w", err)
	}
	if cert == nil {
		return nil, ErrCertificationNotFound
	}

	key, err := saveDocument(ctx, s.files, "certifications", id, fileHeader)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFileKey(ctx, id, &key); err != nil {
		s.files.Remove(ctx, key) // Attempt to clean up
		return nil, fmt.Errorf("failed to update certification with file key: %w", err)
	}

	if cert.FileKey != nil {
		if err := s.files.Remove(ctx, *cert.FileKey); err != nil {
			log.Printf("failed to remove superseded certification document %s: %v", *cert.FileKey, err)
		}
	}

	cert.FileKey = &key
	return cert, nil
}

func (s *certificationService) DownloadDocument(ctx context.Context, id int) ([]byte, string, string, error) {
	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to find certification for document download: %w", err)
	}
	if cert == nil {
		return nil, "", "", ErrCertificationNotFound
	}
	if cert.FileKey == nil || *cert.FileKey == "" {
		return nil, "", "", ErrDocumentNotFound
	}

	data, contentType, err := s.files.Download(ctx, *cert.FileKey)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to fetch certification document: %w", err)
	}
	return data, contentType, path.Base(*cert.FileKey), nil
}
