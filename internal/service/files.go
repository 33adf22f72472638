package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"kawanlib/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrInvalidFileFormat = errors.New("invalid file format. only .jpg, .png, .pdf are allowed")
	ErrFileSizeExceeded  = errors.New("file size exceeds limit")
	ErrDocumentNotFound  = errors.New("document not found")
)

const MaxFileSize = 5 * 1024 * 1024 // 5MB

var allowedContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// saveDocument validates an uploaded file and stores it under
// {prefix}/{id}/{uuid}{ext}, returning the object key.
func saveDocument(ctx context.Context, files storage.FileStore, prefix string, id int, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxFileSize {
		return "", ErrFileSizeExceeded
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedContentTypes[ext]
	if !ok {
		return "", ErrInvalidFileFormat
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%d/%s%s", prefix, id, uuid.NewString(), ext)
	if err := files.Upload(ctx, key, src, fileHeader.Size, contentType); err != nil {
		return "", fmt.Errorf("failed to store document: %w", err)
	}
	return key, nil
}
