package service

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/dungnh/jobhub/config"
	"github.com/dungnh/jobhub/internal/apperr"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxUploadSize is the hard cap for file-upload answers.
const MaxUploadSize = 10 << 20 // 10 MB

var allowedUploadTypes = map[string]string{
	"application/pdf":    "PDF",
	"application/msword": "DOC",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "DOCX",
	"image/jpeg": "JPEG",
	"image/png":  "PNG",
}

// CheckUploadPolicy validates an upload before anything is stored.
func CheckUploadPolicy(mimeType string, size int64) error {
	if _, ok := allowedUploadTypes[mimeType]; !ok {
		return apperr.Validation("File type %q is not allowed. Accepted types: PDF, DOC, DOCX, JPEG, PNG", mimeType)
	}
	if size > MaxUploadSize {
		return apperr.Validation("File is too large (%.1f MB). Maximum size is 10 MB", float64(size)/(1<<20))
	}
	if size <= 0 {
		return apperr.Validation("Uploaded file is empty")
	}
	return nil
}

// StoredFile is what the storage backend reports after a successful upload.
type StoredFile struct {
	PublicID string
	URL      string
}

type FileStorage interface {
	Upload(ctx context.Context, file io.Reader, originalName string) (*StoredFile, error)
}

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cfg *config.Config) (FileStorage, error) {
	cld, err := cloudinary.NewFromURL(cfg.Cloudinary.URL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &cloudinaryStorage{cld: cld, folder: cfg.Cloudinary.Folder}, nil
}

func (s *cloudinaryStorage) Upload(ctx context.Context, file io.Reader, originalName string) (*StoredFile, error) {
	publicID := uuid.NewString()
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicID,
		ResourceType: "auto",
	})
	if err != nil {
		log.Error().Err(err).Str("file", originalName).Msg("Cloudinary upload failed")
		return nil, fmt.Errorf("upload %q: %w", originalName, err)
	}
	return &StoredFile{PublicID: resp.PublicID, URL: resp.SecureURL}, nil
}
