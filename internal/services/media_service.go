package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/ettora/mediastore/internal/models"
	"github.com/ettora/mediastore/internal/storage"
	"go.uber.org/zap"
)

// Sentinel errors classifying failures at the service boundary.
// Handlers translate these to HTTP status codes.
var (
	// ErrValidation indicates missing or invalid client input
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates the requested media record does not exist
	ErrNotFound = errors.New("media not found")
)

const (
	// DefaultPage is used when the page parameter is absent or invalid
	DefaultPage = 1
	// DefaultLimit is used when the limit parameter is absent or invalid
	DefaultLimit = 20

	maxImageWidth  = 1200
	maxImageHeight = 1200
)

// MediaRepository is the interface that wraps methods for media metadata data access
type MediaRepository interface {
	// Method Create inserts a new media record, assigning its ID and upload date.
	Create(ctx context.Context, record *models.MediaRecord) error
	// Method List retrieves up to "limit" records starting at "offset",
	// ordered by upload date descending (newest first).
	List(ctx context.Context, offset, limit int) ([]models.MediaRecord, error)
	// Method DeleteByID atomically removes a record and returns the removed
	// record. The returned error wraps sql.ErrNoRows when no record matches.
	DeleteByID(ctx context.Context, id string) (*models.MediaRecord, error)
}

// FileStore is the interface that wraps methods for writing and removing
// uploaded assets on disk
type FileStore interface {
	// Save writes the reader's contents byte-for-byte under <category>/<filename>.
	Save(category, filename string, r io.Reader) error
	// SaveImage re-encodes img as WebP under <category>/<filename>.
	SaveImage(category, filename string, img image.Image) error
	// Remove deletes the file under <category>/<filename>.
	Remove(category, filename string) error
}

// MediaService handles business logic for media operations
type MediaService struct {
	repo   MediaRepository
	store  FileStore
	logger *zap.Logger
}

// NewMediaService creates a new media service
func NewMediaService(repo MediaRepository, store FileStore, logger *zap.Logger) *MediaService {
	return &MediaService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// UploadInput carries the four required upload fields
type UploadInput struct {
	File     io.Reader
	Name     string
	Category string
	Type     string
}

// Upload validates the input, writes the asset to the file store and then
// inserts its metadata record.
//
// Images are re-encoded to WebP and resized to fit within 1200x1200 without
// enlargement; videos are written byte-for-byte. The file is written before
// the record is inserted so metadata never references a missing file. If the
// insert fails after the write succeeded, the file is left behind as an
// orphan rather than rolled back.
func (s *MediaService) Upload(ctx context.Context, in UploadInput) (*models.MediaRecord, error) {
	if in.File == nil || in.Name == "" || in.Category == "" || in.Type == "" {
		return nil, fmt.Errorf("all fields are required: %w", ErrValidation)
	}

	category := models.Category(in.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("invalid category %q: %w", in.Category, ErrValidation)
	}

	mediaType := models.MediaType(in.Type)
	if !mediaType.Valid() {
		return nil, fmt.Errorf("invalid media type %q: %w", in.Type, ErrValidation)
	}

	now := time.Now()
	filename := storage.GenerateFilename(in.Name, mediaType, now)

	if mediaType == models.MediaTypeImage {
		img, err := storage.DecodeImage(in.File)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		resized := storage.FitInside(img, maxImageWidth, maxImageHeight)
		if err := s.store.SaveImage(in.Category, filename, resized); err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
	} else {
		if err := s.store.Save(in.Category, filename, in.File); err != nil {
			return nil, fmt.Errorf("failed to save file: %w", err)
		}
	}

	record := &models.MediaRecord{
		Filename:   filename,
		Name:       in.Name,
		Category:   category,
		Type:       mediaType,
		UploadDate: now,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		// The file stays on disk: an orphaned file is preferred over
		// deleting data the user just uploaded.
		s.logger.Error("media record insert failed after file write, file orphaned",
			zap.String("category", in.Category),
			zap.String("filename", filename),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create media record: %w", err)
	}

	return record, nil
}

// List returns one page of media records, newest first. Non-positive page
// and limit values fall back to the defaults.
func (s *MediaService) List(ctx context.Context, page, limit int) ([]models.MediaRecord, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	offset := (page - 1) * limit
	records, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}

	return records, nil
}

// Delete removes the media record with the given id, then attempts to remove
// its file. The metadata deletion is the source of truth: a file-removal
// failure is logged and swallowed, so callers still see success.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("media id is required: %w", ErrValidation)
	}

	record, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("media %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete media record: %w", err)
	}

	if err := s.store.Remove(string(record.Category), record.Filename); err != nil {
		s.logger.Warn("failed to delete media file",
			zap.String("id", id),
			zap.String("category", string(record.Category)),
			zap.String("filename", record.Filename),
			zap.Error(err),
		)
	}

	return nil
}
