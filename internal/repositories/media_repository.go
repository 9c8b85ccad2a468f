package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ettora/mediastore/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// mediaRepository implements media metadata data access
type mediaRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *sql.DB, logger *zap.Logger) *mediaRepository {
	return &mediaRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new media record. The record's ID and UploadDate are
// assigned here when unset: the ID is a fresh UUID and the upload date
// defaults to the insert time.
func (r *mediaRepository) Create(ctx context.Context, record *models.MediaRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.UploadDate.IsZero() {
		record.UploadDate = time.Now().UTC()
	}

	query := `
		INSERT INTO media (id, filename, name, category, type, upload_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Filename,
		record.Name,
		record.Category,
		record.Type,
		record.UploadDate,
	)
	if err != nil {
		r.logger.Error("failed to insert media record", zap.Error(err))
		return fmt.Errorf("failed to create media record: %w", err)
	}

	return nil
}

// List returns up to limit records ordered by upload date descending.
// The id is used as a secondary sort key so records sharing an upload
// date come back in a consistent order across pages.
func (r *mediaRepository) List(ctx context.Context, offset, limit int) ([]models.MediaRecord, error) {
	query := `
		SELECT id, filename, name, category, type, upload_date
		FROM media
		ORDER BY upload_date DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("failed to query media records", zap.Error(err))
		return nil, fmt.Errorf("failed to list media records: %w", err)
	}
	defer rows.Close()

	records := make([]models.MediaRecord, 0, limit)
	for rows.Next() {
		var record models.MediaRecord
		if err := rows.Scan(
			&record.ID,
			&record.Filename,
			&record.Name,
			&record.Category,
			&record.Type,
			&record.UploadDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan media record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate media records: %w", err)
	}

	return records, nil
}

// DeleteByID atomically removes a media record and returns the removed
// record so the caller can derive its file path. Returns an error wrapping
// sql.ErrNoRows when no record matches.
func (r *mediaRepository) DeleteByID(ctx context.Context, id string) (*models.MediaRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT id, filename, name, category, type, upload_date
		FROM media
		WHERE id = ?
		FOR UPDATE
	`

	var record models.MediaRecord
	err = tx.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.Filename,
		&record.Name,
		&record.Category,
		&record.Type,
		&record.UploadDate,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("media record not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media record: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete media record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delete: %w", err)
	}

	return &record, nil
}
