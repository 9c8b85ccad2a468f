package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ettora/mediastore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupMediaTestRepository creates a media repository with a mock database
func setupMediaTestRepository(t *testing.T) (*mediaRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewMediaRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func mediaColumns() []string {
	return []string{"id", "filename", "name", "category", "type", "upload_date"}
}

func TestNewMediaRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewMediaRepository(db, zap.NewNop())

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMediaRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		record        *models.MediaRecord
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			record: &models.MediaRecord{
				Filename: "1700000000123-red-shoe.webp",
				Name:     "Red Shoe!!",
				Category: models.CategoryProduct,
				Type:     models.MediaTypeImage,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO media`).
					WithArgs(sqlmock.AnyArg(), "1700000000123-red-shoe.webp", "Red Shoe!!", models.CategoryProduct, models.MediaTypeImage, sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "database error on insert",
			record: &models.MediaRecord{
				Filename: "1700000000123-clip.mp4",
				Name:     "Clip",
				Category: models.CategoryVideo,
				Type:     models.MediaTypeVideo,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO media`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupMediaTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.record)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				// insert assigns id and upload date
				assert.NotEmpty(t, tt.record.ID)
				assert.False(t, tt.record.UploadDate.IsZero())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMediaRepository_Create_PreservesAssignedValues(t *testing.T) {
	repo, mock, cleanup := setupMediaTestRepository(t)
	defer cleanup()

	uploadDate := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	record := &models.MediaRecord{
		ID:         "fixed-id",
		Filename:   "1-a.webp",
		Name:       "a",
		Category:   models.CategoryProduct,
		Type:       models.MediaTypeImage,
		UploadDate: uploadDate,
	}

	mock.ExpectExec(`INSERT INTO media`).
		WithArgs("fixed-id", "1-a.webp", "a", models.CategoryProduct, models.MediaTypeImage, uploadDate).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), record))
	assert.Equal(t, "fixed-id", record.ID)
	assert.Equal(t, uploadDate, record.UploadDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRepository_List(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		offset        int
		limit         int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedIDs   []string
	}{
		{
			name:   "success - newest first",
			offset: 0,
			limit:  2,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(mediaColumns()).
					AddRow("c", "3-c.webp", "C", "product", "image", now).
					AddRow("b", "2-b.webp", "B", "model", "image", now.Add(-time.Minute))
				mock.ExpectQuery(`SELECT id, filename, name, category, type, upload_date FROM media ORDER BY upload_date DESC, id DESC LIMIT \? OFFSET \?`).
					WithArgs(2, 0).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedIDs:   []string{"c", "b"},
		},
		{
			name:   "second page",
			offset: 2,
			limit:  2,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(mediaColumns()).
					AddRow("a", "1-a.mp4", "A", "video", "video", now.Add(-2*time.Minute))
				mock.ExpectQuery(`SELECT id, filename, name, category, type, upload_date FROM media ORDER BY upload_date DESC, id DESC LIMIT \? OFFSET \?`).
					WithArgs(2, 2).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedIDs:   []string{"a"},
		},
		{
			name:   "empty page returns empty slice",
			offset: 40,
			limit:  20,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, filename, name, category, type, upload_date FROM media`).
					WithArgs(20, 40).
					WillReturnRows(sqlmock.NewRows(mediaColumns()))
			},
			expectedError: false,
			expectedIDs:   []string{},
		},
		{
			name:   "database error",
			offset: 0,
			limit:  20,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, filename, name, category, type, upload_date FROM media`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupMediaTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			records, err := repo.List(context.Background(), tt.offset, tt.limit)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, records)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, records)
				ids := make([]string, 0, len(records))
				for _, r := range records {
					ids = append(ids, r.ID)
				}
				assert.Equal(t, tt.expectedIDs, ids)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMediaRepository_DeleteByID(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		id            string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		notFound      bool
	}{
		{
			name: "success returns removed record",
			id:   "test-id-123",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				rows := sqlmock.NewRows(mediaColumns()).
					AddRow("test-id-123", "1-a.webp", "A", "product", "image", now)
				mock.ExpectQuery(`SELECT id, filename, name, category, type, upload_date FROM media WHERE id = \? FOR UPDATE`).
					WithArgs("test-id-123").
					WillReturnRows(rows)
				mock.ExpectExec(`DELETE FROM media WHERE id = \?`).
					WithArgs("test-id-123").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			expectedError: false,
		},
		{
			name: "record not found",
			id:   "nonexistent-id",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT id, filename, name, category, type, upload_date FROM media WHERE id = \? FOR UPDATE`).
					WithArgs("nonexistent-id").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedError: true,
			notFound:      true,
		},
		{
			name: "database error on delete",
			id:   "test-id-123",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				rows := sqlmock.NewRows(mediaColumns()).
					AddRow("test-id-123", "1-a.webp", "A", "product", "image", now)
				mock.ExpectQuery(`SELECT id, filename, name, category, type, upload_date FROM media WHERE id = \? FOR UPDATE`).
					WithArgs("test-id-123").
					WillReturnRows(rows)
				mock.ExpectExec(`DELETE FROM media WHERE id = \?`).
					WithArgs("test-id-123").
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupMediaTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			record, err := repo.DeleteByID(context.Background(), tt.id)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, record)
				if tt.notFound {
					assert.ErrorIs(t, err, sql.ErrNoRows)
				}
			} else {
				assert.NoError(t, err)
				require.NotNil(t, record)
				assert.Equal(t, tt.id, record.ID)
				assert.Equal(t, "1-a.webp", record.Filename)
				assert.Equal(t, models.CategoryProduct, record.Category)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
