package models

import "time"

// MediaRecord represents the metadata row for one uploaded asset
type MediaRecord struct {
	ID         string    `json:"id" db:"id"`
	Filename   string    `json:"filename" db:"filename"`
	Name       string    `json:"name" db:"name"`
	Category   Category  `json:"category" db:"category"`
	Type       MediaType `json:"type" db:"type"`
	UploadDate time.Time `json:"uploadDate" db:"upload_date"`
}

// Category classifies an asset's purpose and doubles as the
// file-system partition under the uploads root
type Category string

const (
	CategoryProduct Category = "product"
	CategoryModel   Category = "model"
	CategoryVideo   Category = "video"
)

// Valid reports whether the category is one of the known values
func (c Category) Valid() bool {
	switch c {
	case CategoryProduct, CategoryModel, CategoryVideo:
		return true
	default:
		return false
	}
}

// MediaType represents the media kind, which governs transcoding and rendering
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Valid reports whether the media type is one of the known values
func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeImage, MediaTypeVideo:
		return true
	default:
		return false
	}
}
