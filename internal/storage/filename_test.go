package storage

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/ettora/mediastore/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase passthrough",
			input:    "shoes",
			expected: "shoes",
		},
		{
			name:     "uppercase is lowercased",
			input:    "RedShoe",
			expected: "redshoe",
		},
		{
			name:     "spaces become hyphens",
			input:    "red shoe",
			expected: "red-shoe",
		},
		{
			name:     "punctuation becomes hyphens, trailing trimmed",
			input:    "Red Shoe!!",
			expected: "red-shoe",
		},
		{
			name:     "digits kept",
			input:    "Model 42",
			expected: "model-42",
		},
		{
			name:     "leading punctuation trimmed",
			input:    "!!hot!!",
			expected: "hot",
		},
		{
			name:     "non-ascii becomes hyphens",
			input:    "café au lait",
			expected: "caf--au-lait",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeName(tt.input))
		})
	}
}

func TestGenerateFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	tests := []struct {
		name      string
		input     string
		mediaType models.MediaType
		expected  string
	}{
		{
			name:      "image gets webp extension",
			input:     "Red Shoe!!",
			mediaType: models.MediaTypeImage,
			expected:  "1700000000123-red-shoe.webp",
		},
		{
			name:      "video gets mp4 extension",
			input:     "Launch Teaser",
			mediaType: models.MediaTypeVideo,
			expected:  "1700000000123-launch-teaser.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateFilename(tt.input, tt.mediaType, now))
		})
	}
}

func TestGenerateFilename_Pattern(t *testing.T) {
	// <timestamp>-<sanitized-name>.<ext>
	pattern := regexp.MustCompile(`^\d+-[a-z0-9-]*\.(webp|mp4)$`)

	now := time.Now()
	for _, name := range []string{"plain", "With Spaces", "symbols #1!", "ALLCAPS"} {
		for _, mt := range []models.MediaType{models.MediaTypeImage, models.MediaTypeVideo} {
			filename := GenerateFilename(name, mt, now)
			assert.Regexp(t, pattern, filename)
			assert.Contains(t, filename, fmt.Sprintf("%d-", now.UnixMilli()))
		}
	}
}
