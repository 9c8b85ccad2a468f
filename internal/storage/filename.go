package storage

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/ettora/mediastore/internal/models"
)

// GenerateFilename builds the on-disk name for an upload:
// "<unix-millis>-<sanitized-name>.<ext>" with ext ".webp" for images and
// ".mp4" for videos. The millisecond prefix keeps repeated display names
// from colliding; no global uniqueness check is performed.
func GenerateFilename(name string, mediaType models.MediaType, now time.Time) string {
	ext := ".mp4"
	if mediaType == models.MediaTypeImage {
		ext = ".webp"
	}
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), SanitizeName(name), ext)
}

// SanitizeName lowercases the display name and replaces every character
// outside [A-Za-z0-9] with a hyphen. Leading and trailing hyphens are
// trimmed so punctuation-heavy names don't produce dangling separators.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
