package utils

import (
	"fmt"
	"strings"

	"github.com/dentacare/dental-center-api/models"
)

// MaxAttachmentSize caps inline uploads at 5 MB, matching the file
// picker's client-side limit.
const MaxAttachmentSize = 5 * 1024 * 1024

var allowedAttachmentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
	"text/plain":      true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateAttachment checks an incoming file attachment before it is
// stored on an incident.
func ValidateAttachment(f models.FileAttachment) error {
	if f.Name == "" {
		return fmt.Errorf("attachment requires a name")
	}
	if !allowedAttachmentTypes[f.Type] {
		return fmt.Errorf("file type %q is not allowed", f.Type)
	}
	if f.Size <= 0 {
		return fmt.Errorf("attachment size must be positive")
	}
	if f.Size > MaxAttachmentSize {
		return fmt.Errorf("attachment exceeds the %s limit", FormatFileSize(MaxAttachmentSize))
	}
	if !strings.HasPrefix(f.URL, "data:") {
		return fmt.Errorf("attachment content must be a data URI")
	}
	return nil
}

// FormatFileSize renders a byte count for display ("1.5 MB").
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d Bytes", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMG"[exp])
}
