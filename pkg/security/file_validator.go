package security

import (
	"errors"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxCVSize is the upload ceiling for résumés (5 MB).
const MaxCVSize int64 = 5 * 1024 * 1024

// SniffLength is how many leading bytes ValidateCV needs for detection.
const SniffLength = 3072

// User-facing rejection messages
var (
	ErrCVType = errors.New("Please upload a PDF or Word document")
	ErrCVSize = errors.New("File size must not exceed 5MB")
	ErrCVNone = errors.New("Please upload a CV.")
)

// allowedCVTypes is the MIME allow-list for résumés
var allowedCVTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateCV runs the pre-submit checks on an upload. The browser-declared
// type is authoritative; the content is only sniffed when the browser sent
// nothing useful. The type check runs before the size check.
func ValidateCV(declaredType string, size int64, head []byte) error {
	if size <= 0 && len(head) == 0 {
		return ErrCVNone
	}

	mediaType := normalizeMediaType(declaredType)
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = DetectMIME(head)
	}
	if !allowedCVTypes[mediaType] {
		return ErrCVType
	}

	if size > MaxCVSize {
		return ErrCVSize
	}
	return nil
}

// DetectMIME sniffs content with mimetype and walks up its parent chain so
// that e.g. a .docx detected as its zip container still matches.
func DetectMIME(head []byte) string {
	if len(head) == 0 {
		return ""
	}
	for m := mimetype.Detect(head); m != nil; m = m.Parent() {
		if allowedCVTypes[m.String()] {
			return m.String()
		}
	}
	return mimetype.Detect(head).String()
}

// IsAllowedCVType reports whether a MIME type is on the allow-list.
func IsAllowedCVType(contentType string) bool {
	return allowedCVTypes[normalizeMediaType(contentType)]
}

func normalizeMediaType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(contentType)
	}
	return mediaType
}
