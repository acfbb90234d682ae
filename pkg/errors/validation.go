package errors

import (
	"strings"
	"unicode"
)

// ValidateDocumentName validates a canvas document name for safety.
// It rejects names that could be used for path traversal when the name
// becomes part of a file path or cache key.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDocument, "document name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidDocument, "document name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "document name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidDocument, "document name cannot contain path separators or traversal sequences")
	}

	return nil
}

// ValidateComponentLabel validates a component display label. Labels are
// substituted into generated markup (escaped), so the only hard limits
// are length and control characters.
func ValidateComponentLabel(label string) error {
	const maxLabelLength = 256
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidComponent, "component label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidComponent, "component label contains invalid control characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateSessionID validates a server session identifier. Session ids
// are UUIDs in practice; the check here only guards against ids that
// would be unsafe in file paths or cache keys.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "session id too long (max 64 characters)")
	}
	for _, r := range id {
		ok := r == '-' || r == '_' ||
			(r >= '0' && r <= '9') ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z')
		if !ok {
			return New(ErrCodeInvalidInput, "session id contains invalid characters")
		}
	}
	return nil
}
