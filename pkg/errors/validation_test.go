package errors

import (
	"strings"
	"testing"
)

func TestValidateDocumentName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "landing-page", false},
		{"valid with spaces", "My Landing Page", false},
		{"valid with underscore", "draft_v2", false},
		{"valid with dot", "page.draft", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"path traversal ..", "foo/../bar", true},
		{"forward slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDocument) {
				t.Errorf("ValidateDocumentName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateComponentLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty is fine", "", false},
		{"simple", "Button", false},
		{"with punctuation", "Sign up now!", false},
		{"with tab", "a\tb", false},
		{"unicode", "Überschrift", false},

		{"too long", strings.Repeat("x", 300), true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComponentLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateComponentLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/path", false},
		{"http", "http://example.com/path", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSessionID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "3e8c6f4a-1b2d-4c5e-8f9a-0b1c2d3e4f5a", false},
		{"alphanumeric", "session42", false},
		{"with underscore", "sess_42", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 100), true},
		{"slash", "a/b", true},
		{"dots", "a..b", true},
		{"space", "a b", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSessionID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSessionID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidPayload,
		ErrCodeInvalidRegion,
		ErrCodeInvalidComponent,
		ErrCodeInvalidDocument,
		ErrCodeEmptyCanvas,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeSessionNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
