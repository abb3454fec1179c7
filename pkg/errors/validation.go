package errors

import (
	"strings"
	"unicode"
)

// ValidateProjectID validates a project identifier for safety.
// Project IDs appear in URLs, cache keys, and database queries, so the
// rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateProjectID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidProject, "project ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidProject, "project ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProject, "project ID contains control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidProject, "project ID contains path characters")
	}

	return nil
}

// ValidateClassURI validates a class URI supplied as a selection.
// The URI is treated as an opaque identifier - only obviously broken
// values are rejected.
func ValidateClassURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidClass, "class URI cannot be empty")
	}

	if len(uri) > 2048 {
		return New(ErrCodeInvalidClass, "class URI too long (max 2048 characters)")
	}

	for _, r := range uri {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidClass, "class URI contains control characters")
		}
	}

	return nil
}
