package errors

import (
	"strings"
	"unicode"
)

// ValidateElementID validates an element identifier for safety and
// correctness. Element ids are opaque strings chosen by the host, but
// they flow into log lines, cache keys, and storage documents, so the
// rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 128 characters
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "element id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "element id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "element id contains invalid control characters")
		}
	}

	return nil
}

// ValidateSceneName validates a scene name used as a storage key.
// It ensures the name is a simple identifier without path components,
// since file-backed stores derive filenames from it.
func ValidateSceneName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidScene, "scene name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidScene, "scene name too long (max 128 characters)")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidScene, "scene name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidScene, "scene name cannot contain path traversal sequences (..)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "scene name contains invalid characters")
		}
	}

	return nil
}
