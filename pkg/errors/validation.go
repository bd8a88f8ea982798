package errors

import (
	"strings"
	"unicode"
)

// ValidateMaterialName validates a material name before it is used to derive
// an output filename. Material names are free-form in the host, so only the
// cases that cannot produce a usable file are rejected.
func ValidateMaterialName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "material name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "material name too long (max 256 characters)")
	}

	if strings.ContainsRune(name, '\x00') {
		return New(ErrCodeInvalidInput, "material name contains a null byte")
	}

	return nil
}

// SafeFileName turns a material name into a single path component.
// Path separators, control characters, and characters that are invalid on
// common filesystems become underscores. A name made only of dots becomes "_".
func SafeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsControl(r):
			b.WriteRune('_')
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if strings.Trim(out, ".") == "" {
		return "_"
	}
	return out
}

// ValidateOutputPath validates a file path supplied for an export.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
