package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds feature ids; they end up in SVG element ids and CSS
// selectors.
const maxIDLength = 64

// featureIDRegex matches ids that are safe to use as SVG/HTML element ids.
var featureIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateFeatureID validates a feature identifier.
//
// Rules:
//   - No empty ids
//   - Lowercase letters, digits, '-' and '_' only, starting with a letter or digit
//   - Maximum length of 64 characters
func ValidateFeatureID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidFeature, "feature id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidFeature, "feature id too long (max %d characters): %q", maxIDLength, id)
	}
	if !featureIDRegex.MatchString(id) {
		return New(ErrCodeInvalidFeature, "invalid feature id %q (use lowercase letters, digits, '-' or '_')", id)
	}
	return nil
}

// ValidateText rejects empty or control-character laden display text.
// Newlines and tabs are allowed.
func ValidateText(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidFeature, "%s cannot be empty", field)
	}
	for _, r := range s {
		if r == '\n' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFeature, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a CSS hex color.
func ValidateColor(c string) error {
	if !hexColorRegex.MatchString(c) {
		return New(ErrCodeInvalidInput, "invalid color %q (want #rgb or #rrggbb)", c)
	}
	return nil
}
