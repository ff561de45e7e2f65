package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// decoderNameRegex matches decoder names. Names end up in output file
// names and URL paths, so they are kept to a conservative alphabet.
var decoderNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateDecoderName validates a decoder name for use in file names and
// URLs.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Lowercase letters, digits, '_' and '-' only, not starting with '_' or '-'
//   - Maximum length of 64 characters
func ValidateDecoderName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDecoder, "decoder name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidDecoder, "decoder name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDecoder, "decoder name contains invalid control characters")
		}
	}

	if !decoderNameRegex.MatchString(name) {
		return New(ErrCodeInvalidDecoder, "invalid decoder name: %q", name)
	}

	return nil
}

// cacheSchemes lists the URL schemes a cache location may use.
var cacheSchemes = []string{"redis://", "rediss://", "mongodb://", "mongodb+srv://"}

// ValidateCacheURL validates a cache location: "file", "none", a file
// path, or a redis or mongodb URL.
func ValidateCacheURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidInput, "cache location cannot be empty")
	}
	if raw == "file" || raw == "none" {
		return nil
	}

	if i := strings.Index(raw, "://"); i >= 0 {
		for _, s := range cacheSchemes {
			if strings.HasPrefix(raw, s) {
				return nil
			}
		}
		return New(ErrCodeInvalidInput, "unsupported cache scheme %q", raw[:i])
	}

	for _, r := range raw {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "cache path contains invalid characters")
		}
	}
	return nil
}
