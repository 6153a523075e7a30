package usecase

import (
	"fmt"
	"strings"
	"unicode"
)

// SplitFullName splits a display name on the first whitespace run:
// the first token is the given name, the remainder the family name.
// Whitespace inside the remainder is kept verbatim. A name without
// whitespace cannot be split and fails, because the caller needs both
// parts.
func SplitFullName(full string) (string, string, error) {
	trimmed := strings.TrimSpace(full)
	cut := strings.IndexFunc(trimmed, unicode.IsSpace)
	if cut < 0 {
		return "", "", fmt.Errorf("%w: cannot split %q into first and last name", ErrAmbiguousName, full)
	}

	first := trimmed[:cut]
	rest := strings.TrimLeftFunc(trimmed[cut:], unicode.IsSpace)
	return first, rest, nil
}

// SanitizeSourceName normalizes the name fields of a source record
// that may carry first/last separately or only a combined display
// name. When both parts are present they are returned unchanged.
// A one-word display name yields an empty counterpart instead of an
// error so attendance facts stay ingestable.
func SanitizeSourceName(first, last, full string) (string, string) {
	if first != "" && last != "" {
		return first, last
	}

	splitFirst, splitLast, err := SplitFullName(full)
	if err != nil {
		single := strings.TrimSpace(full)
		if first != "" {
			return first, ""
		}
		if last != "" {
			return "", last
		}
		return single, ""
	}

	return splitFirst, splitLast
}
