package kernel

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText trims surrounding whitespace and converts s to Unicode NFC,
// so that "Café" typed with a combining accent and with a precomposed one
// are stored and rendered identically.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
