package utils

import (
	"fmt"
	"strings"
)

// SanitizeLabel lowercases a label and replaces every character outside
// [a-z0-9] with an underscore, so it is safe to embed in a file name.
func SanitizeLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// ReadableSize formats a byte count in mebibytes with two decimals, e.g. "12.34 MB".
func ReadableSize(sizeBytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(sizeBytes)/(1024*1024))
}
