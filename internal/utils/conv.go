package utils

import (
	"strconv"
)

// ParseID converts a route identifier to a database key. The second return
// is false for empty or non-numeric input.
func ParseID(s string) (uint, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// FormatID is the inverse of ParseID, used when stringifying record IDs for
// the wire format.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
