package core

import "strings"

const (
	displayLengthSmall  = 4
	displayLengthMedium = 5
	displayLengthLarge  = 6
)

// GetDisplayPrefixLength returns the short ID length for display. Longer
// journals need longer prefixes to stay unambiguous.
func GetDisplayPrefixLength(entryCount int) int {
	if entryCount < 500 {
		return displayLengthSmall
	}
	if entryCount < 1500 {
		return displayLengthMedium
	}
	return displayLengthLarge
}

// GetGUIDPrefix extracts the shortened ID shown in history output.
func GetGUIDPrefix(guid string, length int) string {
	base := strings.TrimPrefix(guid, "msg-")
	base = strings.ReplaceAll(base, "-", "")
	if length <= 0 {
		return ""
	}
	if length > len(base) {
		length = len(base)
	}
	return base[:length]
}
