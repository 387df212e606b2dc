package settings

import "strings"

// ParseColor converts "#rrggbb" into an integer color
// Characters that are not hex digits are skipped rather than rejected, so a
// malformed value still yields a number (possibly outside 0..0xFFFFFF)
func ParseColor(s string) int {
	s = strings.TrimPrefix(s, "#")
	color := 0
	for _, r := range s {
		var d int
		switch {
		case r >= '0' && r <= '9':
			d = int(r - '0')
		case r >= 'a' && r <= 'f':
			d = int(r-'a') + 10
		case r >= 'A' && r <= 'F':
			d = int(r-'A') + 10
		default:
			continue
		}
		color = color*16 + d
	}
	return color
}
