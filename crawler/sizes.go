package crawler

import (
	"regexp"
	"strconv"
	"strings"
)

var sizeToken = regexp.MustCompile(`([\d.,]+)\s*(TB|GB|MB|KB|B)`)

// ParseSizeBytes converts a human-readable size annotation like
// "11.6 GB" or "from 5.9 GB [Selective Download]" into bytes. The first
// recognizable size token wins. Returns 0 when nothing parses.
func ParseSizeBytes(s string) int64 {
	m := sizeToken.FindStringSubmatch(strings.ToUpper(s))
	if m == nil {
		return 0
	}

	num := strings.ReplaceAll(m[1], ",", ".")
	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}

	var unit float64
	switch m[2] {
	case "TB":
		unit = 1 << 40
	case "GB":
		unit = 1 << 30
	case "MB":
		unit = 1 << 20
	case "KB":
		unit = 1 << 10
	default:
		unit = 1
	}
	return int64(value * unit)
}
