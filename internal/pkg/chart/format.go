package chart

import "strconv"

// FormatCompact renders axis values: anything above 1000 is shown in
// thousands with a "k" suffix, everything else as the plain number.
func FormatCompact(v float64) string {
	if v > 1000 {
		return strconv.FormatFloat(v/1000, 'f', -1, 64) + "k"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCount is FormatCompact for integer counts.
func FormatCount(n int64) string {
	return FormatCompact(float64(n))
}

// tickFormatter adapts FormatCompact to go-chart's ValueFormatter.
func tickFormatter(v interface{}) string {
	switch typed := v.(type) {
	case float64:
		return FormatCompact(typed)
	case int:
		return FormatCompact(float64(typed))
	case int64:
		return FormatCompact(float64(typed))
	default:
		return ""
	}
}
