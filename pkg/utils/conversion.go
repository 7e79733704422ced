package utils

import "strconv"

// StringToUint64 parses a numeric id from a URL parameter, 0 when invalid
func StringToUint64(str string) uint64 {
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0
	}
	return val
}

// Uint64ToString is the inverse, used for the token subject
func Uint64ToString(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// StringToIntDefault parses query params like page/limit, falling back on bad input
func StringToIntDefault(str string, def int) int {
	val, err := strconv.Atoi(str)
	if err != nil || val <= 0 {
		return def
	}
	return val
}
