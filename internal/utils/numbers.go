// Package utils provides utility functions for the premium leave engine.
package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ParseMonths parses a month-count cell such as "3", "3.0", "3,0" or
// "3 meses". Fractions are truncated.
func ParseMonths(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty value")
	}

	// Keep the leading number only ("3 meses" -> "3")
	if fields := strings.Fields(s); len(fields) > 1 {
		s = fields[0]
	}
	s = strings.ReplaceAll(s, ",", ".")

	// Handle float strings (e.g., "3.0")
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return int(f), nil
	}

	return strconv.Atoi(s)
}
