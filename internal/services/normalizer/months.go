package normalizer

import (
	"strings"
	"time"

	"premium-leave-engine/internal/utils"
)

// Language selects a month-name table.
type Language string

const (
	Portuguese Language = "pt"
	English    Language = "en"
)

var monthNames = map[Language][12]string{
	Portuguese: {
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	},
	English: {
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	},
}

// foldedMonthNames holds the accent-folded full names of each table.
var foldedMonthNames = map[Language][12]string{
	Portuguese: foldNames(Portuguese),
	English:    foldNames(English),
}

// lookupOrder is the order tables are consulted in.
var lookupOrder = []Language{Portuguese, English}

// minMonthPrefix is the shortest accepted abbreviation.
const minMonthPrefix = 3

func foldNames(lang Language) [12]string {
	var folded [12]string
	for i, name := range monthNames[lang] {
		folded[i] = utils.FoldKey(name)
	}
	return folded
}

// LookupMonth resolves a month name or abbreviation, case- and
// accent-insensitively. The word must be a prefix of a full month name at
// least three letters long ("mar", "sept", "fevereiro"), so words that merely
// share the first letters ("marketing", "outros") are rejected. Portuguese is
// tried before English.
func LookupMonth(name string) (time.Month, bool) {
	word := utils.FoldKey(name)
	if len([]rune(word)) < minMonthPrefix {
		return 0, false
	}
	for _, lang := range lookupOrder {
		for i, full := range foldedMonthNames[lang] {
			if strings.HasPrefix(full, word) {
				return time.Month(i + 1), true
			}
		}
	}
	return 0, false
}

// MonthName returns the full month name in the given language.
func MonthName(m time.Month, lang Language) string {
	names, ok := monthNames[lang]
	if !ok || m < time.January || m > time.December {
		return ""
	}
	return names[m-1]
}
