package engine

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var lastNPattern = regexp.MustCompile(`(\d+)`)

// fiscalLeadingYear returns the leading segment of a fiscal-year string
// ("2022-23" -> "2022"). Plain years pass through.
func fiscalLeadingYear(year string) string {
	if idx := strings.Index(year, "-"); idx > 0 {
		return strings.TrimSpace(year[:idx])
	}
	return strings.TrimSpace(year)
}

// isYear reports whether s is a plain numeric year token.
func isYear(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// resolveYearFilters turns symbolic year expressions into the concrete set of
// leading-year strings to match against. "last N years" resolves against the
// years the dataset actually has: the requested calendar window when it
// overlaps, otherwise the N most recent available years — a dataset that has
// data should never filter down to nothing just because it lags the calendar.
func resolveYearFilters(years []string, availableYears []int, now time.Time) []string {
	var filters []string
	for _, y := range years {
		y = strings.TrimSpace(y)
		switch {
		case isYear(y):
			filters = append(filters, y)
		case strings.Contains(y, "-") && isYear(fiscalLeadingYear(y)):
			filters = append(filters, fiscalLeadingYear(y))
		case strings.Contains(strings.ToLower(y), "last"):
			match := lastNPattern.FindString(y)
			if match == "" {
				continue
			}
			n, _ := strconv.Atoi(match)
			if n <= 0 {
				continue
			}

			currentYear := now.Year()
			requested := make(map[int]bool, n)
			for yr := currentYear - n + 1; yr <= currentYear; yr++ {
				requested[yr] = true
			}

			var matching []int
			for _, yr := range availableYears {
				if requested[yr] {
					matching = append(matching, yr)
				}
			}
			if len(matching) == 0 {
				sorted := append([]int(nil), availableYears...)
				sort.Ints(sorted)
				if len(sorted) > n {
					sorted = sorted[len(sorted)-n:]
				}
				matching = sorted
			}
			for _, yr := range matching {
				filters = append(filters, strconv.Itoa(yr))
			}
		}
	}
	return filters
}

// yearInts extracts concrete integer years from year tokens, reading the
// leading segment of fiscal strings.
func yearInts(years []string) []int {
	var out []int
	for _, y := range years {
		lead := fiscalLeadingYear(y)
		if n, err := strconv.Atoi(lead); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// toFiscalYears converts year tokens to APEDA financial-year format
// ("2023" -> "2023-24"); already-fiscal tokens pass through.
func toFiscalYears(years []string) []string {
	var out []string
	for _, y := range years {
		y = strings.TrimSpace(y)
		switch {
		case strings.Contains(y, "-"):
			out = append(out, y)
		case isYear(y):
			n, _ := strconv.Atoi(y)
			next := strconv.Itoa(n + 1)
			out = append(out, y+"-"+next[len(next)-2:])
		}
	}
	return out
}

// containsFold reports case-insensitive membership of value in set.
func containsFold(set []string, value string) bool {
	for _, s := range set {
		if strings.EqualFold(s, value) {
			return true
		}
	}
	return false
}

func containsString(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func containsInt(set []int, value int) bool {
	for _, n := range set {
		if n == value {
			return true
		}
	}
	return false
}
