package coerce

import (
	"strings"
	"time"
)

const canonicalDateTime = "2006-01-02T15:04:05Z"

// couldBeDate is a cheap pre-filter: four digit year followed by a
// recognizable separator or more digits.
func couldBeDate(s string) bool {
	if len(s) < 8 {
		return false
	}
	if !isDigits(s[:4]) {
		return false
	}
	switch s[4] {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return len(s) == 8 || (len(s) >= 15 && s[8] == 'T')
	case '-', '/', '.':
		return len(s) >= 8
	}
	return false
}

// tryDate parses ISO-8601 dates and common variants, normalizing
// date-only values to YYYY-MM-DD and datetimes to UTC with a Z suffix.
func tryDate(trimmed string) (string, bool) {
	n := len(trimmed)
	if n < 8 || trimmed[0] < '0' || trimmed[0] > '9' {
		return "", false
	}

	// compact date: YYYYMMDD
	if n == 8 && isDigits(trimmed) {
		return tryCompactDate(trimmed)
	}

	// compact datetime: YYYYMMDDTHHMMSS with optional Z or offset
	if n >= 15 && trimmed[8] == 'T' {
		if res, ok := tryCompactDateTime(trimmed); ok {
			return res, true
		}
	}

	// ordinal date: YYYY-DDD
	if n == 8 && trimmed[4] == '-' {
		return tryOrdinalDate(trimmed)
	}

	// week date: YYYY-Www-D
	if n >= 8 && trimmed[4] == '-' && trimmed[5] == 'W' {
		return tryWeekDate(trimmed)
	}

	// standard separators: YYYY-MM-DD, YYYY/MM/DD, YYYY.MM.DD
	if n >= 10 {
		sep := trimmed[4]
		if (sep == '-' || sep == '/' || sep == '.') && trimmed[7] == sep {
			return tryStandardDate(trimmed, sep)
		}
	}

	return "", false
}

func tryCompactDate(s string) (string, bool) {
	d, err := time.Parse("20060102", s)
	if err != nil {
		return "", false
	}
	return d.Format("2006-01-02"), true
}

func tryCompactDateTime(s string) (string, bool) {
	n := len(s)

	if n == 16 && s[15] == 'Z' {
		if d, err := time.Parse("20060102T150405", s[:15]); err == nil {
			return d.UTC().Format(canonicalDateTime), true
		}
	}

	if n >= 19 && (s[15] == '+' || s[15] == '-') {
		datePart := s[0:8]
		timePart := s[9:15]
		offsetPart := s[15:]
		if len(offsetPart) == 5 {
			// +HHMM -> +HH:MM
			offsetPart = offsetPart[:3] + ":" + offsetPart[3:]
		}
		iso := datePart[0:4] + "-" + datePart[4:6] + "-" + datePart[6:8] +
			"T" + timePart[0:2] + ":" + timePart[2:4] + ":" + timePart[4:6] +
			offsetPart
		if d, err := time.Parse(time.RFC3339, iso); err == nil {
			return d.UTC().Format(canonicalDateTime), true
		}
	}

	if n == 15 {
		if d, err := time.Parse("20060102T150405", s); err == nil {
			return d.UTC().Format(canonicalDateTime), true
		}
	}

	return "", false
}

func tryOrdinalDate(s string) (string, bool) {
	d, err := time.Parse("2006-002", s)
	if err != nil {
		return "", false
	}
	return d.Format("2006-01-02"), true
}

// tryWeekDate parses YYYY-Www-D, the ISO week calendar form.
func tryWeekDate(s string) (string, bool) {
	if len(s) != 10 || s[8] != '-' {
		return "", false
	}
	if !isDigits(s[:4]) || !isDigits(s[6:8]) {
		return "", false
	}
	year := atoi(s[:4])
	week := atoi(s[6:8])
	day := int(s[9] - '0')
	if week < 1 || week > 53 || day < 1 || day > 7 {
		return "", false
	}

	// Jan 4 is always in ISO week 1
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-wd)
	d := week1Monday.AddDate(0, 0, (week-1)*7+day-1)
	if gotYear, gotWeek := d.ISOWeek(); gotYear != year || gotWeek != week {
		return "", false
	}
	return d.Format("2006-01-02"), true
}

func tryStandardDate(s string, sep byte) (string, bool) {
	n := len(s)

	if n >= 10 &&
		(!isDigits(s[0:4]) || !isDigits(s[5:7]) || !isDigits(s[8:10])) {
		return "", false
	}

	normalized := s
	if sep != '-' {
		normalized = strings.ReplaceAll(s, string(sep), "-")
	}

	// date-only keeps the calendar form
	if n == 10 {
		if _, err := time.Parse("2006-01-02", normalized); err != nil {
			return "", false
		}
		return normalized, true
	}

	if n < 11 {
		return "", false
	}
	if s[10] != 'T' && s[10] != ' ' {
		return "", false
	}
	if s[10] == ' ' {
		normalized = normalized[:10] + "T" + normalized[11:]
	}

	if d, err := time.Parse(time.RFC3339, normalized); err == nil {
		return d.UTC().Format(canonicalDateTime), true
	}

	if res, ok := tryOffsetVariants(normalized); ok {
		return res, true
	}

	timePart := strings.TrimSuffix(normalized, "Z")
	for _, layout := range []string{
		"2006-01-02T15:04:05", // fractional seconds parse implicitly
		"2006-01-02T15:04",
		"2006-01-02T15",
	} {
		if d, err := time.Parse(layout, timePart); err == nil {
			return d.UTC().Format(canonicalDateTime), true
		}
	}

	return "", false
}

// tryOffsetVariants handles offsets the RFC3339 parser rejects: +HH
// and +HHMM, at any of the positions a time component can end.
func tryOffsetVariants(s string) (string, bool) {
	if len(s) < 14 {
		return "", false
	}
	for _, pos := range []int{16, 19, 22, 23, 26} {
		if pos >= len(s) {
			continue
		}
		if s[pos] != '+' && s[pos] != '-' {
			continue
		}
		normalizedOffset, ok := normalizeOffset(s[pos:])
		if !ok {
			continue
		}
		if d, err := time.Parse(time.RFC3339, s[:pos]+normalizedOffset); err == nil {
			return d.UTC().Format(canonicalDateTime), true
		}
	}
	return "", false
}

// normalizeOffset expands +HH and +HHMM to the +HH:MM form.
func normalizeOffset(offset string) (string, bool) {
	if len(offset) < 2 {
		return "", false
	}
	sign := offset[0]
	if sign != '+' && sign != '-' {
		return "", false
	}
	rest := offset[1:]
	switch {
	case len(rest) == 2 && isDigits(rest):
		return offset + ":00", true
	case len(rest) == 4 && isDigits(rest):
		return string(sign) + rest[:2] + ":" + rest[2:], true
	case len(rest) == 5 && rest[2] == ':':
		return offset, true
	}
	return "", false
}

func atoi(s string) int {
	res := 0
	for i := 0; i < len(s); i++ {
		res = res*10 + int(s[i]-'0')
	}
	return res
}
