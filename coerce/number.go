package coerce

import (
	"strconv"
	"strings"
)

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func tryNumber(trimmed string) (float64, bool) {
	if trimmed == "" {
		return 0, false
	}

	// fast path: plain numbers and scientific notation
	if num, ok := parseFloat(trimmed); ok {
		return num, true
	}

	// percentage: per hundred
	if stripped, ok := strings.CutSuffix(trimmed, "%"); ok {
		if num, ok := parseFloat(stripped); ok {
			return num / 100.0, true
		}
	}

	// permille: per thousand
	if stripped, ok := strings.CutSuffix(trimmed, "‰"); ok {
		if num, ok := parseFloat(stripped); ok {
			return num / 1000.0, true
		}
	}

	// permyriad: per ten thousand
	if stripped, ok := strings.CutSuffix(trimmed, "‱"); ok {
		if num, ok := parseFloat(stripped); ok {
			return num / 10000.0, true
		}
	}

	if num, ok := tryBasisPoints(trimmed); ok {
		return num, true
	}
	if num, ok := trySuffixedNumber(trimmed); ok {
		return num, true
	}
	if num, ok := tryFraction(trimmed); ok {
		return num, true
	}
	if num, ok := tryRadixNumber(trimmed); ok {
		return num, true
	}

	// slow path: strip currency and separator formatting, then retry
	return parseFloat(cleanNumberString(trimmed))
}

// tryBasisPoints parses "25bp", "25bps", "25 bp", "25 bps" as 0.0025.
func tryBasisPoints(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	for _, suffix := range []string{"bps", "bp", " bps", " bp"} {
		if numStr, ok := strings.CutSuffix(s, suffix); ok {
			if num, ok := parseFloat(strings.TrimSpace(numStr)); ok {
				return num / 10000.0, true
			}
		}
	}
	return 0, false
}

// trySuffixedNumber parses magnitude suffixes: 1K, 2.5M, 3B, 1T
// (case-insensitive). K = thousand, M = million, B = billion,
// T = trillion.
func trySuffixedNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, false
	}
	var multiplier float64
	switch s[len(s)-1] {
	case 'k', 'K':
		multiplier = 1_000
	case 'm', 'M':
		multiplier = 1_000_000
	case 'b', 'B':
		multiplier = 1_000_000_000
	case 't', 'T':
		multiplier = 1_000_000_000_000
	default:
		return 0, false
	}
	if num, ok := parseFloat(strings.TrimSpace(s[:len(s)-1])); ok {
		return num * multiplier, true
	}
	return 0, false
}

// tryFraction parses simple fractions ("1/2", "-1/4") and mixed
// fractions ("2 1/2", "-1 1/2").
func tryFraction(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		return 0, false
	}

	if spacePos := strings.LastIndex(s, " "); spacePos >= 0 {
		wholePart := strings.TrimSpace(s[:spacePos])
		fractionPart := strings.TrimSpace(s[spacePos+1:])
		whole, okW := parseFloat(wholePart)
		frac, okF := parseSimpleFraction(fractionPart)
		if okW && okF {
			// -1 1/2 is -1.5, not -0.5
			if whole < 0 {
				return whole - frac, true
			}
			return whole + frac, true
		}
	}
	return parseSimpleFraction(s)
}

func parseSimpleFraction(s string) (float64, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, false
	}
	numerator, okN := parseFloat(strings.TrimSpace(parts[0]))
	denominator, okD := parseFloat(strings.TrimSpace(parts[1]))
	if !okN || !okD || denominator == 0 {
		return 0, false
	}
	return numerator / denominator, true
}

// tryRadixNumber parses hex (0x...), binary (0b...), and octal (0o...)
// literals, with an optional leading minus.
func tryRadixNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	isNegative := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		isNegative = true
		s = strings.TrimSpace(rest)
	}

	var (
		digits string
		base   int
	)
	switch {
	case hasPrefixFold(s, "0x"):
		digits, base = s[2:], 16
	case hasPrefixFold(s, "0b"):
		digits, base = s[2:], 2
	case hasPrefixFold(s, "0o"):
		digits, base = s[2:], 8
	default:
		return 0, false
	}
	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, false
	}
	if isNegative {
		return -float64(n), true
	}
	return float64(n), true
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

var currencyPrefixes = []string{
	"R$", "A$", "C$", "AU$", "CA$", "US$", "Fr", "kr", "zł", "Kč",
}

const currencySymbols = "$€£¥₹₽₩₺"

// cleanNumberString strips currency symbols and codes, thousands
// separators, and accounting negative notation, returning text the
// float parser can handle. Formats it cannot make sense of come back
// unchanged so the parse fails downstream.
func cleanNumberString(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}

	// negative notations: -123, (123.45), [123.45], 123.45-
	isNegative := strings.HasPrefix(trimmed, "-") ||
		(strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) ||
		strings.HasSuffix(trimmed, "-")

	working := trimmed
	if isNegative {
		switch {
		case strings.HasPrefix(working, "(") && strings.HasSuffix(working, ")"):
			working = working[1 : len(working)-1]
		case strings.HasPrefix(working, "[") && strings.HasSuffix(working, "]"):
			working = working[1 : len(working)-1]
		case strings.HasSuffix(working, "-"):
			working = working[:len(working)-1]
		default:
			working = working[1:]
		}
	}
	working = strings.TrimSpace(working)
	working = strings.TrimSpace(strings.TrimPrefix(working, "+"))

	// multi-character currency prefixes first (R$, kr, zł, ...)
	if len(working) > 2 {
		for _, prefix := range currencyPrefixes {
			if rest, ok := strings.CutPrefix(working, prefix); ok {
				working = strings.TrimSpace(rest)
				break
			}
		}
	}

	// single-character currency symbols at the start
	working = strings.TrimSpace(strings.TrimLeft(working, currencySymbols))

	// three-letter currency codes, only when followed by a space
	// ("USD 123") to avoid eating identifiers
	if len(working) > 4 {
		firstThree := working[:3]
		if isUpperASCII(firstThree) && working[3] == ' ' {
			working = strings.TrimSpace(working[3:])
		}
	}

	// trailing currency symbols and credit/debit markers
	working = strings.TrimRight(working, currencySymbols)
	for {
		next := working
		for _, marker := range []string{"CR", "DR", "cr", "dr"} {
			next = strings.TrimSuffix(next, marker)
		}
		if next == working {
			break
		}
		working = next
	}
	working = strings.TrimSpace(working)

	if !strings.ContainsAny(working, ",. '_") {
		if isNegative {
			return "-" + working
		}
		return working
	}

	lastComma := strings.LastIndex(working, ",")
	lastDot := strings.LastIndex(working, ".")
	commaCount := strings.Count(working, ",")
	dotCount := strings.Count(working, ".")

	var buf strings.Builder
	buf.Grow(len(working) + 1)
	if isNegative {
		buf.WriteByte('-')
	}

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastDot > lastComma {
			// US format 1,234.56: keep the dot, drop commas
			writeFiltered(&buf, working, ", '_", 0)
		} else {
			// European format 1.234,56: comma is the decimal point
			writeFiltered(&buf, working, ". '_", ',')
		}
	case lastComma >= 0 && dotCount == 0:
		if commaCount == 1 {
			// single comma reads as a European decimal: 12,34
			writeFiltered(&buf, working, " '_", ',')
		} else if validCommaGrouping(working) {
			writeFiltered(&buf, working, ", '_", 0)
		} else {
			// like "12,34,56": keep it and let the parse fail
			return working
		}
	case lastDot >= 0 && commaCount == 0 && dotCount > 1:
		if validDotGrouping(working) {
			// European thousands: 1.234.567
			writeFiltered(&buf, working, ". '_", 0)
		} else {
			return working
		}
	default:
		writeFiltered(&buf, working, " '_", 0)
	}
	return buf.String()
}

// writeFiltered copies working into buf, skipping bytes in skip and
// mapping decimalFrom (if nonzero) to '.'.
func writeFiltered(buf *strings.Builder, working, skip string, decimalFrom byte) {
	for i := 0; i < len(working); i++ {
		b := working[i]
		if decimalFrom != 0 && b == decimalFrom {
			buf.WriteByte('.')
			continue
		}
		if strings.IndexByte(skip, b) >= 0 {
			continue
		}
		buf.WriteByte(b)
	}
}

// validCommaGrouping accepts US thousands grouping (1,234,567) and
// Indian grouping (1,00,000 or 12,34,567).
func validCommaGrouping(s string) bool {
	segments := strings.Split(s, ",")
	if len(segments) < 2 {
		return false
	}

	usThousands := true
	for _, seg := range segments[1:] {
		if len(seg) != 3 || !isDigits(seg) {
			usThousands = false
			break
		}
	}
	if usThousands {
		return true
	}

	last := segments[len(segments)-1]
	lastValid := (len(last) == 3 || len(last) == 2) && isDigits(last)
	first := segments[0]
	firstValid := first != "" && len(first) <= 3 && isDigits(first)
	middleValid := true
	for _, seg := range segments[1 : len(segments)-1] {
		if len(seg) != 2 || !isDigits(seg) {
			middleValid = false
			break
		}
	}
	return firstValid && middleValid && lastValid
}

func validDotGrouping(s string) bool {
	segments := strings.Split(s, ".")
	if len(segments) < 2 {
		return false
	}
	for _, seg := range segments[1:] {
		if len(seg) != 3 || !isDigits(seg) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return s != ""
}
