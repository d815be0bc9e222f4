// Package coerce converts string leaves to typed IR values.
//
// Conversion is heuristic: null tokens ("null", "N/A", ...), boolean
// tokens ("yes", "off", ...), ISO-8601 dates (normalized to UTC), and a
// wide range of numeric formats (currency prefixes, thousands
// separators, percentages, basis points, magnitude suffixes, fractions,
// radix literals, accounting negatives). Strings that match nothing are
// left untouched.
//
// Dates are checked before numbers, so "2024-01-15" normalizes as a
// date instead of parsing as arithmetic.
package coerce
