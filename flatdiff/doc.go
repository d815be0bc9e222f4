// Package flatdiff compares two documents in flat form.  Both inputs
// are flattened with the same engine, so the comparison is stable
// under the configured separator, replacements and filters, and is
// insensitive to how the nesting was arranged.
package flatdiff
