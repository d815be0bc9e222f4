// Package format names the concrete syntaxes flatkit reads and
// writes, and maps between format names, file extensions and the
// Format enum used by the parse and encode packages.
package format
