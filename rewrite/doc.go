// Package rewrite applies ordered find/replace rules to key and value
// strings.
//
// A rule whose Find begins with "regex:" compiles the remainder as a
// regular expression; any other rule replaces literally. The prefix is
// resolved once when rules are compiled, and compiled patterns live in
// a process-wide cache shared by every engine.
package rewrite
