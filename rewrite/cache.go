package rewrite

import (
	"regexp"
	"sync"
)

// cache is process-wide and append-only. Patterns come from
// configuration rather than input documents, so the map stays bounded.
// Two goroutines may race to compile the same pattern; LoadOrStore
// keeps a single canonical entry either way.
var cache sync.Map // pattern text -> *regexp.Regexp

// Cached returns the compiled regex for pattern, compiling and caching
// it on first use.
func Cached(pattern string) (*regexp.Regexp, error) {
	if v, ok := cache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	actual, _ := cache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}
