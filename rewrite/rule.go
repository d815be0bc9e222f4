package rewrite

import (
	"regexp"
	"strings"

	"github.com/flatkit/flatkit/debug"
)

// RegexPrefix marks a rule's Find text as a regular expression.
const RegexPrefix = "regex:"

// Rule is one find/replace instruction as registered by callers.
type Rule struct {
	Find    string
	Replace string
}

// Compiled is a rule resolved for application: either a literal
// substring replacement or a compiled regex. Regex replacements expand
// $1-style capture references and replace every match.
type Compiled struct {
	literal string
	replace string
	re      *regexp.Regexp
}

// Compile resolves the regex prefix on each rule exactly once. A rule
// whose pattern fails to compile yields a *PatternError.
func Compile(rules []Rule) ([]Compiled, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	res := make([]Compiled, 0, len(rules))
	for _, rule := range rules {
		if pattern, ok := strings.CutPrefix(rule.Find, RegexPrefix); ok {
			re, err := Cached(pattern)
			if err != nil {
				return nil, err
			}
			res = append(res, Compiled{re: re, replace: rule.Replace})
			continue
		}
		res = append(res, Compiled{literal: rule.Find, replace: rule.Replace})
	}
	return res, nil
}

func (c *Compiled) apply(s string) string {
	if c.re != nil {
		if c.re.MatchString(s) {
			return c.re.ReplaceAllString(s, c.replace)
		}
		return s
	}
	if strings.Contains(s, c.literal) {
		return strings.ReplaceAll(s, c.literal, c.replace)
	}
	return s
}

// Apply runs every rule in order over s.
func Apply(rules []Compiled, s string) string {
	in := s
	for i := range rules {
		s = rules[i].apply(s)
	}
	if debug.Rewrite() && s != in {
		debug.Logf("rewrite: %q -> %q\n", in, s)
	}
	return s
}
