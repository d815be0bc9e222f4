package flatten

import (
	"strconv"
	"strings"

	"github.com/flatkit/flatkit/ir"
	"github.com/flatkit/flatkit/rewrite"
)

// rewriteKeys applies the key rules and lowercasing to every entry
// key.  Collisions the rewrite introduces are resolved separately.
func (e *Engine) rewriteKeys(entries []Entry) []Entry {
	if len(e.keyRules) == 0 && !e.cfg.lowercase {
		return entries
	}
	for i := range entries {
		k := rewrite.Apply(e.keyRules, entries[i].Key)
		if e.cfg.lowercase {
			k = strings.ToLower(k)
		}
		entries[i].Key = k
	}
	return entries
}

// rewriteValues applies the value rules to string-typed values.
func (e *Engine) rewriteValues(entries []Entry) []Entry {
	if len(e.valueRules) == 0 {
		return entries
	}
	for i := range entries {
		entries[i].Value = e.rewriteValue(entries[i].Value)
	}
	return entries
}

func (e *Engine) rewriteValue(v *ir.Node) *ir.Node {
	if v.Type != ir.StringType {
		return v
	}
	s := rewrite.Apply(e.valueRules, v.String)
	if s == v.String {
		return v
	}
	return ir.FromString(s)
}

// resolveCollisions reconciles entries that ended up with the same key
// after rewriting.  The default policy keeps every value under a
// distinct key by suffixing colliding keys with a numeric index in
// first-seen order.  With collision collection enabled, values sharing
// a key are gathered into an array at the first occurrence.
func (e *Engine) resolveCollisions(entries []Entry) []Entry {
	if e.cfg.collectCollisions {
		return e.collectCollisions(entries)
	}
	return e.suffixCollisions(entries)
}

func (e *Engine) suffixCollisions(entries []Entry) []Entry {
	counts := make(map[string]int, len(entries))
	for _, ent := range entries {
		counts[ent.Key]++
	}
	next := make(map[string]int)
	for i := range entries {
		k := entries[i].Key
		if counts[k] < 2 {
			continue
		}
		entries[i].Key = k + e.cfg.separator + strconv.Itoa(next[k])
		next[k]++
	}
	return entries
}

func (e *Engine) collectCollisions(entries []Entry) []Entry {
	at := make(map[string]int, len(entries))
	res := entries[:0]
	for _, ent := range entries {
		i, seen := at[ent.Key]
		if !seen {
			at[ent.Key] = len(res)
			res = append(res, ent)
			continue
		}
		prev := &res[i]
		if !prev.merged {
			merged := ir.Array()
			merged.Push(prev.Value)
			prev.Value = merged
			prev.merged = true
		}
		prev.Value.Push(ent.Value)
	}
	return res
}
