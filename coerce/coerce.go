package coerce

import (
	"math"
	"strings"

	"github.com/flatkit/flatkit/debug"
	"github.com/flatkit/flatkit/ir"
)

var boolTokens = map[string]bool{
	"true": true, "TRUE": true, "True": true,
	"false": false, "FALSE": false, "False": false,

	"yes": true, "YES": true, "Yes": true,
	"no": false, "NO": false, "No": false,

	"y": true, "Y": true,
	"n": false, "N": false,

	"on": true, "ON": true, "On": true,
	"off": false, "OFF": false, "Off": false,
}

var nullTokens = map[string]struct{}{
	"null": {}, "NULL": {}, "Null": {},
	"nil": {}, "NIL": {}, "Nil": {},
	"none": {}, "NONE": {}, "None": {},
	"N/A": {}, "n/a": {}, "NA": {}, "na": {},
}

// Convert returns the typed node for a string value, or nil when the
// string does not convert. The first byte gates which conversions are
// even attempted, so unconvertible strings are rejected cheaply.
func Convert(s string) *ir.Node {
	if s == "" {
		return nil
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}

	switch first := trimmed[0]; {
	case first == 'n' || first == 'N':
		if _, ok := nullTokens[trimmed]; ok {
			return ir.Null()
		}
		// "no", "NO", "No", "n", "N"
		if b, ok := boolTokens[trimmed]; ok {
			return ir.FromBool(b)
		}
	case first == 't' || first == 'T' || first == 'f' || first == 'F',
		first == 'y' || first == 'Y',
		first == 'o' || first == 'O':
		if b, ok := boolTokens[trimmed]; ok {
			return ir.FromBool(b)
		}
	case first >= '0' && first <= '9',
		first == '-' || first == '+' || first == '.',
		first == '$' || first == '(' || first == '[':
		// dates look numeric, so they are checked first
		if couldBeDate(trimmed) {
			if normalized, ok := tryDate(trimmed); ok {
				if normalized == trimmed {
					return nil
				}
				return ir.FromString(normalized)
			}
		}
		if num, ok := tryNumber(trimmed); ok {
			return numberNode(num)
		}
	case first >= 'A' && first <= 'Z', first >= 0xC2:
		// currency codes ("USD 12") and multi-byte symbols (€, £, ...)
		if num, ok := tryNumber(trimmed); ok {
			return numberNode(num)
		}
	}
	return nil
}

// numberNode builds a number node, preferring int64 for integral
// values. Non-finite floats are not representable and yield nil.
func numberNode(num float64) *ir.Node {
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return nil
	}
	if num == math.Trunc(num) && num >= math.MinInt64 && num <= math.MaxInt64 {
		return ir.FromInt(int64(num))
	}
	return ir.FromFloat(num)
}

// Apply rewrites all string leaves of node in place, recursing through
// objects and arrays. Object keys are not touched.
func Apply(node *ir.Node) {
	switch node.Type {
	case ir.ObjectType, ir.ArrayType:
		for _, v := range node.Values {
			Apply(v)
		}
	case ir.StringType:
		if converted := Convert(node.String); converted != nil {
			if debug.Coerce() {
				debug.Logf("coerce: %q -> %v\n", node.String, converted)
			}
			*node = *converted
		}
	}
}
