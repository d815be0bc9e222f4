package flatten

import (
	"fmt"
	"runtime"

	"github.com/flatkit/flatkit/rewrite"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Mode selects the transformation an Engine performs.
type Mode int

const (
	// FlattenMode converts nested documents to flat key/value form.
	FlattenMode Mode = iota
	// UnflattenMode reconstructs nested documents from flat form.
	UnflattenMode
	// TransformMode applies coercion, replacements and filters to a
	// document without changing its shape.
	TransformMode
)

func (m Mode) String() string {
	switch m {
	case FlattenMode:
		return "flatten"
	case UnflattenMode:
		return "unflatten"
	case TransformMode:
		return "transform"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

const (
	defaultSeparator               = "."
	defaultParallelThreshold       = 10
	defaultNestedParallelThreshold = 100
)

// Config accumulates engine settings.  Every With method returns a
// modified copy, so configs can be shared and forked freely.  Build
// compiles the config into an Engine.
type Config struct {
	mode      Mode
	separator string
	lowercase bool

	removeEmptyStrings bool
	removeNulls        bool
	removeEmptyObjects bool
	removeEmptyArrays  bool

	keyRules   []rewrite.Rule
	valueRules []rewrite.Rule

	collectCollisions bool
	autoConvert       bool

	parallelThreshold int
	nestedThreshold   int
	workers           int

	keepWhere string
}

// New returns a Config with defaults: flatten mode, "." separator,
// batch parallel threshold 10 and nested parallel threshold 100.
func New() Config {
	return Config{
		mode:              FlattenMode,
		separator:         defaultSeparator,
		parallelThreshold: defaultParallelThreshold,
		nestedThreshold:   defaultNestedParallelThreshold,
	}
}

// WithMode sets the transformation mode.
func (c Config) WithMode(m Mode) Config {
	c.mode = m
	return c
}

// WithSeparator sets the string joining path segments in flat keys.
func (c Config) WithSeparator(sep string) Config {
	c.separator = sep
	return c
}

// WithLowercaseKeys lowercases all keys after key replacements.
func (c Config) WithLowercaseKeys(on bool) Config {
	c.lowercase = on
	return c
}

// WithRemoveEmptyStrings drops values that are the empty string.
func (c Config) WithRemoveEmptyStrings(on bool) Config {
	c.removeEmptyStrings = on
	return c
}

// WithRemoveNulls drops null values.
func (c Config) WithRemoveNulls(on bool) Config {
	c.removeNulls = on
	return c
}

// WithRemoveEmptyObjects drops values that are empty objects.
func (c Config) WithRemoveEmptyObjects(on bool) Config {
	c.removeEmptyObjects = on
	return c
}

// WithRemoveEmptyArrays drops values that are empty arrays.
func (c Config) WithRemoveEmptyArrays(on bool) Config {
	c.removeEmptyArrays = on
	return c
}

// WithKeyRule appends a key replacement rule.  A find pattern starting
// with "regex:" is treated as a regular expression, otherwise as a
// literal substring.
func (c Config) WithKeyRule(find, replace string) Config {
	c.keyRules = appendRule(c.keyRules, find, replace)
	return c
}

// WithValueRule appends a value replacement rule, applied to string
// values only.  The "regex:" prefix works as in WithKeyRule.
func (c Config) WithValueRule(find, replace string) Config {
	c.valueRules = appendRule(c.valueRules, find, replace)
	return c
}

// WithHandleKeyCollision switches collision handling from suffixing
// colliding keys to collecting their values into an array.
func (c Config) WithHandleKeyCollision(on bool) Config {
	c.collectCollisions = on
	return c
}

// WithAutoConvertTypes enables string coercion to numbers, booleans,
// nulls and canonical dates before the main transformation.
func (c Config) WithAutoConvertTypes(on bool) Config {
	c.autoConvert = on
	return c
}

// WithParallelThreshold sets the minimum batch size at which
// ExecuteBatch processes documents concurrently.
func (c Config) WithParallelThreshold(n int) Config {
	c.parallelThreshold = n
	return c
}

// WithNestedParallelThreshold sets the minimum child count at which a
// single container's subtrees are flattened concurrently.
func (c Config) WithNestedParallelThreshold(n int) Config {
	c.nestedThreshold = n
	return c
}

// WithWorkers caps the number of concurrent workers.  Zero means
// runtime.NumCPU().
func (c Config) WithWorkers(n int) Config {
	c.workers = n
	return c
}

// WithKeepWhere installs a boolean expression evaluated per flattened
// entry with "key" and "value" in scope.  Entries for which it returns
// false are dropped.  Applies to flatten mode only.
func (c Config) WithKeepWhere(src string) Config {
	c.keepWhere = src
	return c
}

func appendRule(rules []rewrite.Rule, find, replace string) []rewrite.Rule {
	res := make([]rewrite.Rule, len(rules), len(rules)+1)
	copy(res, rules)
	return append(res, rewrite.Rule{Find: find, Replace: replace})
}

// Build compiles the config.  Regex patterns and the keep expression
// are resolved here, once, so Engine operations never fail on pattern
// syntax.
func (c Config) Build() (*Engine, error) {
	keyRules, err := rewrite.Compile(c.keyRules)
	if err != nil {
		return nil, fmt.Errorf("key rules: %w", err)
	}
	valueRules, err := rewrite.Compile(c.valueRules)
	if err != nil {
		return nil, fmt.Errorf("value rules: %w", err)
	}
	var keep *vm.Program
	if c.keepWhere != "" {
		keep, err = expr.Compile(c.keepWhere, expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("keep expression: %w", err)
		}
	}
	workers := c.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{
		cfg:        c,
		keyRules:   keyRules,
		valueRules: valueRules,
		keep:       keep,
		workers:    workers,
	}, nil
}

// Engine is a compiled, reusable transformation.  It is safe for
// concurrent use.
type Engine struct {
	cfg        Config
	keyRules   []rewrite.Compiled
	valueRules []rewrite.Compiled
	keep       *vm.Program
	workers    int
}

func (e *Engine) anyFilter() bool {
	c := &e.cfg
	return c.removeEmptyStrings || c.removeNulls || c.removeEmptyObjects || c.removeEmptyArrays
}
