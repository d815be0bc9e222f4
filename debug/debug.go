package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Coerce   bool
	Rewrite  bool
	Flatten  bool
	Dispatch bool
}

var d *debug

func init() {
	d = &debug{}
	d.Coerce = boolEnv("FLATKIT_DEBUG_COERCE")
	d.Rewrite = boolEnv("FLATKIT_DEBUG_REWRITE")
	d.Flatten = boolEnv("FLATKIT_DEBUG_FLATTEN")
	d.Dispatch = boolEnv("FLATKIT_DEBUG_DISPATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Coerce() bool {
	return d.Coerce
}
func Rewrite() bool {
	return d.Rewrite
}
func Flatten() bool {
	return d.Flatten
}
func Dispatch() bool {
	return d.Dispatch
}
