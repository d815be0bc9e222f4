package flatdiff

import (
	"fmt"
	"io"

	"github.com/flatkit/flatkit/encode"
	"github.com/flatkit/flatkit/ir"

	"github.com/fatih/color"
)

var (
	addColor = color.New(color.FgGreen)
	delColor = color.New(color.FgRed)
	modColor = color.New(color.FgYellow)
)

// Render writes changes one per line: "+" for added keys, "-" for
// removed, "~" for modified.  With colorize set, lines are tinted by
// change kind.
func Render(w io.Writer, changes []Change, colorize bool) error {
	paint := func(c *color.Color, s string) string {
		if !colorize {
			return s
		}
		return c.Sprint(s)
	}
	for _, ch := range changes {
		var line string
		switch ch.Kind {
		case Added:
			line = paint(addColor, fmt.Sprintf("+ %s: %s", ch.Key, wire(ch.To)))
		case Removed:
			line = paint(delColor, fmt.Sprintf("- %s: %s", ch.Key, wire(ch.From)))
		case Modified:
			line = paint(modColor, fmt.Sprintf("~ %s: %s -> %s", ch.Key, wire(ch.From), wire(ch.To)))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func wire(v *ir.Node) string {
	return encode.MustString(v, encode.EncodeWire(true))
}
