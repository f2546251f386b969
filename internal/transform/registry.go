package transform

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
)

// Policy is a named transform together with the prefix of the files it
// produces.
type Policy struct {
	Name   string // command name, e.g. "invert"
	Prefix string // output file prefix, e.g. "inv"
	Short  string // one-line description for usage text
	// New returns a transform for one conversion. Transforms are not
	// shared between conversions.
	New func() bmp.RowTransform
}

// OutputName returns the file name for the converted copy of path:
// <prefix>_<base>, placed in outDir, or next to path when outDir is empty.
func (p Policy) OutputName(path, outDir string) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	return filepath.Join(dir, p.Prefix+"_"+filepath.Base(path))
}

// builtin lists the fixed policies in usage order.
var builtin = []Policy{
	{Name: "invert", Prefix: "inv", Short: "Produce inv_<file> with the colors inverted", New: Invert},
	{Name: "grayscale", Prefix: "gray", Short: "Produce gray_<file> with the colors converted to grayscale", New: Grayscale},
	{Name: "hflip", Prefix: "hflip", Short: "Produce hflip_<file> with the pixels flipped horizontally", New: HFlip},
}

// Get returns the built-in policy with the given name.
func Get(name string) (Policy, bool) {
	name = strings.ToLower(name)
	for _, p := range builtin {
		if p.Name == name {
			return p, true
		}
	}
	return Policy{}, false
}

// Builtin returns all built-in policies in usage order.
func Builtin() []Policy {
	return append([]Policy(nil), builtin...)
}

// ExprPolicy wraps a parsed expression as a policy writing expr_<file>.
func ExprPolicy(e *Expr) Policy {
	return Policy{
		Name:   "expr",
		Prefix: "expr",
		Short:  fmt.Sprintf("Apply %q to every channel", e.String()),
		New:    func() bmp.RowTransform { return e.clone() },
	}
}

// Names returns the names of the built-in policies.
func Names() []string {
	names := make([]string, len(builtin))
	for i, p := range builtin {
		names[i] = p.Name
	}
	return names
}
