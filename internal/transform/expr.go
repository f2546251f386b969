package transform

import (
	"fmt"
	"math"

	"github.com/knetic/govaluate"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
)

// Expr evaluates an arithmetic expression once per channel. The expression
// sees the current channel as c and the whole pixel as b, g and r. Results
// are clamped to [0,255] and truncated.
//
//	255 - c             invert
//	(b + g + r) / 3     average gray
//	c > 127 ? 255 : 0   threshold
type Expr struct {
	source string
	expr   *govaluate.EvaluableExpression
	params map[string]interface{}
}

// ParseExpr compiles source and checks that it evaluates to a number using
// only the known variables.
func ParseExpr(source string) (*Expr, error) {
	ex, err := govaluate.NewEvaluableExpression(source)
	if err != nil {
		return nil, fmt.Errorf("parse expression %q: %w", source, err)
	}
	e := &Expr{source: source, expr: ex, params: make(map[string]interface{}, 4)}
	if _, err := e.channel(bmp.Pixel{}, 0); err != nil {
		return nil, err
	}
	return e, nil
}

// String returns the expression source.
func (e *Expr) String() string { return e.source }

func (e *Expr) clone() *Expr {
	return &Expr{source: e.source, expr: e.expr, params: make(map[string]interface{}, 4)}
}

// TransformRow implements bmp.RowTransform.
func (e *Expr) TransformRow(row []bmp.Pixel) error {
	for i := range row {
		p := row[i]
		var err error
		if row[i].B, err = e.channel(p, p.B); err != nil {
			return err
		}
		if row[i].G, err = e.channel(p, p.G); err != nil {
			return err
		}
		if row[i].R, err = e.channel(p, p.R); err != nil {
			return err
		}
	}
	return nil
}

func (e *Expr) channel(p bmp.Pixel, c uint8) (uint8, error) {
	e.params["c"] = float64(c)
	e.params["b"] = float64(p.B)
	e.params["g"] = float64(p.G)
	e.params["r"] = float64(p.R)

	v, err := e.expr.Evaluate(e.params)
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", e.source, err)
	}
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case bool:
		if x {
			f = 255
		}
	default:
		return 0, fmt.Errorf("expression %q yields %T, want a number", e.source, v)
	}
	if math.IsNaN(f) {
		return 0, nil
	}
	return uint8(math.Min(math.Max(f, 0), 255)), nil
}
