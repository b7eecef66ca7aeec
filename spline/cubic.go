// Package spline fits and evaluates batches of natural cubic splines, one
// interpolant per batch row. It is the interpolation collaborator of the
// exercise-boundary solver: the solver re-fits the boundary samples every
// iteration and queries the fit at both grid points and quadrature nodes.
package spline

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Params holds fitted spline coefficients for a batch of rows. A Params
// value is immutable once built; evaluate it from as many goroutines as
// needed.
type Params struct {
	rows []interp.NaturalCubic
	min  []float64
	max  []float64
}

// Build fits one natural cubic spline per row of (knots, values). Knots
// must be strictly ascending within each row and each row needs at least
// two points; malformed rows are rejected with an error.
func Build(knots, values [][]float64) (*Params, error) {
	if len(knots) != len(values) {
		return nil, fmt.Errorf("spline.Build: knots have %d rows, values have %d", len(knots), len(values))
	}
	if len(knots) == 0 {
		return nil, fmt.Errorf("spline.Build: need at least one row")
	}

	p := &Params{
		rows: make([]interp.NaturalCubic, len(knots)),
		min:  make([]float64, len(knots)),
		max:  make([]float64, len(knots)),
	}
	for i := range knots {
		if len(knots[i]) != len(values[i]) {
			return nil, fmt.Errorf("spline.Build: row %d: %d knots but %d values", i, len(knots[i]), len(values[i]))
		}
		if len(knots[i]) < 2 {
			return nil, fmt.Errorf("spline.Build: row %d: need at least 2 knots, got %d", i, len(knots[i]))
		}
		// The underlying fit panics on unordered xs, so reject them here.
		for j := 1; j < len(knots[i]); j++ {
			if knots[i][j] <= knots[i][j-1] {
				return nil, fmt.Errorf("spline.Build: row %d: knots must be strictly ascending, got %g after %g at index %d",
					i, knots[i][j], knots[i][j-1], j)
			}
		}
		if err := p.rows[i].Fit(knots[i], values[i]); err != nil {
			return nil, fmt.Errorf("spline.Build: row %d: %w", i, err)
		}
		p.min[i] = knots[i][0]
		p.max[i] = knots[i][len(knots[i])-1]
	}
	return p, nil
}

// NumRows returns the number of fitted rows.
func (p *Params) NumRows() int {
	return len(p.rows)
}

// Evaluate interpolates each row of points through that row's spline. The
// input may have any trailing shape beyond the leading batch axis; the
// output mirrors it element for element. Query points are clamped to the
// row's knot range, so callers that stay inside the range (as the
// boundary solver does) see pure interpolation.
//
// The leading axis must match the number of fitted rows; a mismatch is a
// programming error and panics.
func (p *Params) Evaluate(points [][][]float64) [][][]float64 {
	if len(points) != len(p.rows) {
		panic(fmt.Sprintf("spline.Evaluate: %d query rows for %d fitted rows", len(points), len(p.rows)))
	}
	out := make([][][]float64, len(points))
	for i := range points {
		out[i] = make([][]float64, len(points[i]))
		for j := range points[i] {
			row := make([]float64, len(points[i][j]))
			for l, x := range points[i][j] {
				if x < p.min[i] {
					x = p.min[i]
				} else if x > p.max[i] {
					x = p.max[i]
				}
				row[l] = p.rows[i].Predict(x)
			}
			out[i][j] = row
		}
	}
	return out
}
