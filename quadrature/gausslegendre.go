// Package quadrature provides fixed-abscissa numerical integration with
// per-element integration limits, the contract the boundary solver needs
// when every grid point integrates over its own [0, tau] interval.
package quadrature

import (
	"fmt"

	"gonum.org/v1/gonum/integrate/quad"
)

// Integrand evaluates the function under the integral at a batch of node
// positions. The input has the same leading shape as the integration
// limits plus a trailing node axis, [rows][cols][numPoints], and the
// result must have the same shape.
type Integrand func(u [][][]float64) [][][]float64

// GaussLegendre approximates the definite integral of f between lower and
// upper, element-wise. lower and upper must have identical shapes; the
// result has that shape too. Zero-width intervals integrate to exactly 0.
//
// Nodes and weights come from the Gauss-Legendre rule on [-1, 1] and are
// mapped affinely onto each element's interval. f is called once with the
// full node tensor, so integrands backed by a batch spline evaluate every
// row in a single pass.
func GaussLegendre(f Integrand, lower, upper [][]float64, numPoints int) ([][]float64, error) {
	if numPoints < 1 {
		return nil, fmt.Errorf("GaussLegendre: numPoints must be positive, got %d", numPoints)
	}
	if len(lower) != len(upper) {
		return nil, fmt.Errorf("GaussLegendre: lower has %d rows, upper has %d", len(lower), len(upper))
	}

	nodes := make([]float64, numPoints)
	weights := make([]float64, numPoints)
	quad.Legendre{}.FixedLocations(nodes, weights, -1, 1)

	u := make([][][]float64, len(lower))
	for i := range lower {
		if len(lower[i]) != len(upper[i]) {
			return nil, fmt.Errorf("GaussLegendre: row %d: lower has %d elements, upper has %d",
				i, len(lower[i]), len(upper[i]))
		}
		u[i] = make([][]float64, len(lower[i]))
		for j := range lower[i] {
			mid := (upper[i][j] + lower[i][j]) / 2
			half := (upper[i][j] - lower[i][j]) / 2
			row := make([]float64, numPoints)
			for l, x := range nodes {
				row[l] = mid + half*x
			}
			u[i][j] = row
		}
	}

	vals := f(u)

	out := make([][]float64, len(lower))
	for i := range lower {
		out[i] = make([]float64, len(lower[i]))
		for j := range lower[i] {
			half := (upper[i][j] - lower[i][j]) / 2
			var sum float64
			for l, w := range weights {
				sum += w * vals[i][j][l]
			}
			out[i][j] = half * sum
		}
	}
	return out, nil
}
