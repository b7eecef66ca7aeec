package american

import (
	"fmt"
	"math"

	"github.com/meenmo/aolib/quadrature"
)

// BoundaryFunc evaluates an exercise boundary at a batch of
// times-to-maturity. The input has shape [numOptions][k][p] for arbitrary
// trailing dimensions k and p; the result has the same shape.
type BoundaryFunc func(tau [][][]float64) [][][]float64

// BoundaryNumerator computes N in formula (3.7) of Andersen, Lake and
// Offengenden (2015) for a trial boundary b:
//
//	N(tau) = Phi(d-(tau, b(tau)/K)) + r * Int_0^tau exp(r u) Phi(d-(tau-u, b(tau)/b(u))) du
//
// tauGrid has shape [numOptions][gridPoints]; k, r, q and sigma have one
// entry per option. The integral uses Gauss-Legendre quadrature with
// quadPoints nodes and per-grid-point upper limits.
func BoundaryNumerator(tauGrid [][]float64, b BoundaryFunc, k, r, q, sigma []float64, quadPoints int) ([][]float64, error) {
	return boundaryTerm(tauGrid, b, k, r, q, sigma, quadPoints, true)
}

// BoundaryDenominator computes D in formula (3.8) of Andersen, Lake and
// Offengenden (2015). It mirrors BoundaryNumerator with d+ in place of
// d- and the dividend rate q as both integrand exponent and weight.
func BoundaryDenominator(tauGrid [][]float64, b BoundaryFunc, k, r, q, sigma []float64, quadPoints int) ([][]float64, error) {
	return boundaryTerm(tauGrid, b, k, r, q, sigma, quadPoints, false)
}

// boundaryTerm is the shared body of the two evaluators. numerator
// selects d- with rate r; the denominator variant uses d+ with rate q.
func boundaryTerm(tauGrid [][]float64, b BoundaryFunc, k, r, q, sigma []float64, quadPoints int, numerator bool) ([][]float64, error) {
	m := len(tauGrid)
	if len(k) != m || len(r) != m || len(q) != m || len(sigma) != m {
		return nil, fmt.Errorf("boundaryTerm: parameter lengths (%d, %d, %d, %d) do not match %d options",
			len(k), len(r), len(q), len(sigma), m)
	}

	d := DMinus
	if !numerator {
		d = DPlus
	}

	// Boundary at the outer grid points, shape [m][n][1].
	tauExp := make([][][]float64, m)
	for i := range tauGrid {
		tauExp[i] = make([][]float64, len(tauGrid[i]))
		for j, tau := range tauGrid[i] {
			tauExp[i][j] = []float64{tau}
		}
	}
	bOuter := b(tauExp)

	integrand := func(u [][][]float64) [][][]float64 {
		bu := b(u)
		out := make([][][]float64, m)
		for i := range u {
			rate := r[i]
			if !numerator {
				rate = q[i]
			}
			out[i] = make([][]float64, len(u[i]))
			for j := range u[i] {
				bj := bOuter[i][j][0]
				row := make([]float64, len(u[i][j]))
				for l, uv := range u[i][j] {
					ratio := safeDiv(bj, bu[i][j][l])
					row[l] = math.Exp(rate*uv) * NormalCDF(d(tauGrid[i][j]-uv, ratio, r[i], q[i], sigma[i]))
				}
				out[i][j] = row
			}
		}
		return out
	}

	lower := make([][]float64, m)
	for i := range tauGrid {
		lower[i] = make([]float64, len(tauGrid[i]))
	}
	integral, err := quadrature.GaussLegendre(integrand, lower, tauGrid, quadPoints)
	if err != nil {
		return nil, err
	}

	term := make([][]float64, m)
	for i := range tauGrid {
		weight := r[i]
		if !numerator {
			weight = q[i]
		}
		term[i] = make([]float64, len(tauGrid[i]))
		for j, tau := range tauGrid[i] {
			term1 := NormalCDF(d(tau, bOuter[i][j][0]/k[i], r[i], q[i], sigma[i]))
			term[i][j] = term1 + weight*integral[i][j]
		}
	}
	return term, nil
}
