package american

import (
	"fmt"
	"math"

	"github.com/meenmo/aolib/spline"
	"github.com/meenmo/aolib/utils"
)

// convergenceEpsilon keeps the relative-error denominator away from zero
// when boundary values sit near zero.
const convergenceEpsilon = 1e-10

// ExerciseBoundary iteratively solves for the early-exercise boundary of
// a batch of American options. This corresponds to B in formula (3.9) of
// Andersen, Lake and Offengenden (2015).
//
// tauGrid has shape [numOptions][gridPoints]; each row must start at
// exactly 0 and be strictly ascending. k, r, q and sigma carry one strike,
// risk-free rate, dividend yield and volatility per option. The solver
// alternates a cubic-spline fit of the current boundary samples with a
// quadrature evaluation of the integral-equation sides N and D, updating
//
//	B = K exp(-(r-q) tau) N / D
//
// until the maximum relative change drops to tolerance or maxDepth
// iterations have run. Non-convergence within maxDepth is not an error:
// the best available estimate is returned.
//
// The returned BoundaryFunc evaluates the final fitted boundary at any
// [numOptions][k][p]-shaped batch of times-to-maturity.
func ExerciseBoundary(tauGrid [][]float64, k, r, q, sigma []float64, maxDepth int, tolerance float64, quadPoints int) (BoundaryFunc, error) {
	if err := validateInputs(tauGrid, k, r, q, sigma, maxDepth, tolerance, quadPoints); err != nil {
		return nil, err
	}

	m := len(tauGrid)
	current := make([][]float64, m)
	for i := range current {
		guess := k[i] * initialRatio(r[i], q[i])
		row := make([]float64, len(tauGrid[i]))
		for j := range row {
			row[j] = guess
		}
		current[i] = row
	}

	for depth := 0; depth < maxDepth; depth++ {
		params, err := spline.Build(tauGrid, current)
		if err != nil {
			return nil, fmt.Errorf("ExerciseBoundary: %w", err)
		}
		bFn := boundaryFromSpline(params)

		num, err := BoundaryNumerator(tauGrid, bFn, k, r, q, sigma, quadPoints)
		if err != nil {
			return nil, fmt.Errorf("ExerciseBoundary: %w", err)
		}
		den, err := BoundaryDenominator(tauGrid, bFn, k, r, q, sigma, quadPoints)
		if err != nil {
			return nil, fmt.Errorf("ExerciseBoundary: %w", err)
		}

		relError := 0.0
		next := make([][]float64, m)
		for i := range tauGrid {
			next[i] = make([]float64, len(tauGrid[i]))
			for j, tau := range tauGrid[i] {
				next[i][j] = safeDiv(k[i]*math.Exp(-(r[i]-q[i])*tau)*num[i][j], den[i][j])
				e := math.Abs(next[i][j]-current[i][j]) / (math.Abs(next[i][j]) + convergenceEpsilon)
				if e > relError {
					relError = e
				}
			}
		}
		current = next
		if relError <= tolerance {
			break
		}
	}

	params, err := spline.Build(tauGrid, current)
	if err != nil {
		return nil, fmt.Errorf("ExerciseBoundary: %w", err)
	}
	return boundaryFromSpline(params), nil
}

// initialRatio is min(1, r/q), the closed-form limit used as the starting
// guess B = K * min(1, r/q). At q=0 the ratio is taken as +Inf so the
// guess stays at the strike.
func initialRatio(r, q float64) float64 {
	if q == 0 {
		return 1
	}
	return math.Min(1, r/q)
}

// boundaryFromSpline adapts fitted spline parameters to the BoundaryFunc
// shape the integral evaluators expect.
func boundaryFromSpline(params *spline.Params) BoundaryFunc {
	return func(tau [][][]float64) [][][]float64 {
		return params.Evaluate(tau)
	}
}

func validateInputs(tauGrid [][]float64, k, r, q, sigma []float64, maxDepth int, tolerance float64, quadPoints int) error {
	m := len(tauGrid)
	if m == 0 {
		return fmt.Errorf("ExerciseBoundary: tauGrid must contain at least one option row")
	}
	n := len(tauGrid[0])
	for i, row := range tauGrid {
		if len(row) != n {
			return fmt.Errorf("ExerciseBoundary: tauGrid row %d has %d points, row 0 has %d", i, len(row), n)
		}
		if err := utils.CheckAscendingFromZero(row); err != nil {
			return fmt.Errorf("ExerciseBoundary: tauGrid row %d: %w", i, err)
		}
	}
	if len(k) != m || len(r) != m || len(q) != m || len(sigma) != m {
		return fmt.Errorf("ExerciseBoundary: parameter lengths (k=%d, r=%d, q=%d, sigma=%d) do not match %d options",
			len(k), len(r), len(q), len(sigma), m)
	}
	for i := 0; i < m; i++ {
		if k[i] <= 0 {
			return fmt.Errorf("ExerciseBoundary: strike %d must be positive, got %g", i, k[i])
		}
		if sigma[i] <= 0 {
			return fmt.Errorf("ExerciseBoundary: volatility %d must be positive, got %g", i, sigma[i])
		}
		if r[i] < 0 {
			return fmt.Errorf("ExerciseBoundary: rate %d must be nonnegative, got %g", i, r[i])
		}
		if q[i] < 0 {
			return fmt.Errorf("ExerciseBoundary: dividend yield %d must be nonnegative, got %g", i, q[i])
		}
	}
	if maxDepth < 1 {
		return fmt.Errorf("ExerciseBoundary: maxDepth must be positive, got %d", maxDepth)
	}
	if tolerance <= 0 {
		return fmt.Errorf("ExerciseBoundary: tolerance must be positive, got %g", tolerance)
	}
	if quadPoints < 1 {
		return fmt.Errorf("ExerciseBoundary: quadPoints must be positive, got %d", quadPoints)
	}
	return nil
}
