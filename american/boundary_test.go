package american_test

import (
	"math"
	"testing"

	"github.com/meenmo/aolib/american"
)

// constantBoundary returns a BoundaryFunc that ignores tau and yields the
// per-option initial guess K*min(1, r/q).
func constantBoundary(k, r, q []float64) american.BoundaryFunc {
	return func(tau [][][]float64) [][][]float64 {
		out := make([][][]float64, len(tau))
		for i := range tau {
			level := k[i] * math.Min(1, r[i]/q[i])
			out[i] = make([][]float64, len(tau[i]))
			for j := range tau[i] {
				row := make([]float64, len(tau[i][j]))
				for l := range row {
					row[l] = level
				}
				out[i][j] = row
			}
		}
		return out
	}
}

var (
	termTauGrid = [][]float64{{0, 0.5, 1}, {0, 1, 2}}
	termStrikes = []float64{100, 100}
	termRates   = []float64{0.01, 0.02}
	termDivs    = []float64{0.01, 0.02}
	termVols    = []float64{0.1, 0.15}
)

func TestBoundaryNumeratorConstantGuess(t *testing.T) {
	t.Parallel()

	b := constantBoundary(termStrikes, termRates, termDivs)
	got, err := american.BoundaryNumerator(termTauGrid, b, termStrikes, termRates, termDivs, termVols, 32)
	if err != nil {
		t.Fatalf("BoundaryNumerator: %v", err)
	}

	want := [][]float64{
		{0.5, 0.48835735, 0.4849528},
		{0.5, 0.4798061, 0.47702501},
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(got[i][j]-want[i][j]) > 1e-7 {
				t.Errorf("N[%d][%d] = %.8f, want %.8f", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestBoundaryDenominatorConstantGuess(t *testing.T) {
	t.Parallel()

	b := constantBoundary(termStrikes, termRates, termDivs)
	got, err := american.BoundaryDenominator(termTauGrid, b, termStrikes, termRates, termDivs, termVols, 32)
	if err != nil {
		t.Fatalf("BoundaryDenominator: %v", err)
	}

	want := [][]float64{
		{0.5, 0.51665517, 0.52509737},
		{0.5, 0.54039524, 0.56378576},
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(got[i][j]-want[i][j]) > 1e-7 {
				t.Errorf("D[%d][%d] = %.8f, want %.8f", i, j, got[i][j], want[i][j])
			}
		}
	}
}

// At tau=0 both sides are exactly Phi(0) = 0.5: the d denominators are 0,
// the safe divide collapses them to 0, and the integral spans a
// zero-length interval.
func TestBoundaryTermsAtZeroMaturity(t *testing.T) {
	t.Parallel()

	b := constantBoundary(termStrikes, termRates, termDivs)
	num, err := american.BoundaryNumerator(termTauGrid, b, termStrikes, termRates, termDivs, termVols, 32)
	if err != nil {
		t.Fatalf("BoundaryNumerator: %v", err)
	}
	den, err := american.BoundaryDenominator(termTauGrid, b, termStrikes, termRates, termDivs, termVols, 32)
	if err != nil {
		t.Fatalf("BoundaryDenominator: %v", err)
	}
	for i := range termTauGrid {
		if num[i][0] != 0.5 {
			t.Errorf("N[%d][0] = %g, want exactly 0.5", i, num[i][0])
		}
		if den[i][0] != 0.5 {
			t.Errorf("D[%d][0] = %g, want exactly 0.5", i, den[i][0])
		}
	}
}

func TestBoundaryTermLengthMismatch(t *testing.T) {
	t.Parallel()

	b := constantBoundary(termStrikes, termRates, termDivs)
	_, err := american.BoundaryNumerator(termTauGrid, b, []float64{100}, termRates, termDivs, termVols, 32)
	if err == nil {
		t.Fatal("mismatched strike length did not error")
	}
}
