package spline_test

import (
	"math"
	"testing"

	"github.com/meenmo/aolib/spline"
)

func TestBuildEvaluateReproducesKnots(t *testing.T) {
	t.Parallel()

	knots := [][]float64{{0, 0.5, 1}, {0, 1, 2}}
	values := [][]float64{{100, 90, 85}, {100, 80, 75}}
	params, err := spline.Build(knots, values)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if params.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", params.NumRows())
	}

	query := make([][][]float64, len(knots))
	for i := range knots {
		query[i] = [][]float64{knots[i]}
	}
	got := params.Evaluate(query)
	for i := range knots {
		for j := range knots[i] {
			if math.Abs(got[i][0][j]-values[i][j]) > 1e-10 {
				t.Errorf("row %d knot %d: Evaluate = %g, want %g", i, j, got[i][0][j], values[i][j])
			}
		}
	}
}

func TestEvaluateLinearData(t *testing.T) {
	t.Parallel()

	// A natural cubic through collinear points stays linear between knots.
	knots := [][]float64{{0, 1, 2, 3}}
	values := [][]float64{{1, 3, 5, 7}}
	params, err := spline.Build(knots, values)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := params.Evaluate([][][]float64{{{0.5, 1.5, 2.25}}})
	want := []float64{2, 4, 5.5}
	for j := range want {
		if math.Abs(got[0][0][j]-want[j]) > 1e-10 {
			t.Errorf("Evaluate at midpoint %d = %g, want %g", j, got[0][0][j], want[j])
		}
	}
}

func TestEvaluateRestoresShape(t *testing.T) {
	t.Parallel()

	params, err := spline.Build([][]float64{{0, 1, 2}}, [][]float64{{0, 1, 4}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	query := [][][]float64{{{0.1, 0.2, 0.3}, {1.1, 1.2, 1.3}}}
	got := params.Evaluate(query)
	if len(got) != 1 || len(got[0]) != 2 || len(got[0][0]) != 3 || len(got[0][1]) != 3 {
		t.Fatalf("Evaluate shape = [%d][%d][...], want [1][2][3]", len(got), len(got[0]))
	}
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		knots  [][]float64
		values [][]float64
	}{
		{"row count mismatch", [][]float64{{0, 1}}, [][]float64{{0, 1}, {0, 1}}},
		{"length mismatch", [][]float64{{0, 1, 2}}, [][]float64{{0, 1}}},
		{"descending knots", [][]float64{{0, 2, 1}}, [][]float64{{0, 1, 2}}},
		{"duplicate knots", [][]float64{{0, 1, 1}}, [][]float64{{0, 1, 2}}},
		{"single knot", [][]float64{{0}}, [][]float64{{1}}},
		{"empty", nil, nil},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := spline.Build(tc.knots, tc.values); err == nil {
				t.Fatal("Build did not error")
			}
		})
	}
}

func TestEvaluatePanicsOnRowMismatch(t *testing.T) {
	t.Parallel()

	params, err := spline.Build([][]float64{{0, 1, 2}}, [][]float64{{0, 1, 4}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Evaluate with wrong row count did not panic")
		}
	}()
	params.Evaluate([][][]float64{{{0}}, {{0}}})
}
