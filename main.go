package main

import (
	"fmt"

	"github.com/meenmo/aolib/american"
	"github.com/meenmo/aolib/utils"
)

func main() {
	maturities := []float64{1, 2}
	strikes := []float64{100, 100}
	rates := []float64{0.01, 0.02}
	dividends := []float64{0.01, 0.02}
	vols := []float64{0.1, 0.15}

	tauGrid := utils.MaturityGrid(maturities, 3)

	boundary, err := american.ExerciseBoundary(tauGrid, strikes, rates, dividends, vols, 30, 1e-8, 32)
	if err != nil {
		panic(err)
	}

	query := make([][][]float64, len(tauGrid))
	for i := range tauGrid {
		query[i] = [][]float64{tauGrid[i]}
	}
	values := boundary(query)

	for i := range tauGrid {
		fmt.Printf("Option %d (K=%.0f, r=%.2f, q=%.2f, sigma=%.2f)\n",
			i+1, strikes[i], rates[i], dividends[i], vols[i])
		for j, tau := range tauGrid[i] {
			fmt.Printf("  B(%.2f) = %.4f\n", tau, values[i][0][j])
		}
	}
}
