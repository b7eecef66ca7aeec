package utils

import "fmt"

// Linspace returns num evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, num int) []float64 {
	if num < 2 {
		panic("Linspace: need at least 2 points")
	}
	out := make([]float64, num)
	step := (stop - start) / float64(num-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// Avoid a final point that drifts past stop by accumulated rounding.
	out[num-1] = stop
	return out
}

// MaturityGrid builds one time-to-maturity grid per option, each running
// from 0 to the option's maturity with gridPoints evenly spaced samples.
func MaturityGrid(maturities []float64, gridPoints int) [][]float64 {
	grid := make([][]float64, len(maturities))
	for i, tau := range maturities {
		grid[i] = Linspace(0, tau, gridPoints)
	}
	return grid
}

// CheckAscendingFromZero verifies that row starts at exactly 0 and is
// strictly ascending, the shape every maturity grid row must have.
func CheckAscendingFromZero(row []float64) error {
	if len(row) < 2 {
		return fmt.Errorf("CheckAscendingFromZero: need at least 2 points, got %d", len(row))
	}
	if row[0] != 0 {
		return fmt.Errorf("CheckAscendingFromZero: first point must be 0, got %g", row[0])
	}
	for j := 1; j < len(row); j++ {
		if row[j] <= row[j-1] {
			return fmt.Errorf("CheckAscendingFromZero: points must be strictly ascending, got %g after %g at index %d",
				row[j], row[j-1], j)
		}
	}
	return nil
}
