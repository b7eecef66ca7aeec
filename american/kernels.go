// Package american computes the early-exercise boundary of American
// options. The boundary B(tau) is the underlying price at which immediate
// exercise becomes optimal, obtained by fixed-point iteration on the
// integral equation of Andersen, Lake and Offengenden, "High-performance
// American option pricing" (2015).
package american

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// safeDiv divides with the 0-on-zero-divisor convention used at every
// division site of the solver. Grid points at tau=0 legitimately produce
// 0/0, which must collapse to 0 rather than NaN.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// NormalCDF is the cumulative distribution function of the standard
// normal distribution.
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// DPlus is the Black-Scholes auxiliary quantity
//
//	d+ = [ln(z) + (r - q + sigma^2/2) tau] / (sigma sqrt(tau))
//
// with the safe-divide convention: a zero denominator (tau=0 or sigma=0)
// yields 0.
func DPlus(tau, z, r, q, sigma float64) float64 {
	return safeDiv(math.Log(z)+(r-q+0.5*sigma*sigma)*tau, sigma*math.Sqrt(tau))
}

// DMinus is DPlus shifted down by sigma*sqrt(tau).
func DMinus(tau, z, r, q, sigma float64) float64 {
	return DPlus(tau, z, r, q, sigma) - sigma*math.Sqrt(tau)
}
