package utils

import "math"

// TernarySearchMax returns the argmax of f on [left, right] to within eps.
// f must be unimodal on the interval for the result to be the global maximum.
// The search also stops once the interval is a few ulps wide, so an eps
// below float64 resolution is safe.
func TernarySearchMax(f func(float64) float64, left, right, eps float64) float64 {
	for right-left > eps {
		a := math.FMA(left, 2., right) / 3.
		b := math.FMA(right, 2., left) / 3.
		if a <= left || b >= right {
			break
		}
		if f(a) > f(b) {
			right = b
		} else {
			left = a
		}
	}
	return (left + right) * 0.5
}
