package model

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/grbrate/internal/utils"
)

// Peak locates the maximum of m on [lo, hi] from an n point grid.
func Peak(m Model, lo, hi float64, n int) (x, y float64) {
	n = max(n, 3)
	return PeakOn(m, floats.Span(make([]float64, n), lo, hi))
}

// PeakOn takes the largest value of m over the ascending grid and refines it
// by ternary search between the neighbouring grid points. The refinement is
// kept only if it improves on the grid value, so piecewise models with a
// kink at the maximum still report the kink.
func PeakOn(m Model, grid []float64) (x, y float64) {
	if len(grid) == 0 {
		return math.NaN(), math.NaN()
	}
	values := Eval(m, grid)
	i := utils.Argmax(values)
	x, y = grid[i], values[i]
	if len(grid) < 3 {
		return
	}

	left, right := grid[max(i-1, 0)], grid[min(i+1, len(grid)-1)]
	refined := utils.TernarySearchMax(m.At, left, right, (right-left)*1e-9)
	if v := m.At(refined); v > y {
		x, y = refined, v
	}
	return
}
