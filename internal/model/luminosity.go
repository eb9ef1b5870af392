package model

import "math"

// Schechter is the unnormalized Schechter luminosity function in log10
// luminosity space. It has no literature defaults.
type Schechter struct {
	LogLBreak float64
	Slope     float64
}

func (s Schechter) At(logL float64) float64 {
	x := math.Pow(10., logL-s.LogLBreak)
	return math.Pow(x, 1.-s.Slope) * math.Exp(-x)
}

// BPLLum is the unnormalized broken power law luminosity function in log10
// luminosity space, continuous at the break.
type BPLLum struct {
	LogLBreak float64
	SlopeL    float64
	SlopeH    float64
}

func (b BPLLum) At(logL float64) float64 {
	x := math.Pow(10., logL-b.LogLBreak)
	if x <= 1 {
		return math.Pow(x, 1.-b.SlopeL)
	}
	return math.Pow(x, 1.-b.SlopeH)
}
