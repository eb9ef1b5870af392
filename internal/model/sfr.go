package model

import (
	"math"

	"github.com/wildstyl3r/grbrate/internal/constants"
)

// SH03 is the Springel & Hernquist (2003) cosmic star formation history,
// converted to a core-collapse rate [yr^-1 Mpc^-3]. Nu is in
// [Msun yr^-1 Mpc^-3], IMFNorm in [Msun^-1].
type SH03 struct {
	A, B    float64
	Zm      float64
	Nu      float64
	IMFNorm float64
}

// NewSH03 returns SH03 with the Vangioni+15 parameters.
func NewSH03() SH03 {
	return SH03{A: 2.37, B: 1.8, Zm: 2, Nu: 0.178, IMFNorm: constants.IMFNormSalpeter}
}

func (s SH03) At(z float64) float64 {
	shape := s.A * math.Exp(s.B*(z-s.Zm)) / ((s.A - s.B) + s.B*math.Exp(s.A*(z-s.Zm)))
	return s.IMFNorm * s.Nu * shape
}

// HB06 is the Hopkins & Beacom (2006) three segment power law in (1+z),
// continuous at Z1 and Z2. The result is scaled by Norm only: IMFNorm is
// carried for signature compatibility with the other histories and is not
// applied.
type HB06 struct {
	Z1, Z2  float64
	A, B, C float64
	Norm    float64
	IMFNorm float64
}

func NewHB06() HB06 {
	return HB06{
		Z1:      0.97,
		Z2:      4.48,
		A:       3.44,
		B:       -0.26,
		C:       -7.8,
		Norm:    0.0197,
		IMFNorm: constants.IMFNormSalpeter,
	}
}

func (h HB06) At(z float64) float64 {
	var shape float64
	if z <= h.Z1 {
		shape = math.Pow(1.+z, h.A)
	} else {
		shape = math.Pow(1.+z, h.B) * math.Pow(1.+h.Z1, h.A-h.B)
	}
	// the high redshift segment wins over both others, Z2 included
	if z >= h.Z2 {
		shape = math.Pow(1.+z, h.C) * math.Pow(1.+h.Z2, h.B-h.C) * math.Pow(1.+h.Z1, h.A-h.B)
	}
	return h.Norm * shape
}

// Li08 is the Li (2008) star formation rate density as a core-collapse rate
// [yr^-1 Mpc^-3], Salpeter IMF.
type Li08 struct {
	A, B, C, D float64
	IMFNorm    float64
}

func NewLi08() Li08 {
	return Li08{A: 0.0157, B: 0.118, C: 3.23, D: 4.66, IMFNorm: constants.IMFNormSalpeter}
}

func (l Li08) At(z float64) float64 {
	return l.IMFNorm * (l.A + l.B*z) / (1 + math.Pow(z/l.C, l.D))
}

// madauShape is (1+z)^b / (1 + ((1+z)/c)^d), shared by MD14 and Rob15.
func madauShape(z, b, c, d float64) float64 {
	return math.Pow(1.+z, b) / (1. + math.Pow((1.+z)/c, d))
}

// MD14 is the Madau & Dickinson (2014) star formation rate density as a
// core-collapse comoving rate [yr^-1 Mpc^-3], Salpeter IMF.
type MD14 struct {
	A, B, C, D float64
	IMFNorm    float64
}

func NewMD14() MD14 {
	return MD14{A: 0.015, B: 2.7, C: 2.9, D: 5.6, IMFNorm: constants.IMFNormSalpeter}
}

func (m MD14) At(z float64) float64 {
	return m.IMFNorm * m.A * madauShape(z, m.B, m.C, m.D)
}

// Rob15 is the Robertson et al. (2015) fit of the MD14 form. The *Err fields
// hold the published one sigma uncertainties and do not enter At.
type Rob15 struct {
	A, B, C, D             float64
	AErr, BErr, CErr, DErr float64
	IMFNorm                float64
}

func NewRob15() Rob15 {
	return Rob15{
		A: 0.01376, B: 3.26, C: 2.59, D: 5.68,
		AErr: 0.001, BErr: 0.21, CErr: 0.14, DErr: 0.19,
		IMFNorm: constants.IMFNormSalpeter,
	}
}

func (r Rob15) At(z float64) float64 {
	return r.IMFNorm * r.A * madauShape(z, r.B, r.C, r.D)
}
