package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mathext"

	"github.com/wildstyl3r/grbrate/internal/constants"
)

// BExp is a broken exponential GRB rate history, continuous at Zm. With the
// default SFRNorm and IMFNorm the result is a core-collapse rate
// [yr^-1 Mpc^-3]; a non-nil NGRB0 replaces IMFNorm*SFRNorm as the norm.
type BExp struct {
	A, B    float64
	Zm      float64
	SFRNorm float64
	IMFNorm float64
	NGRB0   *float64
}

// NewBExp returns the best fit to the Vangioni+15 SH03 history.
func NewBExp() BExp {
	return BExp{
		A:       1.1,
		B:       -0.57,
		Zm:      1.9,
		SFRNorm: constants.SFRNormVangioni,
		IMFNorm: constants.IMFNormSalpeter,
	}
}

func (b BExp) norm() float64 {
	if b.NGRB0 != nil {
		return *b.NGRB0
	}
	return b.IMFNorm * b.SFRNorm
}

func (b BExp) At(z float64) float64 {
	var shape float64
	if z <= b.Zm {
		shape = math.Exp(b.A * z)
	} else {
		shape = math.Exp(b.B*z) * math.Exp((b.A-b.B)*b.Zm)
	}
	return b.norm() * shape
}

// S12 is the long GRB redshift distribution of Salvaterra+12: the Li08
// history, optionally scaled by (1+z)^NDens and suppressed above the
// metallicity threshold Zth (in units of Zsun). Nil fields are skipped.
type S12 struct {
	Zth   *float64
	NDens *float64
}

func (s S12) At(z float64) float64 {
	shape := NewLi08().At(z)
	if s.NDens != nil {
		shape *= math.Pow(1.+z, *s.NDens)
	}
	if s.Zth != nil {
		zth := *s.Zth
		shape *= mathext.GammaIncReg(constants.MetallicityGammaShape, zth*zth*math.Pow(10, 0.3*z))
	}
	return shape
}

// BPLZ is the Wanderman & Piran (2010) broken power law LGRB comoving rate
// [yr^-1 Mpc^-3]. Dividing NGRB0 by the efficiency Eta0 and the mean beaming
// fraction AvJetAng turns it into a progenitor rate.
type BPLZ struct {
	A, B     float64
	Zm       float64
	NGRB0    float64
	Eta0     float64
	AvJetAng float64
}

func NewBPLZ() BPLZ {
	return BPLZ{A: 2.07, B: -1.36, Zm: 3.11, NGRB0: constants.NGRB0WandermanPiran, Eta0: 1, AvJetAng: 1}
}

func (b BPLZ) At(z float64) float64 {
	var shape float64
	if z <= b.Zm {
		shape = math.Pow(1.+z, b.A)
	} else {
		shape = math.Pow(1.+z, b.B) * math.Pow(1.+b.Zm, b.A-b.B)
	}
	return b.NGRB0 / (b.Eta0 * b.AvJetAng) * shape
}

// D06 is the Daigne+06 core-collapse rate [yr^-1 Mpc^-3] with explicit
// shape parameters.
type D06 struct {
	A, B, C, D float64
	IMFNorm    float64
}

func (d D06) At(z float64) float64 {
	shape := d.A * math.Exp(d.B*z) / (d.D + math.Exp(d.C*z))
	return d.IMFNorm * shape
}

// Daigne+06 normalization modes.
const (
	ModeA  = "A"
	ModeLN = "LN"
)

var daigneA = [3]float64{0.320, 0.196, 0.175}
var daigneB = [3]float64{3.30, 4.0, 3.67}
var daigneC = [3]float64{3.52, 4.0, 3.48}
var daigneD = [3]float64{23.6, 14.6, 12.6}
var daigneK = map[string][3]float64{
	ModeLN: {2.5e-6, 2e-6, 6.3e-7},
	ModeA:  {4e-6, 3.2e-6, 1.2e-6},
}

// QD06 is the Daigne+06 LGRB comoving rate [yr^-1 Mpc^-3] for one of the
// three published star formation histories SFR1..SFR3.
type QD06 struct {
	sfr  int
	mod  string
	form D06
}

// NewQD06 selects the sfr-th history (1, 2 or 3) normalized with mode mod
// (ModeA or ModeLN). Use constants.IMFNormDaigne for the published imfNorm.
func NewQD06(sfr int, mod string, imfNorm float64) (QD06, error) {
	k, ok := daigneK[mod]
	if !ok {
		return QD06{}, errors.Wrapf(ErrInvalidArgument, "mod must be %s or %s, got %q", ModeA, ModeLN, mod)
	}
	if sfr < 1 || sfr > 3 {
		return QD06{}, errors.Wrapf(ErrInvalidArgument, "SFR must be an int equal to 1, 2, or 3, got %d", sfr)
	}
	i := sfr - 1
	return QD06{
		sfr: sfr,
		mod: mod,
		form: D06{
			A:       daigneA[i],
			B:       daigneB[i],
			C:       daigneC[i],
			D:       daigneD[i],
			IMFNorm: k[i] * imfNorm,
		},
	}, nil
}

func (q QD06) SFR() int { return q.sfr }

func (q QD06) Mod() string { return q.mod }

// D06 returns the explicit form this preset evaluates.
func (q QD06) D06() D06 { return q.form }

func (q QD06) At(z float64) float64 {
	return q.form.At(z)
}
