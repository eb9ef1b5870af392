package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/facette/natsort"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/wildstyl3r/grbrate/internal/constants"
)

// Params are raw parameter values keyed by their literature names
// (IMF_norm, nGRB0, Zth, ...), as decoded from a config file or the
// command line. Values are coerced with cast, so numbers may arrive as
// any numeric type or as strings.
type Params map[string]any

// Param describes one parameter of a Form. Default is nil when the
// parameter has no default: it is then either Required or left unset.
type Param struct {
	Name     string
	Default  any
	Required bool
}

// Form is a named model constructor.
type Form struct {
	Name     string
	Variable Variable
	Params   []Param
	build    func(b *binder) Model
}

// Accepts reports whether name is one of the form's parameters.
func (f Form) Accepts(name string) bool {
	for _, p := range f.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Build constructs the model from p; missing parameters take their defaults.
func (f Form) Build(p Params) (Model, error) {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return natsort.Compare(keys[i], keys[j]) })
	for _, key := range keys {
		if !f.Accepts(key) {
			return nil, errors.Wrapf(ErrInvalidArgument, "%s: unknown parameter %s", f.Name, key)
		}
	}

	b := &binder{form: f.Name, params: p}
	m := f.build(b)
	if b.err != nil {
		return nil, b.err
	}
	return m, nil
}

func (f Form) String() string {
	s := f.Name + "(" + f.Variable.String()
	for _, p := range f.Params {
		switch {
		case p.Required:
			s += ", " + p.Name
		case p.Default == nil:
			s += ", " + p.Name + "=unset"
		default:
			s += fmt.Sprintf(", %s=%v", p.Name, p.Default)
		}
	}
	return s + ")"
}

// Lookup returns the form registered under name.
func Lookup(name string) (Form, error) {
	f, ok := forms[name]
	if !ok {
		return Form{}, errors.Wrapf(ErrInvalidArgument, "unknown form %q", name)
	}
	f.Name = name
	return f, nil
}

// Build is Lookup followed by Form.Build.
func Build(name string, p Params) (Model, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f.Build(p)
}

// Forms lists every registered form in natural name order.
func Forms() []Form {
	names := make([]string, 0, len(forms))
	for name := range forms {
		names = append(names, name)
	}
	natsort.Sort(names)
	list := make([]Form, len(names))
	for i, name := range names {
		list[i], _ = Lookup(name)
	}
	return list
}

// binder copies parameters into model fields and keeps the first error.
type binder struct {
	form   string
	params Params
	err    error
}

func (b *binder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = errors.Wrapf(ErrInvalidArgument, b.form+": "+format, args...)
	}
}

func (b *binder) float(name string, dst *float64) {
	v, ok := b.params[name]
	if !ok {
		return
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		b.fail("parameter %s: %v", name, err)
		return
	}
	*dst = f
}

func (b *binder) required(name string, dst *float64) {
	if _, ok := b.params[name]; !ok {
		b.fail("parameter %s is required", name)
		return
	}
	b.float(name, dst)
}

func (b *binder) optional(name string, dst **float64) {
	if _, ok := b.params[name]; !ok {
		return
	}
	f := math.NaN()
	b.float(name, &f)
	*dst = &f
}

// integer accepts whole floats such as 1.0, so SFR = 1.0 in a config selects
// the first preset.
func (b *binder) integer(name string, dst *int) {
	if _, ok := b.params[name]; !ok {
		b.fail("parameter %s is required", name)
		return
	}
	var f float64
	b.float(name, &f)
	if f != math.Trunc(f) {
		b.fail("parameter %s must be an integer, got %v", name, f)
		return
	}
	*dst = int(f)
}

func (b *binder) text(name string, dst *string) {
	v, ok := b.params[name]
	if !ok {
		return
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		b.fail("parameter %s: %v", name, err)
		return
	}
	*dst = s
}

func required(names ...string) []Param {
	params := make([]Param, len(names))
	for i, name := range names {
		params[i] = Param{Name: name, Required: true}
	}
	return params
}

var forms = map[string]Form{
	"Schechter_log": {
		Variable: LogLuminosity,
		Params:   required("logLbreak", "slope"),
		build: func(b *binder) Model {
			var s Schechter
			b.required("logLbreak", &s.LogLBreak)
			b.required("slope", &s.Slope)
			return s
		},
	},
	"BPL_lum": {
		Variable: LogLuminosity,
		Params:   required("logLbreak", "slopeL", "slopeH"),
		build: func(b *binder) Model {
			var l BPLLum
			b.required("logLbreak", &l.LogLBreak)
			b.required("slopeL", &l.SlopeL)
			b.required("slopeH", &l.SlopeH)
			return l
		},
	},
	"SH03": {
		Variable: Redshift,
		Params: []Param{
			{Name: "a", Default: NewSH03().A},
			{Name: "b", Default: NewSH03().B},
			{Name: "zm", Default: NewSH03().Zm},
			{Name: "nu", Default: NewSH03().Nu},
			{Name: "IMF_norm", Default: NewSH03().IMFNorm},
		},
		build: func(b *binder) Model {
			s := NewSH03()
			b.float("a", &s.A)
			b.float("b", &s.B)
			b.float("zm", &s.Zm)
			b.float("nu", &s.Nu)
			b.float("IMF_norm", &s.IMFNorm)
			return s
		},
	},
	"HB06": {
		Variable: Redshift,
		Params: []Param{
			{Name: "z1", Default: NewHB06().Z1},
			{Name: "z2", Default: NewHB06().Z2},
			{Name: "a", Default: NewHB06().A},
			{Name: "b", Default: NewHB06().B},
			{Name: "c", Default: NewHB06().C},
			{Name: "norm", Default: NewHB06().Norm},
			{Name: "IMF_norm", Default: NewHB06().IMFNorm},
		},
		build: func(b *binder) Model {
			h := NewHB06()
			b.float("z1", &h.Z1)
			b.float("z2", &h.Z2)
			b.float("a", &h.A)
			b.float("b", &h.B)
			b.float("c", &h.C)
			b.float("norm", &h.Norm)
			b.float("IMF_norm", &h.IMFNorm)
			return h
		},
	},
	"BExp": {
		Variable: Redshift,
		Params: []Param{
			{Name: "a", Default: NewBExp().A},
			{Name: "b", Default: NewBExp().B},
			{Name: "zm", Default: NewBExp().Zm},
			{Name: "SFR_norm", Default: NewBExp().SFRNorm},
			{Name: "IMF_norm", Default: NewBExp().IMFNorm},
			{Name: "nGRB0"},
		},
		build: func(b *binder) Model {
			e := NewBExp()
			b.float("a", &e.A)
			b.float("b", &e.B)
			b.float("zm", &e.Zm)
			b.float("SFR_norm", &e.SFRNorm)
			b.float("IMF_norm", &e.IMFNorm)
			b.optional("nGRB0", &e.NGRB0)
			return e
		},
	},
	"S12": {
		Variable: Redshift,
		Params:   []Param{{Name: "Zth"}, {Name: "n_dens"}},
		build: func(b *binder) Model {
			var s S12
			b.optional("Zth", &s.Zth)
			b.optional("n_dens", &s.NDens)
			return s
		},
	},
	"Li08": {
		Variable: Redshift,
		Params: []Param{
			{Name: "a", Default: NewLi08().A},
			{Name: "b", Default: NewLi08().B},
			{Name: "c", Default: NewLi08().C},
			{Name: "d", Default: NewLi08().D},
			{Name: "IMF_norm", Default: NewLi08().IMFNorm},
		},
		build: func(b *binder) Model {
			l := NewLi08()
			b.float("a", &l.A)
			b.float("b", &l.B)
			b.float("c", &l.C)
			b.float("d", &l.D)
			b.float("IMF_norm", &l.IMFNorm)
			return l
		},
	},
	"BPL_z": {
		Variable: Redshift,
		Params: []Param{
			{Name: "a", Default: NewBPLZ().A},
			{Name: "b", Default: NewBPLZ().B},
			{Name: "zm", Default: NewBPLZ().Zm},
			{Name: "nGRB0", Default: NewBPLZ().NGRB0},
			{Name: "eta0", Default: NewBPLZ().Eta0},
			{Name: "av_jet_ang", Default: NewBPLZ().AvJetAng},
		},
		build: func(b *binder) Model {
			p := NewBPLZ()
			b.float("a", &p.A)
			b.float("b", &p.B)
			b.float("zm", &p.Zm)
			b.float("nGRB0", &p.NGRB0)
			b.float("eta0", &p.Eta0)
			b.float("av_jet_ang", &p.AvJetAng)
			return p
		},
	},
	"MD14": {
		Variable: Redshift,
		Params: []Param{
			{Name: "a", Default: NewMD14().A},
			{Name: "b", Default: NewMD14().B},
			{Name: "c", Default: NewMD14().C},
			{Name: "d", Default: NewMD14().D},
			{Name: "IMF_norm", Default: NewMD14().IMFNorm},
		},
		build: func(b *binder) Model {
			m := NewMD14()
			b.float("a", &m.A)
			b.float("b", &m.B)
			b.float("c", &m.C)
			b.float("d", &m.D)
			b.float("IMF_norm", &m.IMFNorm)
			return m
		},
	},
	"Rob15": {
		Variable: Redshift,
		Params: []Param{
			{Name: "a", Default: NewRob15().A},
			{Name: "b", Default: NewRob15().B},
			{Name: "c", Default: NewRob15().C},
			{Name: "d", Default: NewRob15().D},
			{Name: "a_err", Default: NewRob15().AErr},
			{Name: "b_err", Default: NewRob15().BErr},
			{Name: "c_err", Default: NewRob15().CErr},
			{Name: "d_err", Default: NewRob15().DErr},
			{Name: "IMF_norm", Default: NewRob15().IMFNorm},
		},
		build: func(b *binder) Model {
			r := NewRob15()
			b.float("a", &r.A)
			b.float("b", &r.B)
			b.float("c", &r.C)
			b.float("d", &r.D)
			b.float("a_err", &r.AErr)
			b.float("b_err", &r.BErr)
			b.float("c_err", &r.CErr)
			b.float("d_err", &r.DErr)
			b.float("IMF_norm", &r.IMFNorm)
			return r
		},
	},
	"qD06": {
		Variable: Redshift,
		Params: []Param{
			{Name: "SFR", Required: true},
			{Name: "mod", Default: ModeA},
			{Name: "IMF_norm", Default: constants.IMFNormDaigne},
		},
		build: func(b *binder) Model {
			sfr, mod, imfNorm := 0, ModeA, constants.IMFNormDaigne
			b.integer("SFR", &sfr)
			b.text("mod", &mod)
			b.float("IMF_norm", &imfNorm)
			if b.err != nil {
				return nil
			}
			q, err := NewQD06(sfr, mod, imfNorm)
			if err != nil {
				b.err = errors.WithMessage(err, b.form)
				return nil
			}
			return q
		},
	},
	"D06": {
		Variable: Redshift,
		Params: append(required("a", "b", "c", "d"),
			Param{Name: "IMF_norm", Default: constants.IMFNormDaigne}),
		build: func(b *binder) Model {
			d := D06{IMFNorm: constants.IMFNormDaigne}
			b.required("a", &d.A)
			b.required("b", &d.B)
			b.required("c", &d.C)
			b.required("d", &d.D)
			b.float("IMF_norm", &d.IMFNorm)
			return d
		},
	},
}
