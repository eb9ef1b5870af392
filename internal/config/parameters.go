package config

import (
	"os"
	"reflect"
	"runtime"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/facette/natsort"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/grbrate/internal/model"
	"github.com/wildstyl3r/grbrate/internal/utils"
)

// Grid is the set of points a variable is evaluated on: Points values
// evenly spaced over [Min, Max], or the first column of File.
type Grid struct {
	Min    float64
	Max    float64
	Points int
	File   string
}

type ModelParameters struct {
	Form       string
	Parameters map[string]any
}

type Config struct {
	OutputDir string
	Format    string
	Threads   int

	// to override form defaults in every model accepting the key
	Parameters map[string]any

	Redshift      Grid
	LogLuminosity Grid

	Models map[string]ModelParameters
}

var defaultValues = map[string]func() any{
	"OutputDir": func() any { return "." },
	"Format":    func() any { return model.FormatCSV },
	"Threads":   func() any { return runtime.NumCPU() },
}

var defaultGrids = map[string]Grid{
	"Redshift":      {Min: 0, Max: 10, Points: 201},
	"LogLuminosity": {Min: 49, Max: 55, Points: 121},
}

// isDefined is meta.IsDefined with keys matched case-insensitively, the
// same way the decoder matches them to struct fields.
func isDefined(meta *toml.MetaData, path ...string) bool {
	if meta.IsDefined(path...) {
		return true
	}
	for _, key := range meta.Keys() {
		if len(key) != len(path) {
			continue
		}
		match := true
		for i := range key {
			if !strings.EqualFold(key[i], path[i]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// LoadConfig reads and decodes configFileName, with or without the .toml
// extension.
func LoadConfig(configFileName string) (Config, toml.MetaData, error) {
	data, err := os.ReadFile(strings.TrimSuffix(configFileName, ".toml") + ".toml")
	if err != nil {
		return Config{}, toml.MetaData{}, errors.Wrap(err, "unable to read config")
	}
	return Decode(string(data))
}

// Decode parses a TOML document and fills every value it leaves undefined
// with its default.
func Decode(data string) (Config, toml.MetaData, error) {
	var config Config
	meta, err := toml.Decode(data, &config)
	if err != nil {
		return Config{}, meta, errors.Wrap(err, "unable to decode config")
	}
	if len(config.Models) == 0 {
		return Config{}, meta, errors.New("no models provided")
	}

	configReflect := reflect.ValueOf(&config).Elem()
	for fieldName, value := range defaultValues {
		if !isDefined(&meta, fieldName) {
			configReflect.FieldByName(fieldName).Set(reflect.ValueOf(value()))
		}
	}
	for gridName, defaults := range defaultGrids {
		grid := configReflect.FieldByName(gridName)
		defaultsReflect := reflect.ValueOf(defaults)
		for i := range grid.NumField() {
			if !isDefined(&meta, gridName, grid.Type().Field(i).Name) {
				grid.Field(i).Set(defaultsReflect.Field(i))
			}
		}
	}

	if config.Format != model.FormatCSV && config.Format != model.FormatYAML {
		return Config{}, meta, errors.Errorf("unknown output format %q (expected %s or %s)", config.Format, model.FormatCSV, model.FormatYAML)
	}
	if config.Threads < 0 {
		return Config{}, meta, errors.Errorf("Threads must not be negative, got %d", config.Threads)
	}
	return config, meta, nil
}

// Unknown lists the keys of the document that no config field consumed.
func Unknown(meta *toml.MetaData) []string {
	var keys []string
	for _, key := range meta.Undecoded() {
		keys = append(keys, key.String())
	}
	return keys
}

func (c *Config) Grid(v model.Variable) Grid {
	if v == model.LogLuminosity {
		return c.LogLuminosity
	}
	return c.Redshift
}

// Values returns the grid points in ascending order.
func (g Grid) Values() ([]float64, error) {
	if g.File != "" {
		xs, err := utils.ReadColumn(g.File)
		if err != nil {
			return nil, errors.Wrapf(err, "grid file %s", g.File)
		}
		if len(xs) == 0 {
			return nil, errors.Errorf("grid file %s holds no values", g.File)
		}
		if !utils.IsSorted(xs) {
			return nil, errors.Errorf("grid file %s must be in ascending order", g.File)
		}
		return xs, nil
	}
	if g.Points < 2 {
		return nil, errors.Errorf("grid needs at least 2 points, got %d", g.Points)
	}
	if !(g.Max > g.Min) {
		return nil, errors.Errorf("grid Max (%v) must exceed Min (%v)", g.Max, g.Min)
	}
	return floats.Span(make([]float64, g.Points), g.Min, g.Max), nil
}

/*
field value priority:
1. local [Models.<name>.Parameters]
2. global [Parameters], if the form accepts the key
3. form default
*/

// Resolve builds the model configured under modelName.
func (c *Config) Resolve(modelName string, meta *toml.MetaData) (model.Form, model.Model, error) {
	mp, ok := c.Models[modelName]
	if !ok || mp.Form == "" {
		return model.Form{}, nil, errors.Errorf("model %s lacks key parameter Form", modelName)
	}
	form, err := model.Lookup(mp.Form)
	if err != nil {
		return model.Form{}, nil, errors.WithMessagef(err, "model %s", modelName)
	}

	params := model.Params{}
	for key, value := range c.Parameters {
		if form.Accepts(key) && isDefined(meta, "Parameters", key) {
			params[key] = value
		}
	}
	for key, value := range mp.Parameters {
		if isDefined(meta, "Models", modelName, "Parameters", key) {
			params[key] = value
		}
	}

	m, err := form.Build(params)
	if err != nil {
		return model.Form{}, nil, errors.WithMessagef(err, "model %s", modelName)
	}
	return form, m, nil
}

// Jobs resolves every model and pairs it with the grid of its variable.
// Models that cannot be built are skipped and reported in problems.
func (c *Config) Jobs(meta *toml.MetaData) (jobs []model.Job, problems []error) {
	names := make([]string, 0, len(c.Models))
	for name := range c.Models {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return natsort.Compare(names[i], names[j]) })

	grids := map[model.Variable][]float64{}
	for _, name := range names {
		form, m, err := c.Resolve(name, meta)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		grid, ok := grids[form.Variable]
		if !ok {
			grid, err = c.Grid(form.Variable).Values()
			if err != nil {
				problems = append(problems, errors.WithMessagef(err, "model %s: %s grid", name, form.Variable))
				continue
			}
			grids[form.Variable] = grid
		}
		jobs = append(jobs, model.Job{Name: name, Form: form, Model: m, Grid: slices.Clip(grid)})
	}
	return jobs, problems
}

// DefaultGrid is the grid used for v when a config does not set one.
func DefaultGrid(v model.Variable) Grid {
	if v == model.LogLuminosity {
		return defaultGrids["LogLuminosity"]
	}
	return defaultGrids["Redshift"]
}
