package model

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/facette/natsort"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/wildstyl3r/grbrate/internal/utils"
)

// Output formats understood by Save.
const (
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

// Job is one configured model and the grid it is evaluated on.
type Job struct {
	Name  string
	Form  Form
	Model Model
	Grid  []float64
}

// Table is the evaluated result of a Job.
type Table struct {
	Name     string    `yaml:"name"`
	Form     string    `yaml:"form"`
	Variable string    `yaml:"variable"`
	PeakX    float64   `yaml:"peak_x"`
	PeakY    float64   `yaml:"peak_value"`
	X        []float64 `yaml:"x,flow"`
	Y        []float64 `yaml:"y,flow"`
}

func extract(job Job) Table {
	t := Table{
		Name:     job.Name,
		Form:     job.Form.Name,
		Variable: job.Form.Variable.String(),
		X:        job.Grid,
		Y:        Eval(job.Model, job.Grid),
	}
	t.PeakX, t.PeakY = PeakOn(job.Model, job.Grid)
	return t
}

// Evaluate runs every job, at most threads at a time (no limit if threads
// is not positive), and returns the tables in natural name order.
func Evaluate(ctx context.Context, jobs []Job, threads int) ([]Table, error) {
	tables := make([]Table, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if threads > 0 {
		g.SetLimit(threads)
	}
	for i := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tables[i] = extract(jobs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "evaluation interrupted")
	}
	sort.SliceStable(tables, func(i, j int) bool {
		return natsort.Compare(tables[i].Name, tables[j].Name)
	})
	return tables, nil
}

// Save writes tables into dir. FormatCSV gives one <name>.txt per table plus
// summary.txt with the peaks; FormatYAML gives a single summary.yaml.
func Save(tables []Table, dir, format string) error {
	switch format {
	case FormatCSV:
		return saveCSV(tables, dir)
	case FormatYAML:
		return saveYAML(tables, dir)
	}
	return errors.Wrapf(ErrInvalidArgument, "unknown output format %q", format)
}

func saveCSV(tables []Table, dir string) error {
	summary := make(utils.CSV, 0, len(tables))
	for _, t := range tables {
		rows := make(utils.CSV, len(t.X))
		for i := range t.X {
			rows[i] = []string{utils.FormatFloat(t.X[i]), utils.FormatFloat(t.Y[i])}
		}
		if err := utils.WriteAsCSV(rows, dir, t.Name+".txt", []string{t.Variable, t.Form}, false); err != nil {
			return errors.Wrapf(err, "unable to save %s", t.Name)
		}
		summary = append(summary, []string{
			t.Name, t.Form, t.Variable, utils.FormatFloat(t.PeakX), utils.FormatFloat(t.PeakY),
		})
	}
	columns := []string{"name", "form", "variable", "peak_x", "peak_value"}
	return errors.Wrap(utils.WriteAsCSV(summary, dir, "summary.txt", columns, true), "unable to save summary")
}

func saveYAML(tables []Table, dir string) error {
	data, err := yaml.Marshal(struct {
		Tables []Table `yaml:"tables"`
	}{tables})
	if err != nil {
		return errors.Wrap(err, "failed to marshal tables")
	}
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.Wrapf(err, "failed to create dir: %s", dir)
		}
	}
	path := filepath.Join(dir, "summary.yaml")
	return errors.Wrapf(os.WriteFile(path, data, 0640), "failed to write %s", path)
}
