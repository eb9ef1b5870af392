package model

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testJobs(t *testing.T) []Job {
	t.Helper()
	md, err := Lookup("MD14")
	require.NoError(t, err)
	bpl, err := Lookup("BPL_z")
	require.NoError(t, err)
	grid := []float64{0, 1, 2, 3, 4}
	return []Job{
		{Name: "m10", Form: md, Model: NewMD14(), Grid: grid},
		{Name: "m2", Form: bpl, Model: NewBPLZ(), Grid: grid},
		{Name: "a", Form: md, Model: MD14{A: 0.01, B: 2, C: 3, D: 5, IMFNorm: 1}, Grid: grid},
	}
}

func TestEvaluate(t *testing.T) {
	jobs := testJobs(t)
	tables, err := Evaluate(context.Background(), jobs, 2)
	require.NoError(t, err)
	require.Len(t, tables, 3)

	assert.Equal(t, "a", tables[0].Name)
	assert.Equal(t, "m2", tables[1].Name)
	assert.Equal(t, "m10", tables[2].Name)

	m2 := tables[1]
	assert.Equal(t, "BPL_z", m2.Form)
	assert.Equal(t, "z", m2.Variable)
	assert.Equal(t, jobs[1].Grid, m2.X)
	assert.Equal(t, Eval(NewBPLZ(), jobs[1].Grid), m2.Y)
	assert.InDelta(t, NewBPLZ().Zm, m2.PeakX, 1e-6)
}

func TestEvaluateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Evaluate(ctx, testJobs(t), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaveCSV(t *testing.T) {
	tables, err := Evaluate(context.Background(), testJobs(t), 0)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, Save(tables, dir, FormatCSV))

	rows := readCSV(t, filepath.Join(dir, "m2.txt"))
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"z", "BPL_z"}, rows[0])
	assert.Equal(t, []string{"0", "1.3e-09"}, rows[1])

	summary := readCSV(t, filepath.Join(dir, "summary.txt"))
	require.Len(t, summary, 4)
	assert.Equal(t, []string{"name", "form", "variable", "peak_x", "peak_value"}, summary[0])
	assert.Equal(t, "a", summary[1][0])
	assert.Equal(t, "m2", summary[2][0])
	assert.Equal(t, "m10", summary[3][0])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestSaveYAML(t *testing.T) {
	tables, err := Evaluate(context.Background(), testJobs(t), 1)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, Save(tables, dir, FormatYAML))

	data, err := os.ReadFile(filepath.Join(dir, "summary.yaml"))
	require.NoError(t, err)

	var decoded struct {
		Tables []Table `yaml:"tables"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded.Tables, 3)
	assert.Equal(t, "m10", decoded.Tables[2].Name)
	assert.Equal(t, tables[2].Y, decoded.Tables[2].Y)
}

func TestSaveUnknownFormat(t *testing.T) {
	err := Save(nil, t.TempDir(), "xml")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
