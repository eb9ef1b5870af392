package utils

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgmax(t *testing.T) {
	assert.Equal(t, 2, Argmax([]float64{1, 3, 7, 7, 2}))
	assert.Equal(t, 0, Argmax([]int{5}))
	assert.Equal(t, 0, Argmax([]float64{}))
}

func TestIsSorted(t *testing.T) {
	assert.True(t, IsSorted([]float64{0, 0, 1}))
	assert.True(t, IsSorted([]float64{}))
	assert.False(t, IsSorted([]float64{0, 2, 1}))
}

func TestTernarySearchMax(t *testing.T) {
	f := func(x float64) float64 { return -(x - 2) * (x - 2) }
	assert.InDelta(t, 2., TernarySearchMax(f, 0, 5, 1e-9), 1e-6)
	// increasing function: the right edge
	assert.InDelta(t, 5., TernarySearchMax(func(x float64) float64 { return x }, 0, 5, 1e-9), 1e-6)
}

func TestTernarySearchMaxBelowResolution(t *testing.T) {
	f := func(x float64) float64 { return -(x - 52) * (x - 52) }
	assert.InDelta(t, 52., TernarySearchMax(f, 49, 55, 0), 1e-9)

	left := 52.
	right := math.Nextafter(math.Nextafter(left, 60), 60)
	x := TernarySearchMax(f, left, right, 1e-300)
	assert.True(t, x >= left && x <= right)
}

func TestReadColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.txt")
	require.NoError(t, os.WriteFile(path, []byte("# header\n1.5\t9\n\n2e-1, 4\n-3\n"), 0600))

	xs, err := ReadColumn(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 0.2, -3}, xs)

	require.NoError(t, os.WriteFile(path, []byte("1\nabc\n"), 0600))
	_, err = ReadColumn(path)
	assert.ErrorContains(t, err, "abc")
}

func TestWriteAsCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	data := CSV{{"m10", "1"}, {"m2", "2"}, {"a", "3"}}
	require.NoError(t, WriteAsCSV(data, dir, "out.txt", []string{"name", "value"}, true))

	f, err := os.Open(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "value"}, {"a", "3"}, {"m2", "2"}, {"m10", "1"}}, rows)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.3e-09", FormatFloat(1.3e-9))
	assert.Equal(t, "0.25", FormatFloat(0.25))
	assert.Equal(t, "NaN", FormatFloat(0/zero()))
}

func zero() float64 { return 0 }
