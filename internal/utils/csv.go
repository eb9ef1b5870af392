package utils

import (
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/facette/natsort"
)

// CSV rows sort naturally by their first cell.
type CSV [][]string

func (data CSV) Less(i, j int) bool {
	return natsort.Compare(data[i][0], data[j][0])
}

func (data CSV) Len() int {
	return len(data)
}
func (data CSV) Swap(i, j int) {
	data[i], data[j] = data[j], data[i]
}

func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteAsCSV writes columns as a header line followed by data into dir/filename.
// Rows are sorted first when sorted is set.
func WriteAsCSV(data CSV, dir, filename string, columns []string, sorted bool) error {
	file, err := CreateFile(dir, filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(columns); err != nil {
		return err
	}
	if sorted {
		sort.Sort(data)
	}
	if err := w.WriteAll(data); err != nil {
		return err
	}
	return file.Close()
}
