package trajectory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/brownsim/internal/physics"
)

// ReadCSV parses a tabular series with a header row naming t (or time), x
// and y columns, in any order, one sample per row. Extra columns are
// ignored. Times are seconds, positions meters.
func ReadCSV(r io.Reader) (*Trajectory, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", physics.ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", physics.ErrMalformedInput, err)
	}

	ti, xi, yi := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "t", "time":
			ti = i
		case "x":
			xi = i
		case "y":
			yi = i
		}
	}
	for name, idx := range map[string]int{"t": ti, "x": xi, "y": yi} {
		if idx < 0 {
			return nil, fmt.Errorf("%w: missing required column %q", physics.ErrMalformedInput, name)
		}
	}

	var times, xs, ys []float64
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", physics.ErrMalformedInput, row, err)
		}
		vals := [3]float64{}
		for j, idx := range [3]int{ti, xi, yi} {
			if idx >= len(rec) {
				return nil, fmt.Errorf("%w: row %d has %d fields", physics.ErrMalformedInput, row, len(rec))
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: non-numeric value %q in row %d", physics.ErrMalformedInput, rec[idx], row)
			}
			vals[j] = v
		}
		times = append(times, vals[0])
		xs = append(xs, vals[1])
		ys = append(ys, vals[2])
		row++
	}

	return FromSeries(times, xs, ys)
}

// LoadFile reads a trajectory from a CSV file on disk.
func LoadFile(path string) (*Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
