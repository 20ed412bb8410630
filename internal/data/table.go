package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"route-profitability/internal/model"
)

// table is a header-indexed CSV file read fully into memory.
type table struct {
	name   string
	cols   map[string]int
	rows   [][]string
	lineNo []int
}

func readTable(name string, in io.Reader, required ...string) (*table, error) {
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s: empty file", model.ErrInvalidInput, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	t := &table{name: name, cols: map[string]int{}}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.cols[strings.ToLower(h)] = i
	}
	for _, col := range required {
		if _, ok := t.cols[col]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", model.ErrInvalidInput, name, col)
		}
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		line, _ := r.FieldPos(0)
		t.rows = append(t.rows, rec)
		t.lineNo = append(t.lineNo, line)
	}
	return t, nil
}

func (t *table) str(row int, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][i])
}

// float parses an optional numeric column; a missing or blank cell yields def.
func (t *table) float(row int, col string, def float64) (float64, error) {
	s := t.str(row, col)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, t.cellErr(row, col, s)
	}
	return v, nil
}

func (t *table) requiredFloat(row int, col string) (float64, error) {
	if t.str(row, col) == "" {
		return 0, fmt.Errorf("%w: %s line %d: %s is empty", model.ErrInvalidInput, t.name, t.lineNo[row], col)
	}
	return t.float(row, col, 0)
}

// int accepts "180" and "180.0", as spreadsheets tend to export both.
func (t *table) int(row int, col string) (int, error) {
	f, err := t.requiredFloat(row, col)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, t.cellErr(row, col, t.str(row, col))
	}
	return int(f), nil
}

func (t *table) cellErr(row int, col, val string) error {
	return fmt.Errorf("%w: %s line %d: %s=%q is not a number", model.ErrInvalidInput, t.name, t.lineNo[row], col, val)
}

func openTable(path string, required ...string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readTable(path, f, required...)
}
