// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchframe

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// A Kind is the element type of a table column.
type Kind int

const (
	// Infer picks the narrowest kind that accepts every value:
	// Int, then Float, then Bool, then String.
	Infer Kind = iota
	Int
	Float
	Bool
	String
)

func (k Kind) String() string {
	switch k {
	case Infer:
		return "infer"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Schema maps column names to their kinds. Columns missing from a
// Schema are inferred.
type Schema map[string]Kind

// Merge returns a new Schema with the entries of s and then o.
func (s Schema) Merge(o Schema) Schema {
	m := make(Schema, len(s)+len(o))
	for k, v := range s {
		m[k] = v
	}
	for k, v := range o {
		m[k] = v
	}
	return m
}

// ParseColumn converts textual values to a typed column of kind k.
// Empty strings are missing values: they become NaN in Float columns
// and force an inferred column to Float. Missing values in an
// explicit Int or Bool column are an error.
func ParseColumn(vals []string, k Kind) (table.Slice, error) {
	if k == Infer {
		k = inferKind(vals)
	}
	switch k {
	case Int:
		out := make([]int, len(vals))
		for i, s := range vals {
			v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 0)
			if err != nil {
				return nil, fmt.Errorf("row %d: %v", i, err)
			}
			out[i] = int(v)
		}
		return out, nil
	case Float:
		out := make([]float64, len(vals))
		for i, s := range vals {
			s = strings.TrimSpace(s)
			if s == "" {
				out[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %v", i, err)
			}
			out[i] = v
		}
		return out, nil
	case Bool:
		out := make([]bool, len(vals))
		for i, s := range vals {
			v, err := strconv.ParseBool(strings.TrimSpace(s))
			if err != nil {
				return nil, fmt.Errorf("row %d: %v", i, err)
			}
			out[i] = v
		}
		return out, nil
	case String:
		out := make([]string, len(vals))
		copy(out, vals)
		return out, nil
	}
	return nil, fmt.Errorf("unknown column kind %v", k)
}

func inferKind(vals []string) Kind {
	if len(vals) == 0 {
		return String
	}
	isInt, isFloat, isBool := true, true, true
	missing, present := false, false
	for _, s := range vals {
		s = strings.TrimSpace(s)
		if s == "" {
			missing = true
			isBool = false
			continue
		}
		present = true
		if isInt {
			if _, err := strconv.ParseInt(s, 10, 0); err != nil {
				isInt = false
			}
		}
		if isFloat && !isInt {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			switch s {
			case "True", "False", "true", "false", "TRUE", "FALSE":
			default:
				isBool = false
			}
		}
		if !isInt && !isFloat && !isBool {
			return String
		}
	}
	switch {
	case !present:
		return String
	case isInt && !missing:
		return Int
	case isInt || isFloat:
		return Float
	case isBool:
		return Bool
	}
	return String
}

// ReadCSV reads a CSV document with a header row into a table. Column
// kinds come from schema, or are inferred for columns it does not
// name. A leading unnamed column, as written for a row index, is
// dropped.
func ReadCSV(r io.Reader, schema Schema) (*table.Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	header, rows := records[0], records[1:]
	if len(header) > 0 && (header[0] == "" || header[0] == "Unnamed: 0") {
		header = header[1:]
		for i, row := range rows {
			rows[i] = row[1:]
		}
	}
	seen := make(map[string]bool)
	for _, col := range header {
		if seen[col] {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		seen[col] = true
	}

	raw := table.TableFromStrings(header, rows, false)
	var b table.Builder
	for _, col := range header {
		data, err := ParseColumn(raw.MustColumn(col).([]string), schema[col])
		if err != nil {
			return nil, fmt.Errorf("column %q: %v", col, err)
		}
		b.Add(col, data)
	}
	return b.Done(), nil
}

// LoadCSV reads the CSV file at path. See ReadCSV.
func LoadCSV(path string, schema Schema) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadCSV(f, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteCSV writes t to w as CSV with a header row. If index is true,
// each row is preceded by its 0-based row number under an empty
// header.
func WriteCSV(w io.Writer, t *table.Table, index bool) error {
	cw := csv.NewWriter(w)
	cols := t.Columns()
	hdr := make([]string, 0, len(cols)+1)
	if index {
		hdr = append(hdr, "")
	}
	hdr = append(hdr, cols...)
	if err := cw.Write(hdr); err != nil {
		return err
	}

	colvs := make([]reflect.Value, len(cols))
	for i, col := range cols {
		colvs[i] = reflect.ValueOf(t.Column(col))
	}
	row := make([]string, len(hdr))
	for r := 0; r < t.Len(); r++ {
		row = row[:0]
		if index {
			row = append(row, strconv.Itoa(r))
		}
		for _, cv := range colvs {
			row = append(row, formatCell(cv.Index(r).Interface()))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		if math.IsNaN(float64(v)) {
			return ""
		}
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		if v {
			return "True"
		}
		return "False"
	}
	return fmt.Sprint(v)
}

// CSVOptions control ToCSV.
type CSVOptions struct {
	// Index writes the row number as the first column.
	Index bool

	// Verbose reports the number of records and the destination
	// to Log.
	Verbose bool

	// Log receives verbose output. If nil, it is os.Stdout.
	Log io.Writer
}

// ToCSV writes t to filename in directory destDir and returns the
// path it wrote.
func ToCSV(t *table.Table, filename, destDir string, opts CSVOptions) (string, error) {
	dest := filepath.Join(destDir, filename)
	f, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	if err := WriteCSV(f, t, opts.Index); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if opts.Verbose {
		log := opts.Log
		if log == nil {
			log = os.Stdout
		}
		fmt.Fprintf(log, "Saved dataframe %d record(s) to: %s\n", t.Len(), dest)
	}
	return dest, nil
}
