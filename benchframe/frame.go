// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchframe provides table utilities for exploring benchmark
// measurements.
//
// Tables are go-gg tables (github.com/aclements/go-gg/table): ordered
// sets of named, homogeneously typed columns. Tables are immutable,
// so every function in this package returns a new table and leaves
// its arguments untouched.
//
// Most functions check that the columns they use exist before doing
// any work and report missing columns as errors rather than panicking
// the way the underlying table package does.
package benchframe

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Require returns an error naming every column in cols that t lacks.
func Require(t *table.Table, cols ...string) error {
	var missing []string
	for _, col := range cols {
		if !Has(t, col) {
			missing = append(missing, col)
		}
	}
	switch len(missing) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("unknown column %q", missing[0])
	}
	return fmt.Errorf("unknown columns %q", missing)
}

// Has reports whether t has a column named col.
func Has(t *table.Table, col string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns() {
		if c == col {
			return true
		}
	}
	return false
}

// Len returns the number of rows in t. A nil table has no rows.
func Len(t *table.Table) int {
	if t == nil {
		return 0
	}
	return t.Len()
}

// Unique returns the distinct values of column col in the order they
// first appear.
func Unique(t *table.Table, col string) ([]interface{}, error) {
	if err := Require(t, col); err != nil {
		return nil, err
	}
	nub := reflect.ValueOf(slice.Nub(t.Column(col)))
	vals := make([]interface{}, nub.Len())
	for i := range vals {
		vals[i] = nub.Index(i).Interface()
	}
	return vals, nil
}

// Singular is the result of Column2Val.
type Singular struct {
	// Column is the column that was examined.
	Column string

	// Value is the unique value of Column or, if the column was
	// not singular, the first value in it.
	Value interface{}

	// Distinct is the number of distinct values in Column.
	Distinct int
}

// Warning returns a diagnostic if the column had more than one
// distinct value, or "" if it was singular.
func (s Singular) Warning() string {
	if s.Distinct <= 1 {
		return ""
	}
	return fmt.Sprintf("multiple unique values are found in column: %s", s.Column)
}

// Column2Val returns the only distinct value of column col.
//
// A column holding more than one distinct value is not an error: the
// returned Singular carries the first value and a non-empty Warning.
// Column2Val fails only if col does not exist or t has no rows.
func Column2Val(t *table.Table, col string) (Singular, error) {
	vals, err := Unique(t, col)
	if err != nil {
		return Singular{}, err
	}
	if len(vals) == 0 {
		return Singular{}, fmt.Errorf("column %q has no values", col)
	}
	return Singular{Column: col, Value: vals[0], Distinct: len(vals)}, nil
}

// WithColumn returns t with column name set to data, replacing any
// existing column of that name. data must be a slice with one element
// per row of t.
func WithColumn(t *table.Table, name string, data table.Slice) (*table.Table, error) {
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("column %q: %T is not a slice", name, data)
	}
	if len(t.Columns()) > 0 && rv.Len() != t.Len() {
		return nil, fmt.Errorf("column %q has %d rows, table has %d", name, rv.Len(), t.Len())
	}
	return table.NewBuilder(t).Add(name, data).Done(), nil
}

// AddConst returns t with a column name holding val in every row.
func AddConst(t *table.Table, name string, val interface{}) (*table.Table, error) {
	return WithColumn(t, name, slice.Repeat(val, Len(t)))
}

// MapString returns t with column out set to f applied to each value
// of column in. Non-string values of in are formatted with %v first.
func MapString(t *table.Table, in, out string, f func(string) string) (*table.Table, error) {
	strs, err := Strings(t, in)
	if err != nil {
		return nil, err
	}
	vals := make([]string, len(strs))
	for i, s := range strs {
		vals[i] = f(s)
	}
	return WithColumn(t, out, vals)
}

// Strings returns column col of t as strings. String columns are
// returned as is; other columns are formatted with %v.
func Strings(t *table.Table, col string) ([]string, error) {
	if err := Require(t, col); err != nil {
		return nil, err
	}
	data := t.Column(col)
	if strs, ok := data.([]string); ok {
		return strs, nil
	}
	rv := reflect.ValueOf(data)
	strs := make([]string, rv.Len())
	for i := range strs {
		strs[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return strs, nil
}

// Floats returns column col of t converted to float64. Boolean
// columns convert to 0 and 1. Other non-numeric columns are an error.
func Floats(t *table.Table, col string) ([]float64, error) {
	if err := Require(t, col); err != nil {
		return nil, err
	}
	data := t.Column(col)
	if bs, ok := data.([]bool); ok {
		xs := make([]float64, len(bs))
		for i, b := range bs {
			if b {
				xs[i] = 1
			}
		}
		return xs, nil
	}
	if !isNumeric(reflect.TypeOf(data).Elem().Kind()) {
		return nil, fmt.Errorf("column %q is %T, not numeric", col, data)
	}
	var xs []float64
	slice.Convert(&xs, data)
	return xs, nil
}

// selectRows returns the rows of t at indexes, in that order.
func selectRows(t *table.Table, indexes []int) *table.Table {
	if len(indexes) == t.Len() {
		same := true
		for i, x := range indexes {
			if i != x {
				same = false
				break
			}
		}
		if same {
			return t
		}
	}
	var nt table.Builder
	for _, col := range t.Columns() {
		if cv, ok := t.Const(col); ok {
			nt.AddConst(col, cv)
			continue
		}
		nt.Add(col, slice.Select(t.Column(col), indexes))
	}
	return nt.Done()
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// keySep separates the parts of a composite row key.
const keySep = "\x1f"

// rowKeys returns, for each row of t, a string identifying the values
// of cols in that row. Rows with equal values in cols have equal keys.
func rowKeys(t *table.Table, cols []string) []string {
	colvs := make([]reflect.Value, len(cols))
	for i, col := range cols {
		colvs[i] = reflect.ValueOf(t.MustColumn(col))
	}
	keys := make([]string, t.Len())
	var sb strings.Builder
	for r := range keys {
		sb.Reset()
		for i, cv := range colvs {
			if i > 0 {
				sb.WriteString(keySep)
			}
			fmt.Fprint(&sb, cv.Index(r).Interface())
		}
		keys[r] = sb.String()
	}
	return keys
}

// nanSlice returns a slice of type typ with n elements, each NaN if
// typ is a float slice and the zero value otherwise.
func nanSlice(typ reflect.Type, n int) table.Slice {
	s := reflect.MakeSlice(typ, n, n)
	switch typ.Elem().Kind() {
	case reflect.Float32, reflect.Float64:
		nan := reflect.ValueOf(math.NaN()).Convert(typ.Elem())
		for i := 0; i < n; i++ {
			s.Index(i).Set(nan)
		}
	}
	return s.Interface()
}
