// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchframe

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/aclements/go-gg/table"
)

// Eq is an equality predicate on a column.
type Eq struct {
	Col string
	Val interface{}
}

func (e Eq) String() string {
	return fmt.Sprintf("%s==%v", e.Col, e.Val)
}

// SubsetOptions control Subset.
type SubsetOptions struct {
	// Verbose reports the row count after each filter to Log.
	Verbose bool

	// Log receives verbose output. If nil, it is os.Stdout.
	Log io.Writer
}

// Subset returns the rows of t for which every filter holds.
//
// Filters are applied in order. The order never changes the result,
// only the running counts in the verbose report. Numeric filter
// values match numeric columns of any type that holds the same value,
// so Eq{"run_success", 1} matches an int64 column.
func Subset(t *table.Table, filters []Eq, opts SubsetOptions) (*table.Table, error) {
	cols := make([]string, len(filters))
	for i, f := range filters {
		cols[i] = f.Col
	}
	if err := Require(t, cols...); err != nil {
		return nil, err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "Subsetting dataframe. Initial # of rows: %d", t.Len())
	for _, f := range filters {
		t = table.Flatten(table.FilterEq(t, f.Col, columnValue(t, f.Col, f.Val)))
		fmt.Fprintf(&msg, ", %s: %d", f, t.Len())
	}
	if opts.Verbose {
		log := opts.Log
		if log == nil {
			log = os.Stdout
		}
		fmt.Fprintln(log, msg.String())
	}
	return t, nil
}

// columnValue converts val to the element type of column col when
// both are numeric and the conversion is exact. Otherwise it returns
// val unchanged.
func columnValue(t *table.Table, col string, val interface{}) interface{} {
	if val == nil {
		return val
	}
	et := reflect.TypeOf(t.Column(col)).Elem()
	vv := reflect.ValueOf(val)
	if vv.Type() == et || !isNumeric(vv.Kind()) || !isNumeric(et.Kind()) {
		return val
	}
	cv := vv.Convert(et)
	if cv.Convert(vv.Type()).Interface() != val {
		// Lossy, so nothing in the column can equal val.
		return val
	}
	return cv.Interface()
}

// FilterFloat returns the rows of t where pred holds for the value of
// numeric column col.
func FilterFloat(t *table.Table, col string, pred func(float64) bool) (*table.Table, error) {
	xs, err := Floats(t, col)
	if err != nil {
		return nil, err
	}
	match := make([]int, 0, len(xs))
	for i, x := range xs {
		if pred(x) {
			match = append(match, i)
		}
	}
	return selectRows(t, match), nil
}

// FilterString returns the rows of t where pred holds for the value
// of column col, formatted with %v if col is not a string column.
func FilterString(t *table.Table, col string, pred func(string) bool) (*table.Table, error) {
	strs, err := Strings(t, col)
	if err != nil {
		return nil, err
	}
	match := make([]int, 0, len(strs))
	for i, s := range strs {
		if pred(s) {
			match = append(match, i)
		}
	}
	return selectRows(t, match), nil
}
