// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchframe

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/aclements/go-gg/table"
)

// joinKeyCol holds the composite key while joining. It cannot collide
// with a column read from CSV or SQL.
const joinKeyCol = "\x00join"

// Join returns the inner join of t1 and t2 on equality of all of
// keys. The result has the rows of t1 in order, each repeated once per
// matching row of t2 in t2's order. Its columns are t1's followed by
// t2's non-key columns. A non-key column present in both tables is
// renamed with a "_x" suffix for t1 and "_y" for t2.
//
// Key values are compared by their formatted text, so join keys must
// agree in representation across the two tables. Keys that do not
// match produce no rows rather than an error.
func Join(t1, t2 *table.Table, keys ...string) (*table.Table, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("join: no key columns")
	}
	if err := Require(t1, keys...); err != nil {
		return nil, fmt.Errorf("join: left table: %w", err)
	}
	if err := Require(t2, keys...); err != nil {
		return nil, fmt.Errorf("join: right table: %w", err)
	}

	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}

	var left table.Grouping = table.NewBuilder(t1).Add(joinKeyCol, rowKeys(t1, keys)).Done()
	var right table.Grouping = table.NewBuilder(t2).Add(joinKeyCol, rowKeys(t2, keys)).Done()
	for _, col := range t2.Columns() {
		switch {
		case isKey[col]:
			right = table.Remove(right, col)
		case Has(t1, col):
			left = table.Rename(left, col, col+"_x")
			right = table.Rename(right, col, col+"_y")
		}
	}

	joined := table.Join(left, joinKeyCol, right, joinKeyCol)
	if len(joined.Tables()) == 0 {
		return new(table.Table), nil
	}
	return table.Flatten(table.Remove(joined, joinKeyCol)), nil
}

// Concat returns the rows of tabs in order. The result has the union
// of the tables' columns, in order of first appearance. A table
// lacking one of those columns contributes NaN to a float column and
// the zero value to any other column. A column that is numeric in
// every table but not of one type becomes a float64 column. Any other
// type mismatch between tables is an error. Tables with no columns
// are skipped.
func Concat(tabs ...*table.Table) (*table.Table, error) {
	var cols []string
	types := make(map[string]reflect.Type)
	for i, t := range tabs {
		if t == nil {
			continue
		}
		for _, col := range t.Columns() {
			typ := reflect.TypeOf(t.Column(col))
			prev, ok := types[col]
			switch {
			case !ok:
				types[col] = typ
				cols = append(cols, col)
			case prev == typ:
			case isNumeric(prev.Elem().Kind()) && isNumeric(typ.Elem().Kind()):
				types[col] = float64s
			default:
				return nil, fmt.Errorf("concat: column %q is %v in an earlier table but %v in table %d", col, prev, typ, i)
			}
		}
	}
	if len(cols) == 0 {
		return new(table.Table), nil
	}

	var gs []table.Grouping
	for _, t := range tabs {
		if t == nil || len(t.Columns()) == 0 {
			continue
		}
		var b table.Builder
		for _, col := range cols {
			switch {
			case !Has(t, col):
				b.Add(col, nanSlice(types[col], t.Len()))
			case types[col] == float64s:
				xs, err := Floats(t, col)
				if err != nil {
					return nil, fmt.Errorf("concat: %w", err)
				}
				b.Add(col, xs)
			default:
				b.Add(col, t.Column(col))
			}
		}
		gs = append(gs, b.Done())
	}
	return table.Flatten(table.Concat(gs...)), nil
}

var float64s = reflect.TypeOf([]float64(nil))

// DropSmallGroups groups the rows of t by the values of cols and
// returns t without the rows of any group that has fewer than min
// rows. Rows with a missing value (an empty string or NaN) in any of
// cols belong to no group and are kept. The surviving rows keep their
// order.
func DropSmallGroups(t *table.Table, min int, cols ...string) (*table.Table, error) {
	if err := Require(t, cols...); err != nil {
		return nil, err
	}
	keys := rowKeys(t, cols)
	missing := missingRows(t, cols)
	counts := make(map[string]int)
	for i, k := range keys {
		if !missing[i] {
			counts[k]++
		}
	}
	keep := make([]int, 0, len(keys))
	for i, k := range keys {
		if missing[i] || counts[k] >= min {
			keep = append(keep, i)
		}
	}
	return selectRows(t, keep), nil
}

// missingRows reports, for each row of t, whether any of cols holds a
// missing value in that row.
func missingRows(t *table.Table, cols []string) []bool {
	missing := make([]bool, t.Len())
	for _, col := range cols {
		switch data := t.MustColumn(col).(type) {
		case []string:
			for i, s := range data {
				if strings.TrimSpace(s) == "" {
					missing[i] = true
				}
			}
		case []float64:
			for i, x := range data {
				if math.IsNaN(x) {
					missing[i] = true
				}
			}
		}
	}
	return missing
}
