// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcolor assigns consistent plot colors to categorical
// values, such as sites or hardware types, so that every figure in an
// analysis draws the same category in the same color.
package benchcolor

import (
	"image/color"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/flux-utah/confirm-analysis/benchframe"
)

// A Map assigns a color to each categorical value.
type Map map[interface{}]color.Color

// Get returns the color of v, or black if v has none.
func (m Map) Get(v interface{}) color.Color {
	if c, ok := m[v]; ok {
		return c
	}
	return color.Black
}

// GetCmap assigns a color from the named palette to each distinct
// value of column col, in order of first appearance. The palette is
// sized to the number of distinct values. Entries in custom are then
// added to the map, replacing any generated color for the same value.
// An empty palette name means DefaultPalette.
func GetCmap(t *table.Table, col, palette string, custom Map) (Map, error) {
	vals, err := benchframe.Unique(t, col)
	if err != nil {
		return nil, err
	}
	return fromDistinct(vals, palette, custom)
}

// GetCmapFromList is like GetCmap but takes the values from vals
// rather than a table column. vals must be a slice; repeated values
// keep the color of their first appearance.
func GetCmapFromList(vals table.Slice, palette string, custom Map) (Map, error) {
	nub := reflect.ValueOf(slice.Nub(vals))
	distinct := make([]interface{}, nub.Len())
	for i := range distinct {
		distinct[i] = nub.Index(i).Interface()
	}
	return fromDistinct(distinct, palette, custom)
}

func fromDistinct(vals []interface{}, palette string, custom Map) (Map, error) {
	colors, err := Palette(palette, len(vals))
	if err != nil {
		return nil, err
	}
	m := make(Map, len(vals)+len(custom))
	for i, v := range vals {
		m[v] = colors[i]
	}
	for k, c := range custom {
		m[k] = c
	}
	return m, nil
}
