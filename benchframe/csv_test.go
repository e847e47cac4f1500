// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchframe

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/flux-utah/confirm-analysis/internal/diff"
)

func TestReadCSV(t *testing.T) {
	const input = `,run_uuid,timestamp,run_success,gcc_ver,reverse,bw,disk_size
0,a,1522636000,1,5.4.0,True,1.5, 480GB
1,b,1522636100,0,5.4.0,False,,1TB
`
	tab, err := ReadCSV(strings.NewReader(input), Schema{"disk_size": String})
	if err != nil {
		t.Fatal(err)
	}
	wantCols := []string{"run_uuid", "timestamp", "run_success", "gcc_ver", "reverse", "bw", "disk_size"}
	if !reflect.DeepEqual(tab.Columns(), wantCols) {
		t.Fatalf("columns = %q, want %q", tab.Columns(), wantCols)
	}
	for _, test := range []struct {
		col  string
		want interface{}
	}{
		{"run_uuid", []string{"a", "b"}},
		{"timestamp", []int{1522636000, 1522636100}},
		{"run_success", []int{1, 0}},
		{"gcc_ver", []string{"5.4.0", "5.4.0"}},
		{"reverse", []bool{true, false}},
		{"disk_size", []string{" 480GB", "1TB"}},
	} {
		if got := tab.MustColumn(test.col); !reflect.DeepEqual(got, test.want) {
			t.Errorf("column %s = %#v, want %#v", test.col, got, test.want)
		}
	}
	bw := tab.MustColumn("bw").([]float64)
	if bw[0] != 1.5 || !math.IsNaN(bw[1]) {
		t.Errorf("column bw = %v, want [1.5 NaN]", bw)
	}
}

func TestReadCSVErrors(t *testing.T) {
	for _, test := range []struct {
		name, input string
		schema      Schema
	}{
		{"empty", "", nil},
		{"duplicate", "a,a\n1,2\n", nil},
		{"bad int", "a\nx\n", Schema{"a": Int}},
		{"ragged", "a,b\n1\n", nil},
	} {
		if _, err := ReadCSV(strings.NewReader(test.input), test.schema); err == nil {
			t.Errorf("%s: ReadCSV succeeded, want error", test.name)
		}
	}
}

func TestParseColumnInfer(t *testing.T) {
	for _, test := range []struct {
		vals []string
		want interface{}
	}{
		{[]string{"1", "2"}, []int{1, 2}},
		{[]string{"1", "2.5"}, []float64{1, 2.5}},
		{[]string{"true", "False"}, []bool{true, false}},
		{[]string{"sda1", "2"}, []string{"sda1", "2"}},
		{[]string{}, []string{}},
	} {
		got, err := ParseColumn(test.vals, Infer)
		if err != nil {
			t.Errorf("ParseColumn(%q): %v", test.vals, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("ParseColumn(%q) = %#v, want %#v", test.vals, got, test.want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	tab := new(table.Builder).
		Add("nodeid", []string{"ms0901", "clnode050"}).
		Add("bw", []float64{1.25, math.NaN()}).
		Add("reverse", []bool{true, false}).
		Add("n", []int{3, 4}).
		Done()

	for _, test := range []struct {
		index bool
		want  string
	}{
		{false, "nodeid,bw,reverse,n\nms0901,1.25,True,3\nclnode050,,False,4\n"},
		{true, ",nodeid,bw,reverse,n\n0,ms0901,1.25,True,3\n1,clnode050,,False,4\n"},
	} {
		var buf bytes.Buffer
		if err := WriteCSV(&buf, tab, test.index); err != nil {
			t.Fatal(err)
		}
		if d := diff.Diff(test.want, buf.String()); d != "" {
			t.Errorf("WriteCSV(index=%v) differs:\n%s", test.index, d)
		}
	}
}

func TestToCSV(t *testing.T) {
	dir := t.TempDir()
	var log bytes.Buffer
	dest, err := ToCSV(nodes(), "nodes.csv", dir, CSVOptions{Verbose: true, Log: &log})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "nodes.csv"); dest != want {
		t.Errorf("ToCSV wrote %s, want %s", dest, want)
	}
	if want := "Saved dataframe 5 record(s) to: " + dest + "\n"; log.String() != want {
		t.Errorf("verbose output = %q, want %q", log.String(), want)
	}

	// Reading the file back yields the same table.
	back, err := LoadCSV(dest, Schema{"bw": Float})
	if err != nil {
		t.Fatal(err)
	}
	orig := nodes()
	for _, col := range orig.Columns() {
		if !reflect.DeepEqual(back.MustColumn(col), orig.MustColumn(col)) {
			t.Errorf("column %s = %v after round trip, want %v", col, back.MustColumn(col), orig.MustColumn(col))
		}
	}

	if _, err := ToCSV(nodes(), "x.csv", filepath.Join(dir, "missing"), CSVOptions{}); err == nil {
		t.Errorf("ToCSV into missing directory succeeded")
	}
	if _, err := os.Stat(filepath.Join(dir, "missing", "x.csv")); err == nil {
		t.Errorf("ToCSV created a file in a missing directory")
	}
}
