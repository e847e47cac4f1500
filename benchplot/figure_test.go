// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/flux-utah/confirm-analysis/benchcolor"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// recorder is a Display that remembers what it was shown.
type recorder struct {
	figures []string
	links   []string
}

func (r *recorder) ShowFigure(fig *Figure) error {
	if fig.Closed() {
		return ErrClosed
	}
	r.figures = append(r.figures, fig.Title())
	return nil
}

func (r *recorder) ShowLink(path string) error {
	r.links = append(r.links, path)
	return nil
}

func lineFigure(t *testing.T, title string) *Figure {
	t.Helper()
	p := plot.New()
	p.Title.Text = title
	l, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 2}})
	if err != nil {
		t.Fatal(err)
	}
	p.Add(l)
	return NewFigure(p)
}

func TestShowAndSave(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"disk.png", "disk.svg", "disk.pdf"} {
		var r recorder
		fig := lineFigure(t, "iops")
		dest, err := ShowAndSave(&r, fig, name, dir, false)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if want := filepath.Join(dir, name); dest != want {
			t.Errorf("saved to %s, want %s", dest, want)
		}
		if fi, err := os.Stat(dest); err != nil || fi.Size() == 0 {
			t.Errorf("%s: saved file missing or empty: %v", name, err)
		}
		if len(r.figures) != 1 || r.figures[0] != "iops" {
			t.Errorf("%s: shown figures = %q", name, r.figures)
		}
		if len(r.links) != 1 || r.links[0] != dest {
			t.Errorf("%s: shown links = %q, want [%s]", name, r.links, dest)
		}
		if !fig.Closed() {
			t.Errorf("%s: figure still open after ShowAndSave", name)
		}
	}
}

func TestShowOnly(t *testing.T) {
	dir := t.TempDir()
	var r recorder
	fig := lineFigure(t, "latency")
	dest, err := ShowAndSave(&r, fig, "latency.png", dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if dest != "" {
		t.Errorf("show-only returned path %q", dest)
	}
	if _, err := os.Stat(filepath.Join(dir, "latency.png")); !os.IsNotExist(err) {
		t.Errorf("show-only wrote a file: %v", err)
	}
	if len(r.figures) != 1 || len(r.links) != 0 {
		t.Errorf("shown figures %q, links %q", r.figures, r.links)
	}
	if !fig.Closed() {
		t.Errorf("figure still open after show-only")
	}

	// A closed figure cannot be shown again.
	if _, err := ShowAndSave(&r, fig, "", "", true); !errors.Is(err, ErrClosed) {
		t.Errorf("ShowAndSave of closed figure = %v, want ErrClosed", err)
	}
}

func TestShowAndSaveErrors(t *testing.T) {
	dir := t.TempDir()
	for _, test := range []struct {
		name, file string
	}{
		{"no name", ""},
		{"bad format", "figure.xyz"},
		{"missing dir", filepath.Join("missing", "figure.png")},
	} {
		var r recorder
		fig := lineFigure(t, "x")
		if _, err := ShowAndSave(&r, fig, test.file, dir, false); err == nil {
			t.Errorf("%s: ShowAndSave succeeded", test.name)
		}
		if !fig.Closed() {
			t.Errorf("%s: figure still open after failure", test.name)
		}
		if len(r.figures) != 0 {
			t.Errorf("%s: figure shown despite failed save", test.name)
		}
	}
}

func TestTextDisplay(t *testing.T) {
	var buf bytes.Buffer
	d := TextDisplay{&buf}
	dir := t.TempDir()
	if _, err := ShowAndSave(d, lineFigure(t, "bw"), "bw.png", dir, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("TextDisplay wrote %q, want 2 lines", buf.String())
	}
	if !strings.HasPrefix(lines[0], `[figure "bw"`) {
		t.Errorf("figure line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "file://") || !strings.HasSuffix(lines[1], "/bw.png") {
		t.Errorf("link line = %q", lines[1])
	}
}

func TestHTMLDisplay(t *testing.T) {
	dir := t.TempDir()
	d := NewHTMLDisplay(dir, "Disk <variability>")
	if _, err := ShowAndSave(d, lineFigure(t, "iops"), "iops.svg", dir, false); err != nil {
		t.Fatal(err)
	}
	if _, err := ShowAndSave(d, lineFigure(t, "bw"), "", "", true); err != nil {
		t.Fatal(err)
	}
	if d.Len() != 3 {
		t.Errorf("HTMLDisplay has %d items, want 3", d.Len())
	}
	path, err := d.WriteFile("index.html")
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)
	for _, want := range []string{
		`<img src="figure-001.png"`,
		`<img src="figure-002.png"`,
		`<a href="iops.svg">`,
		"Disk &lt;variability&gt;",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page lacks %q:\n%s", want, page)
		}
	}
	for _, img := range []string{"figure-001.png", "figure-002.png"} {
		if _, err := os.Stat(filepath.Join(dir, img)); err != nil {
			t.Errorf("image not written: %v", err)
		}
	}
}

func TestCharts(t *testing.T) {
	tab := new(table.Builder).
		Add("hw_type", []string{"m510", "m510", "c220g1", "c220g1", "c220g1"}).
		Add("timestamp", []int{1, 2, 3, 4, 5}).
		Add("iops", []float64{100, 110, 90, 95, 93}).
		Done()
	cmap, err := benchcolor.GetCmap(tab, "hw_type", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	box, err := BoxPlot(tab, "hw_type", "iops", cmap)
	if err != nil {
		t.Fatal(err)
	}
	scatter, err := Scatter(tab, "timestamp", "iops", "hw_type", cmap)
	if err != nil {
		t.Fatal(err)
	}
	for _, fig := range []*Figure{box, scatter} {
		var buf bytes.Buffer
		if _, err := fig.WriteTo(&buf, "svg"); err != nil {
			t.Errorf("%s: %v", fig.Title(), err)
		}
		if !strings.Contains(buf.String(), "<svg") {
			t.Errorf("%s: output is not SVG", fig.Title())
		}
	}

	if _, err := BoxPlot(tab, "hw_type", "nope", cmap); err == nil {
		t.Errorf("BoxPlot on missing column succeeded")
	}
	if _, err := Scatter(tab, "hw_type", "iops", "hw_type", cmap); err == nil {
		t.Errorf("Scatter with string x column succeeded")
	}
}
