// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchplot draws, saves, and shows figures of benchmark
// measurements.
//
// A Figure owns a gonum plot. ShowAndSave hands a figure to a Display,
// optionally writing it to a file first, and always closes the
// figure when it is done.
package benchplot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// ErrClosed is returned when using a Figure after Close.
var ErrClosed = errors.New("benchplot: figure is closed")

// Default figure dimensions.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// A Figure is a plot with a size.
type Figure struct {
	Width, Height vg.Length

	p *plot.Plot
}

// NewFigure returns a Figure of the default size drawing p.
func NewFigure(p *plot.Plot) *Figure {
	return &Figure{Width: DefaultWidth, Height: DefaultHeight, p: p}
}

// Plot returns the figure's plot.
func (f *Figure) Plot() (*plot.Plot, error) {
	if f.p == nil {
		return nil, ErrClosed
	}
	return f.p, nil
}

// Title returns the figure's title text.
func (f *Figure) Title() string {
	if f.p == nil {
		return ""
	}
	return f.p.Title.Text
}

// Close releases the figure's plot. Closing a closed figure does
// nothing.
func (f *Figure) Close() error {
	f.p = nil
	return nil
}

// Closed reports whether f has been closed.
func (f *Figure) Closed() bool {
	return f.p == nil
}

// formats maps file extensions to gonum plot formats.
var formats = map[string]string{
	"png":  "png",
	"jpg":  "jpg",
	"jpeg": "jpeg",
	"svg":  "svg",
	"pdf":  "pdf",
	"eps":  "eps",
	"tif":  "tif",
	"tiff": "tiff",
}

// Format returns the image format for path, based on its extension.
func Format(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if f, ok := formats[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unsupported figure format %q", filepath.Ext(path))
}

// WriteTo renders the figure to w in the given format ("png", "svg",
// "pdf", ...).
func (f *Figure) WriteTo(w io.Writer, format string) (int64, error) {
	if f.p == nil {
		return 0, ErrClosed
	}
	wt, err := f.p.WriterTo(f.Width, f.Height, format)
	if err != nil {
		return 0, err
	}
	return wt.WriteTo(w)
}

// Save writes the figure to path in the format given by its
// extension. If tight is set, the axes are drawn without padding so
// the data fills the image.
func (f *Figure) Save(path string, tight bool) error {
	if f.p == nil {
		return ErrClosed
	}
	format, err := Format(path)
	if err != nil {
		return err
	}
	if tight {
		f.p.X.Padding = 0
		f.p.Y.Padding = 0
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.WriteTo(out, format); err != nil {
		out.Close()
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return out.Close()
}

// ShowAndSave shows fig on d. Unless showOnly is set, it first saves
// the figure, tightly cropped, to filename in destDir and, after
// showing it, shows a link to the saved file. It returns the path of
// the saved file, or "" if showOnly is set.
//
// fig is closed when ShowAndSave returns, whether or not it succeeded.
func ShowAndSave(d Display, fig *Figure, filename, destDir string, showOnly bool) (string, error) {
	defer fig.Close()
	if fig.Closed() {
		return "", ErrClosed
	}
	if showOnly {
		return "", d.ShowFigure(fig)
	}

	if filename == "" {
		return "", fmt.Errorf("benchplot: no file name to save figure %q", fig.Title())
	}
	dest := filepath.Join(destDir, filename)
	if err := fig.Save(dest, true); err != nil {
		return "", err
	}
	if err := d.ShowFigure(fig); err != nil {
		return dest, err
	}
	return dest, d.ShowLink(dest)
}
