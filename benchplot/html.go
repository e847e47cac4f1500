// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/safehtml/template"
)

// HTMLDisplay collects figures and links into an HTML page, the way a
// notebook collects cell output. Each shown figure is rendered to a
// PNG file in Dir; links are made relative to Dir.
type HTMLDisplay struct {
	Dir   string
	Title string

	items []htmlItem
	n     int
}

type htmlItem struct {
	Caption string
	Image   string
	Link    string
}

// NewHTMLDisplay returns an HTMLDisplay writing images to dir.
func NewHTMLDisplay(dir, title string) *HTMLDisplay {
	return &HTMLDisplay{Dir: dir, Title: title}
}

func (d *HTMLDisplay) ShowFigure(fig *Figure) error {
	if fig.Closed() {
		return ErrClosed
	}
	d.n++
	name := fmt.Sprintf("figure-%03d.png", d.n)
	f, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return err
	}
	if _, err := fig.WriteTo(f, "png"); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	d.items = append(d.items, htmlItem{Caption: fig.Title(), Image: name})
	return nil
}

func (d *HTMLDisplay) ShowLink(path string) error {
	rel := path
	if r, err := filepath.Rel(d.Dir, path); err == nil {
		rel = r
	}
	d.items = append(d.items, htmlItem{Caption: filepath.Base(path), Link: filepath.ToSlash(rel)})
	return nil
}

// Len returns the number of figures and links shown so far.
func (d *HTMLDisplay) Len() int {
	return len(d.items)
}

var reportTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
.figure { margin: 1em 0; }
.figure img { max-width: 100%; }
.link { font-family: monospace; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Items -}}
{{if .Image -}}
<div class="figure"><img src="{{.Image}}" alt="{{.Caption}}"><br>{{.Caption}}</div>
{{- else -}}
<div class="link"><a href="{{.Link}}">{{.Caption}}</a></div>
{{- end}}
{{end -}}
</body>
</html>
`))

// Render writes the collected output to w as an HTML page.
func (d *HTMLDisplay) Render(w io.Writer) error {
	return reportTemplate.Execute(w, struct {
		Title string
		Items []htmlItem
	}{d.Title, d.items})
}

// WriteFile renders the page to the file name in Dir and returns its
// path.
func (d *HTMLDisplay) WriteFile(name string) (string, error) {
	path := filepath.Join(d.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := d.Render(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
