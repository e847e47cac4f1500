// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
)

// A Display presents figures and file links to the user.
type Display interface {
	// ShowFigure presents fig. It must not close fig.
	ShowFigure(fig *Figure) error

	// ShowLink presents a link to the file at path.
	ShowLink(path string) error
}

// TextDisplay shows figures as one-line descriptions and links as
// file URLs, which most terminals make clickable.
type TextDisplay struct {
	W io.Writer
}

func (d TextDisplay) ShowFigure(fig *Figure) error {
	if fig.Closed() {
		return ErrClosed
	}
	title := fig.Title()
	if title == "" {
		title = "untitled"
	}
	_, err := fmt.Fprintf(d.W, "[figure %q, %v x %v]\n", title, fig.Width, fig.Height)
	return err
}

func (d TextDisplay) ShowLink(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	_, err = fmt.Fprintln(d.W, u.String())
	return err
}
