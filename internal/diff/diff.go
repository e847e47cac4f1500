// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff compares expected and actual text in tests.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Diff returns a human-readable description of the differences between want and got.
// If the "diff" command is available, it returns the output of unified diff on want and got.
// If the result is non-empty, the strings differ or the diff command failed.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	cmd := "diff"
	if runtime.GOOS == "plan9" {
		cmd = "/bin/ape/diff"
	}
	if _, err := exec.LookPath(cmd); err != nil {
		return lineDiff(want, got)
	}

	dir, err := os.MkdirTemp("", "confirm-diff")
	if err != nil {
		return err.Error()
	}
	defer os.RemoveAll(dir)
	wantFile, gotFile := dir+"/want", dir+"/got"
	if err := os.WriteFile(wantFile, []byte(want), 0666); err != nil {
		return err.Error()
	}
	if err := os.WriteFile(gotFile, []byte(got), 0666); err != nil {
		return err.Error()
	}

	data, err := exec.Command(cmd, "-u", wantFile, gotFile).CombinedOutput()
	if len(data) > 0 {
		// diff exits with a non-zero status when the files don't match.
		return string(data)
	}
	if err != nil {
		return err.Error()
	}
	// The inputs differ only in ways diff ignores, such as a
	// missing final newline.
	return lineDiff(want, got)
}

// lineDiff reports the first line at which want and got differ.
func lineDiff(want, got string) string {
	wl, gl := strings.Split(want, "\n"), strings.Split(got, "\n")
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g || i >= len(wl) || i >= len(gl) {
			return fmt.Sprintf("line %d:\n-%q\n+%q\n", i+1, w, g)
		}
	}
	return fmt.Sprintf("want %q\ngot  %q\n", want, got)
}
