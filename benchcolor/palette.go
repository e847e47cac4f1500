// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcolor

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
)

// DefaultPalette is the palette used when none is named.
const DefaultPalette = "bright"

// seaborn holds the ten-color categorical palettes of the seaborn
// plotting library, which the exploration notebooks were drawn with.
var seaborn = map[string][]uint32{
	"deep": {
		0x4c72b0, 0xdd8452, 0x55a868, 0xc44e52, 0x8172b3,
		0x937860, 0xda8bc3, 0x8c8c8c, 0xccb974, 0x64b5cd,
	},
	"muted": {
		0x4878d0, 0xee854a, 0x6acc64, 0xd65f5f, 0x956cb4,
		0x8c613c, 0xdc7ec0, 0x797979, 0xd5bb67, 0x82c6e2,
	},
	"pastel": {
		0xa1c9f4, 0xffb482, 0x8de5a1, 0xff9f9b, 0xd0bbff,
		0xdebb9b, 0xfab0e4, 0xcfcfcf, 0xfffea3, 0xb9f2f0,
	},
	"bright": {
		0x023eff, 0xff7c00, 0x1ac938, 0xe8000b, 0x8b2be2,
		0x9f4800, 0xf14cc1, 0xa3a3a3, 0xffc400, 0x00d7ff,
	},
	"dark": {
		0x001c7f, 0xb1400d, 0x12711c, 0x8c0800, 0x591e71,
		0x592f0d, 0xa23582, 0x3c3c3c, 0xb8850a, 0x006374,
	},
	"colorblind": {
		0x0173b2, 0xde8f05, 0x029e73, 0xd55e00, 0xcc78bc,
		0xca9161, 0xfbafe4, 0x949494, 0xece133, 0x56b4e9,
	},
}

func rgb(x uint32) color.RGBA {
	return color.RGBA{R: uint8(x >> 16), G: uint8(x >> 8), B: uint8(x), A: 0xff}
}

// Palette returns n colors from the named palette.
//
// The seaborn palettes (deep, muted, pastel, bright, dark, colorblind)
// and the ColorBrewer palettes (Set1, Paired, Dark2, Blues, ...) have
// a fixed number of colors and repeat from the start when n exceeds
// it. The "hls" and "rainbow" palettes space n hues evenly around the
// color wheel.
func Palette(name string, n int) ([]color.Color, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative palette size %d", n)
	}
	if name == "" {
		name = DefaultPalette
	}
	var base []color.Color
	switch {
	case seaborn[name] != nil:
		for _, x := range seaborn[name] {
			base = append(base, rgb(x))
		}
	case name == "hls" || name == "rainbow":
		return hues(n), nil
	default:
		p, err := brewerPalette(name, n)
		if err != nil {
			return nil, err
		}
		base = p
	}
	return cycle(base, n), nil
}

// brewerSizes gives the largest size of each ColorBrewer palette.
// Every palette is also defined at each size from 3 up.
var brewerSizes = map[string]int{
	// Qualitative.
	"Accent": 8, "Dark2": 8, "Paired": 12, "Pastel1": 9,
	"Pastel2": 8, "Set1": 9, "Set2": 8, "Set3": 12,

	// Sequential.
	"Blues": 9, "BuGn": 9, "BuPu": 9, "GnBu": 9, "Greens": 9,
	"Greys": 9, "Oranges": 9, "OrRd": 9, "PuBu": 9, "PuBuGn": 9,
	"PuRd": 9, "Purples": 9, "RdPu": 9, "Reds": 9, "YlGn": 9,
	"YlGnBu": 9, "YlOrBr": 9, "YlOrRd": 9,

	// Diverging.
	"BrBG": 11, "PiYG": 11, "PRGn": 11, "PuOr": 11, "RdBu": 11,
	"RdGy": 11, "RdYlBu": 11, "RdYlGn": 11, "Spectral": 11,
}

const brewerMinSize = 3

// Palettes returns the names accepted by Palette, sorted.
func Palettes() []string {
	var names []string
	for name := range seaborn {
		names = append(names, name)
	}
	names = append(names, "hls", "rainbow")
	for name := range brewerSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// brewerPalette returns ColorBrewer palette name at size n, clamped
// to the sizes the palette defines. Names are matched without regard
// to case.
func brewerPalette(name string, n int) ([]color.Color, error) {
	canon, max := "", 0
	for pname, size := range brewerSizes {
		if strings.EqualFold(pname, name) {
			canon, max = pname, size
		}
	}
	if canon == "" {
		return nil, fmt.Errorf("unknown palette %q", name)
	}
	size := n
	if size > max {
		size = max
	}
	if size < brewerMinSize {
		size = brewerMinSize
	}
	p, err := brewer.GetPalette(brewer.TypeAny, canon, size)
	if err != nil {
		return nil, fmt.Errorf("palette %s(%d): %v", canon, size, err)
	}
	return p.Colors(), nil
}

func hues(n int) []color.Color {
	switch n {
	case 0:
		return []color.Color{}
	case 1:
		return palette.Rainbow(2, 0, 0.5, 0.65, 0.9, 1).Colors()[:1]
	}
	// Rainbow includes both ends of the hue range; stop one step
	// short of a full turn so the first and last colors differ.
	end := float64(n-1) / float64(n)
	return palette.Rainbow(n, 0, palette.Hue(end), 0.65, 0.9, 1).Colors()
}

func cycle(base []color.Color, n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out
}
