// teamstamp - personalised competition PDFs
// Copyright (C) 2026  The teamstamp authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package stamp overlays text onto every page of an existing PDF file.
//
// The main use is the team name watermark, which runs upward along the
// left margin of each page so that loose sheets can be matched to their
// team.  The package also writes centred footnotes, for example the
// qualification rules printed under a results table.
package stamp

import (
	"errors"
	"fmt"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"seehuhn.de/go/teamstamp/fonts"
	"seehuhn.de/go/teamstamp/internal/pdfio"
)

// Options control the appearance of the watermark.
type Options struct {
	// FontSize is the preferred font size in points.
	FontSize int `yaml:"size"`

	// MinFontSize is the smallest size long names are shrunk to.
	MinFontSize int `yaml:"min_size"`

	// Rotation is the counter-clockwise rotation of the text in degrees.
	Rotation float64 `yaml:"rotation"`

	// OffsetX and OffsetY give the position of the text relative to the
	// lower left corner of the page, in points.
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`

	// Color is the text colour as #RRGGBB.
	Color string `yaml:"color"`
}

// DefaultOptions place 10pt black text along the left margin, reading
// from bottom to top.
var DefaultOptions = Options{
	FontSize:    10,
	MinFontSize: 6,
	Rotation:    90,
	OffsetX:     23,
	OffsetY:     40,
	Color:       "#000000",
}

// Stamper writes watermarked copies of PDF files.
// A Stamper is not safe for concurrent use.
type Stamper struct {
	font *fonts.Font
	opt  Options
	conf *model.Configuration
}

// New returns a Stamper which uses the given font.  The font is
// installed into the PDF engine's font store if necessary.
func New(F *fonts.Font, opt *Options) (*Stamper, error) {
	if opt == nil {
		opt = &DefaultOptions
	}
	if opt.FontSize <= 0 {
		return nil, fmt.Errorf("stamp: invalid font size %d", opt.FontSize)
	}
	o := *opt
	if o.MinFontSize <= 0 || o.MinFontSize > o.FontSize {
		o.MinFontSize = o.FontSize
	}
	if o.Color == "" {
		o.Color = DefaultOptions.Color
	}

	err := F.Install()
	if err != nil {
		return nil, err
	}
	return &Stamper{
		font: F,
		opt:  o,
		conf: pdfio.NewConfig(),
	}, nil
}

// Request describes one output file.
type Request struct {
	Source string
	Target string

	// Text is drawn on every page.  If Text is empty, the source is
	// copied unchanged apart from padding and properties.
	Text string

	// Padding lists the pages after which a blank page is inserted,
	// see the padding package.
	Padding []int

	// Properties are added to the document information dictionary.
	Properties map[string]string
}

// Result describes a written file.
type Result struct {
	// Pages is the page count of the output, including padding.
	Pages int

	// FontSize is the size the text was set at.
	FontSize int

	// Overflow is set if the text did not fit along the page even at
	// the minimum font size.
	Overflow bool

	// Missing lists characters of the text which the font cannot show.
	Missing []rune
}

// Stamp writes the watermarked copy described by req.
func (s *Stamper) Stamp(req *Request) (*Result, error) {
	if req.Source == "" || req.Target == "" {
		return nil, errNoPath
	}
	boxes, err := pdfio.PageBoxes(req.Source)
	if err != nil {
		return nil, err
	}
	if len(boxes) == 0 {
		return nil, fmt.Errorf("%s: no pages", req.Source)
	}

	res := &Result{
		Pages:    len(boxes) + len(req.Padding),
		FontSize: s.opt.FontSize,
	}

	if req.Text == "" {
		err = pdfio.CopyFile(req.Source, req.Target)
		if err != nil {
			return nil, err
		}
	} else {
		// Shrink the text to fit along the shortest edge it runs along.
		var avail float64
		for i, box := range boxes {
			l := s.runLength(box.Dx(), box.Dy())
			if i == 0 || l < avail {
				avail = l
			}
		}
		size, ok := s.font.FitSize(req.Text, float64(s.opt.FontSize),
			float64(s.opt.MinFontSize), avail)
		res.FontSize = int(math.Floor(size))
		res.Overflow = !ok
		res.Missing = s.font.Missing(req.Text)

		wm, err := api.TextWatermark(req.Text, s.describe(res.FontSize, s.opt.Rotation, "bl",
			s.opt.OffsetX, s.opt.OffsetY), true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("stamp: %w", err)
		}
		err = api.AddWatermarksFile(req.Source, req.Target, nil, wm, s.conf)
		if err != nil {
			return nil, fmt.Errorf("stamp: %s: %w", req.Source, err)
		}
	}

	err = pdfio.InsertBlankPages(req.Target, req.Padding, s.conf)
	if err != nil {
		return nil, err
	}
	err = pdfio.SetProperties(req.Target, req.Properties, s.conf)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// runLength returns the room available for the text on a page of the
// given size, taking the rotation into account.
func (s *Stamper) runLength(width, height float64) float64 {
	phi := s.opt.Rotation * math.Pi / 180
	if math.Abs(math.Sin(phi)) > math.Abs(math.Cos(phi)) {
		return height - 2*s.opt.OffsetY
	}
	return width - 2*s.opt.OffsetX
}

// describe builds a pdfcpu watermark description.
func (s *Stamper) describe(size int, rotation float64, pos string, dx, dy float64) string {
	return fmt.Sprintf("fontname:%s, points:%d, rotation:%g, position:%s, offset:%g %g, scalefactor:1 abs, fillcolor:%s, opacity:1",
		s.font.PostScriptName(), size, rotation, pos, dx, dy, s.opt.Color)
}

var errNoPath = errors.New("stamp: source and target must be given")
