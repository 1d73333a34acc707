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

package stamp

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"seehuhn.de/go/teamstamp/internal/pdfio"
)

// FootnoteOptions control the layout of [Stamper.Footnote].
type FootnoteOptions struct {
	// FontSize is the font size in points.
	FontSize int `yaml:"size"`

	// Baseline is the distance of the last line from the bottom edge of
	// the page, in points.
	Baseline float64 `yaml:"baseline"`

	// Leading is the line distance as a multiple of the font size.
	Leading float64 `yaml:"leading"`

	// MaxWidth is the fraction of the page width a line may occupy
	// before it is reported as too long.
	MaxWidth float64 `yaml:"max_width"`
}

// DefaultFootnote matches the results tables: 9pt lines, stacked upward
// from 22pt above the bottom edge.
var DefaultFootnote = FootnoteOptions{
	FontSize: 9,
	Baseline: 22,
	Leading:  1.2,
	MaxWidth: 0.95,
}

// Footnote writes a copy of src to dst with the given text centred at
// the bottom of every page.  The text is split into lines at newline
// characters.  If twoSided is set, a blank page is appended to files with
// an odd page count.
//
// Lines which are wider than the allowed fraction of the page width are
// returned, so that the caller can ask for them to be split.
func (s *Stamper) Footnote(src, dst, text string, opt *FootnoteOptions, twoSided bool) ([]string, error) {
	if opt == nil {
		opt = &DefaultFootnote
	}
	boxes, err := pdfio.PageBoxes(src)
	if err != nil {
		return nil, err
	}
	if len(boxes) == 0 {
		return nil, fmt.Errorf("%s: no pages", src)
	}
	pageWidth := boxes[0].Dx()

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var tooLong []string
	lineHeight := float64(opt.FontSize) * opt.Leading
	first := true
	for k := range lines {
		// draw from the bottom up
		line := lines[len(lines)-1-k]
		y := opt.Baseline + float64(k)*lineHeight
		if strings.TrimSpace(line) == "" {
			continue
		}
		if s.font.Width(line, float64(opt.FontSize)) > pageWidth*opt.MaxWidth {
			tooLong = append(tooLong, line)
		}

		wm, err := api.TextWatermark(line, s.describe(opt.FontSize, 0, "bc", 0, y),
			true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("stamp: %w", err)
		}
		in, out := src, dst
		if !first {
			in, out = dst, ""
		}
		err = api.AddWatermarksFile(in, out, nil, wm, s.conf)
		if err != nil {
			return nil, fmt.Errorf("stamp: %s: %w", src, err)
		}
		first = false
	}
	if first {
		err = pdfio.CopyFile(src, dst)
		if err != nil {
			return nil, err
		}
	}

	if twoSided && len(boxes)%2 == 1 {
		err = pdfio.InsertBlankPages(dst, []int{len(boxes)}, s.conf)
		if err != nil {
			return nil, err
		}
	}

	slices.Reverse(tooLong) // reading order
	return tooLong, nil
}
