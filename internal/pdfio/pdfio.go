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

// Package pdfio collects the page level operations teamstamp performs on
// existing PDF files.  The heavy lifting is done by pdfcpu.
package pdfio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"seehuhn.de/go/geom/rect"
)

// A4 is the nominal size of an A4 page in PDF points, as used for
// the page geometry check.
var A4 = rect.Rect{URx: 595, URy: 842}

// A4Tolerance is the allowed deviation from [A4] in PDF points.
const A4Tolerance = 1.0

// NewConfig returns the pdfcpu configuration used for all operations.
func NewConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageBoxes returns the media box of every page of the file.  Boxes
// inherited from the page tree are resolved.
func PageBoxes(path string) ([]rect.Rect, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx, err := api.ReadContext(f, NewConfig())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	err = ctx.EnsurePageCount()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	boxes := make([]rect.Rect, ctx.PageCount)
	for i := range boxes {
		_, _, inh, err := ctx.PageDict(i+1, false)
		if err != nil {
			return nil, fmt.Errorf("%s: page %d: %w", path, i+1, err)
		}
		if inh == nil || inh.MediaBox == nil {
			return nil, fmt.Errorf("%s: page %d: %w", path, i+1, errNoMediaBox)
		}
		mb := inh.MediaBox
		boxes[i] = rect.Rect{LLx: mb.LL.X, LLy: mb.LL.Y, URx: mb.UR.X, URy: mb.UR.Y}
	}
	return boxes, nil
}

var errNoMediaBox = errors.New("missing media box")

// PageCount returns the number of pages in the file.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// IsA4 reports whether the box matches [A4] within [A4Tolerance].
func IsA4(box rect.Rect) bool {
	return near(box.Dx(), A4.Dx()) && near(box.Dy(), A4.Dy())
}

func near(a, b float64) bool {
	d := a - b
	return d <= A4Tolerance && d >= -A4Tolerance
}

// NonA4 returns the 1-based numbers of all pages which are not A4.
func NonA4(boxes []rect.Rect) []int {
	var res []int
	for i, box := range boxes {
		if !IsA4(box) {
			res = append(res, i+1)
		}
	}
	return res
}

// InsertBlankPages modifies the file in place, inserting one blank page
// after each of the given 1-based page numbers.  The blank pages have the
// size of the page they follow.
func InsertBlankPages(path string, after []int, conf *model.Configuration) error {
	if len(after) == 0 {
		return nil
	}
	sel := make([]string, len(after))
	for i, p := range after {
		sel[i] = strconv.Itoa(p)
	}
	err := api.InsertPagesFile(path, "", sel, false, nil, conf)
	if err != nil {
		return fmt.Errorf("%s: insert blank pages: %w", path, err)
	}
	return nil
}

// SetProperties records document properties in the Info dictionary of the
// file, in place.
func SetProperties(path string, props map[string]string, conf *model.Configuration) error {
	if len(props) == 0 {
		return nil
	}
	err := api.AddPropertiesFile(path, "", props, conf)
	if err != nil {
		return fmt.Errorf("%s: set properties: %w", path, err)
	}
	return nil
}

// Merge concatenates the input files into out.
func Merge(in []string, out string, conf *model.Configuration) error {
	if len(in) == 0 {
		return fmt.Errorf("%s: nothing to merge", out)
	}
	err := api.MergeCreateFile(in, out, false, conf)
	if err != nil {
		return fmt.Errorf("merge into %s: %w", out, err)
	}
	return nil
}

// CopyFile copies src to dst, replacing dst if it exists.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".copy-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	_, err = io.Copy(tmp, in)
	if err != nil {
		tmp.Close()
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
