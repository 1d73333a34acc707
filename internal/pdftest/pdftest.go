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

// Package pdftest writes small PDF files for use in tests.
package pdftest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"seehuhn.de/go/geom/rect"
)

// A4 is the exact A4 paper size in PDF points.
var A4 = rect.Rect{URx: 595.276, URy: 841.890}

// Letter is the US letter paper size in PDF points.
var Letter = rect.Rect{URx: 612, URy: 792}

// Write creates a PDF file with one page per entry of pages.  Each page
// shows its page number, so that merged output can be inspected by hand.
func Write(path string, pages ...rect.Rect) error {
	if len(pages) == 0 {
		return fmt.Errorf("%s: no pages", path)
	}
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pages[0].Dx(), Ht: pages[0].Dy()},
	})
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 24)
	for i, box := range pages {
		doc.AddPageFormat("P", gofpdf.SizeType{Wd: box.Dx(), Ht: box.Dy()})
		doc.Text(72, 144, fmt.Sprintf("page %d", i+1))
	}
	return doc.OutputFileAndClose(path)
}

// A4Pages returns n copies of the A4 page size.
func A4Pages(n int) []rect.Rect {
	pages := make([]rect.Rect, n)
	for i := range pages {
		pages[i] = A4
	}
	return pages
}

// File writes a PDF with the given pages into dir/name and fails the
// test on error.  It returns the full path.
func File(t testing.TB, dir, name string, pages ...rect.Rect) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		t.Fatal(err)
	}
	err = Write(path, pages...)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

// UseTempConfig points pdfcpu's configuration directory, including its
// user font store, at a fresh temporary directory.  It is meant to be
// called from TestMain, before any pdfcpu configuration is created, and
// returns a cleanup function.
func UseTempConfig() (cleanup func(), err error) {
	dir, err := os.MkdirTemp("", "teamstamp-test-")
	if err != nil {
		return nil, err
	}
	err = os.Setenv("XDG_CONFIG_HOME", dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return func() { os.RemoveAll(dir) }, nil
}
