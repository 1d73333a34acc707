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

package pdfio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/teamstamp/internal/pdftest"
)

func TestMain(m *testing.M) {
	cleanup, err := pdftest.UseTempConfig()
	if err != nil {
		panic(err)
	}
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func TestIsA4(t *testing.T) {
	cases := []struct {
		box  rect.Rect
		want bool
	}{
		{pdftest.A4, true},
		{rect.Rect{URx: 595, URy: 842}, true},
		{rect.Rect{URx: 596, URy: 841}, true},
		{rect.Rect{URx: 596.5, URy: 842}, false},
		{rect.Rect{URx: 842, URy: 595}, false},
		{pdftest.Letter, false},
	}
	for _, c := range cases {
		if got := IsA4(c.box); got != c.want {
			t.Errorf("IsA4(%v) = %t, want %t", c.box, got, c.want)
		}
	}
}

func TestNonA4(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.File(t, dir, "mixed.pdf",
		pdftest.A4, pdftest.Letter, pdftest.A4, rect.Rect{URx: 842, URy: 595})

	boxes, err := PageBoxes(path)
	if err != nil {
		t.Fatal(err)
	}
	// gofpdf writes no /MediaBox for pages of the default size, so page
	// 3 inherits its box from the page tree.
	if !IsA4(boxes[2]) {
		t.Errorf("page 3 is %gx%g, want A4", boxes[2].Dx(), boxes[2].Dy())
	}
	got := NonA4(boxes)
	if diff := cmp.Diff([]int{2, 4}, got); diff != "" {
		t.Errorf("non-A4 pages mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertBlankPages(t *testing.T) {
	dir := t.TempDir()
	conf := NewConfig()

	path := pdftest.File(t, dir, "three.pdf", pdftest.A4Pages(3)...)
	err := InsertBlankPages(path, []int{1, 2, 3}, conf)
	if err != nil {
		t.Fatal(err)
	}
	n, err := PageCount(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Errorf("got %d pages, want 6", n)
	}

	err = InsertBlankPages(path, nil, conf)
	if err != nil {
		t.Fatal(err)
	}
	n, err = PageCount(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Errorf("got %d pages after empty insert, want 6", n)
	}
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	a := pdftest.File(t, dir, "a.pdf", pdftest.A4Pages(2)...)
	b := pdftest.File(t, dir, "b.pdf", pdftest.A4Pages(3)...)
	out := filepath.Join(dir, "out.pdf")

	err := Merge([]string{a, b}, out, NewConfig())
	if err != nil {
		t.Fatal(err)
	}
	n, err := PageCount(out)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Errorf("got %d pages, want 5", n)
	}

	err = Merge(nil, out, NewConfig())
	if err == nil {
		t.Error("merging no files succeeded")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	err := os.WriteFile(src, []byte("hello"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(dst, []byte("old contents"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	err = CopyFile(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("got %q, want %q", data, "hello")
	}

	err = CopyFile(filepath.Join(dir, "missing"), dst)
	if err == nil {
		t.Error("copying a missing file succeeded")
	}
}
