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

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/teamstamp/fonts"
	"seehuhn.de/go/teamstamp/internal/pdfio"
	"seehuhn.de/go/teamstamp/internal/pdftest"
	"seehuhn.de/go/teamstamp/internal/tsv"
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

func TestWrap(t *testing.T) {
	F, err := fonts.Default()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{""}, Wrap("  ", F, 10, 100)); diff != "" {
		t.Errorf("empty text (-want +got):\n%s", diff)
	}

	text := "Az Őrült Matematikusok Baráti Köre"
	lines := Wrap(text, F, 10, 80)
	if len(lines) < 2 {
		t.Fatalf("text was not wrapped: %q", lines)
	}
	for _, line := range lines {
		if w := F.Width(line, 10); w > 80 && strings.Contains(line, " ") {
			t.Errorf("line %q is %g wide", line, w)
		}
	}
	if got := strings.Join(lines, " "); got != text {
		t.Errorf("words changed: %q", got)
	}

	long := "Legeslegmegszentségteleníttethetetlenebbjeitekként"
	if diff := cmp.Diff([]string{long}, Wrap(long, F, 10, 20)); diff != "" {
		t.Errorf("long word (-want +got):\n%s", diff)
	}
}

func makeTable(rows int) *tsv.Table {
	var b strings.Builder
	b.WriteString("Csapatnév\tKategória\tHelyszín\n")
	for i := 0; i < rows; i++ {
		b.WriteString("Kockafejek\tC kategória\tSzeged\n")
	}
	table, err := tsv.Read(strings.NewReader(b.String()))
	if err != nil {
		panic(err)
	}
	return table
}

func TestLayout(t *testing.T) {
	header, body, pages, err := Layout(makeTable(100), nil)
	if err != nil {
		t.Fatal(err)
	}
	// one line per cell: 12+2+12 for the header, 10+2+12 for the body
	if header.Height != 26 {
		t.Errorf("header height %g, want 26", header.Height)
	}
	if len(body) != 100 || body[0].Height != 24 {
		t.Fatalf("unexpected body rows %d, height %g", len(body), body[0].Height)
	}

	// (792 - 72 - 26) / 24 = 28.9 rows per page
	var sizes []int
	seen := 0
	for _, p := range pages {
		sizes = append(sizes, len(p))
		for _, i := range p {
			if i != seen {
				t.Fatalf("row %d out of order", i)
			}
			seen++
		}
	}
	if diff := cmp.Diff([]int{28, 28, 28, 16}, sizes); diff != "" {
		t.Errorf("page sizes (-want +got):\n%s", diff)
	}
}

func TestLayoutEmpty(t *testing.T) {
	_, body, pages, err := Layout(makeTable(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(body) != 0 || len(pages) != 1 || len(pages[0]) != 0 {
		t.Errorf("unexpected layout %v", pages)
	}

	_, _, _, err = Layout(&tsv.Table{}, nil)
	if err != ErrEmpty {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestRender(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Render(buf, makeTable(40), nil)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "report.pdf")
	err = os.WriteFile(path, buf.Bytes(), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	boxes, err := pdfio.PageBoxes(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(boxes) != 2 {
		t.Fatalf("got %d pages, want 2", len(boxes))
	}
	if boxes[0].Dx() != 612 || boxes[0].Dy() != 792 {
		t.Errorf("page size %gx%g, want letter", boxes[0].Dx(), boxes[0].Dy())
	}
}
