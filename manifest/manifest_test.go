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

package manifest

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/teamstamp/internal/tsv"
)

const sample = "category\tfilename\tcopies\tduplex\n" +
	"C kategória\tC-feladatok.pdf\t1\tduplex\n" +
	"C kategória\tvalaszlap.pdf\t3\t\n" +
	"D kategória\tD-feladatok.pdf\t1\tSimplex\n" +
	"D kategória\ttartalek.pdf\t0\t\n" +
	"E kategória\tvalaszlap.pdf\t2\t\n"

func TestRead(t *testing.T) {
	m, skipped, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"C kategória", "D kategória", "E kategória"}, m.Categories()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	wantC := []File{
		{Category: "C kategória", Filename: "C-feladatok.pdf", Copies: 1, Duplex: DuplexTwoSided},
		{Category: "C kategória", Filename: "valaszlap.pdf", Copies: 3, Duplex: DuplexNone},
	}
	if diff := cmp.Diff(wantC, m.Files("C kategória")); diff != "" {
		t.Errorf("C files mismatch (-want +got):\n%s", diff)
	}
	if got := m.Files("D kategória"); len(got) != 1 || got[0].Duplex != DuplexSimplex {
		t.Errorf("unexpected D files %v", got)
	}
	if m.Has("F kategória") {
		t.Error("unknown category reported as present")
	}

	if diff := cmp.Diff([]string{"C-feladatok.pdf", "valaszlap.pdf", "D-feladatok.pdf"}, m.Filenames()); diff != "" {
		t.Errorf("filenames mismatch (-want +got):\n%s", diff)
	}

	if len(skipped) != 1 {
		t.Fatalf("got %d skipped rows, want 1", len(skipped))
	}
	if skipped[0].Line != 5 || skipped[0].File.Filename != "tartalek.pdf" {
		t.Errorf("unexpected skipped row %+v", skipped[0])
	}
}

func TestFilenamesRowOrder(t *testing.T) {
	in := "category\tfilename\tcopies\tduplex\n" +
		"A\tx.pdf\t1\t\n" +
		"B\ty.pdf\t1\t\n" +
		"A\tz.pdf\t1\t\n" +
		"B\tx.pdf\t1\t\n"
	m, _, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x.pdf", "y.pdf", "z.pdf"}, m.Filenames()); diff != "" {
		t.Errorf("filenames mismatch (-want +got):\n%s", diff)
	}

	var all []string
	for _, f := range m.All() {
		all = append(all, f.Category+":"+f.Filename)
	}
	if diff := cmp.Diff([]string{"A:x.pdf", "B:y.pdf", "A:z.pdf", "B:x.pdf"}, all); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		line int
	}{
		{"copies", "category\tfilename\tcopies\tduplex\nA\ta.pdf\tkettő\t\n", 2},
		{"duplex", "category\tfilename\tcopies\tduplex\nA\ta.pdf\t1\tboth\n", 2},
		{"filename", "category\tfilename\tcopies\tduplex\nA\ta.pdf\t1\t\nA\t\t1\t\n", 3},
		{"column", "category\tfilename\tcopies\nA\ta.pdf\t1\n", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := Read(strings.NewReader(c.in))
			if err == nil {
				t.Fatal("expected an error")
			}
			var lineErr *tsv.LineError
			if c.line > 0 {
				if !errors.As(err, &lineErr) {
					t.Fatalf("expected a line error, got %v", err)
				}
				if lineErr.Line != c.line {
					t.Errorf("error on line %d, want %d", lineErr.Line, c.line)
				}
			}
		})
	}
}

func TestParseDuplex(t *testing.T) {
	for _, s := range []string{"", "duplex", "simplex"} {
		d, err := ParseDuplex(s)
		if err != nil {
			t.Errorf("ParseDuplex(%q): %v", s, err)
		}
		if string(d) != s {
			t.Errorf("ParseDuplex(%q) = %q", s, d)
		}
	}
	_, err := ParseDuplex("Duplex")
	if err == nil {
		t.Error("ParseDuplex is expected to be case sensitive")
	}
}
