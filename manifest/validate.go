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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/teamstamp/internal/pdfio"
)

// ProblemKind classifies the findings of [Validate].
type ProblemKind int

// These are the kinds of problems [Validate] can find.
const (
	// Missing means that a source file does not exist.
	Missing ProblemKind = iota + 1

	// Geometry means that a source file has pages which are not A4.
	Geometry

	// DuplexMismatch means that the duplex column does not fit the page
	// count of the file.
	DuplexMismatch

	// Unreadable means that a source file could not be parsed as PDF.
	Unreadable
)

func (k ProblemKind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Geometry:
		return "geometry"
	case DuplexMismatch:
		return "duplex"
	case Unreadable:
		return "unreadable"
	default:
		return fmt.Sprintf("ProblemKind(%d)", int(k))
	}
}

// Problem is a finding of [Validate].
type Problem struct {
	Kind     ProblemKind
	Filename string

	// Pages lists the 1-based page numbers concerned, for Geometry
	// problems.
	Pages []int

	Err error
}

func (p *Problem) Error() string {
	switch p.Kind {
	case Geometry:
		return fmt.Sprintf("%s: non-A4 pages %v", p.Filename, p.Pages)
	case Missing:
		return fmt.Sprintf("%s does not exist, cannot check page sizes", p.Filename)
	default:
		return fmt.Sprintf("%s: %v", p.Filename, p.Err)
	}
}

func (p *Problem) Unwrap() error {
	return p.Err
}

// Fatal reports whether the problem stops a run even when errors are
// forced through.  Duplex mismatches would silently break double-sided
// printing, so they cannot be overridden.
func (p *Problem) Fatal() bool {
	return p.Kind == DuplexMismatch
}

// Options control [Validate].
type Options struct {
	// TwoSided enables the duplex column checks.
	TwoSided bool
}

// Validate checks all source files of the manifest against the files
// found in srcDir.
//
// Every file must exist and consist of A4 pages.  For two-sided output
// the duplex column must fit the page count: single page files need an
// empty duplex column, longer files need "duplex" or "simplex".
func Validate(m *Manifest, srcDir string, opt *Options) []*Problem {
	if opt == nil {
		opt = &Options{}
	}

	var problems []*Problem
	pageCount := make(map[string]int)
	for _, name := range m.Filenames() {
		path := filepath.Join(srcDir, name)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			problems = append(problems, &Problem{Kind: Missing, Filename: name, Err: err})
			continue
		}

		boxes, err := pdfio.PageBoxes(path)
		if err != nil {
			problems = append(problems, &Problem{Kind: Unreadable, Filename: name, Err: err})
			continue
		}
		pageCount[name] = len(boxes)

		bad := pdfio.NonA4(boxes)
		if bad != nil {
			problems = append(problems, &Problem{Kind: Geometry, Filename: name, Pages: bad})
		}
	}

	if opt.TwoSided {
		for _, f := range m.All() {
			n, ok := pageCount[f.Filename]
			if !ok {
				continue
			}
			err := checkDuplex(n, f.Duplex)
			if err != nil {
				problems = append(problems, &Problem{
					Kind:     DuplexMismatch,
					Filename: f.Filename,
					Err:      err,
				})
			}
		}
	}

	return problems
}

func checkDuplex(pages int, d Duplex) error {
	switch {
	case pages == 0:
		return errors.New("page count is 0")
	case pages == 1 && d != DuplexNone:
		return fmt.Errorf("for a 1-page PDF the duplex column must be empty, but got %q", d)
	case pages > 1 && d != DuplexTwoSided && d != DuplexSimplex:
		return fmt.Errorf("for a multi-page PDF (%d pages) the duplex column must be %q or %q, but got %q",
			pages, DuplexTwoSided, DuplexSimplex, d)
	}
	return nil
}

// Summary formats a list of problems, one per line.
func Summary(problems []*Problem) string {
	lines := make([]string, len(problems))
	for i, p := range problems {
		lines[i] = p.Kind.String() + ": " + p.Error()
	}
	return strings.Join(lines, "\n")
}
