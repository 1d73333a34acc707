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

// Package manifest reads the file manifest, which maps each competition
// category to the source PDF files every team of that category receives.
//
// The manifest is a tab-separated table with the columns
//
//	category  filename  copies  duplex
//
// One row describes one source file; a category may have several rows.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"seehuhn.de/go/teamstamp/internal/tsv"
)

// Column names of the manifest table.
const (
	ColCategory = "category"
	ColFilename = "filename"
	ColCopies   = "copies"
	ColDuplex   = "duplex"
)

// File is one source file of a category.
type File struct {
	Category string
	Filename string
	Copies   int
	Duplex   Duplex
}

// Skipped describes a manifest row which was ignored because its copy
// count was not positive.
type Skipped struct {
	Line   int
	File   File
	Reason string
}

// Manifest lists the source files of all categories.
type Manifest struct {
	categories []string
	files      map[string][]File
	rows       []File
}

// Read parses a manifest table.
func Read(r io.Reader) (*Manifest, []Skipped, error) {
	table, err := tsv.Read(r)
	if err != nil {
		return nil, nil, err
	}
	col, err := table.Require(ColCategory, ColFilename, ColCopies, ColDuplex)
	if err != nil {
		return nil, nil, err
	}

	m := &Manifest{files: make(map[string][]File)}
	var skipped []Skipped
	for _, row := range table.Rows {
		f := File{
			Category: strings.TrimSpace(row.Fields[col[0]]),
			Filename: strings.TrimSpace(row.Fields[col[1]]),
		}
		copiesText := strings.TrimSpace(row.Fields[col[2]])
		f.Copies, err = strconv.Atoi(copiesText)
		if err != nil {
			return nil, nil, &tsv.LineError{
				Line: row.Line,
				Err:  fmt.Errorf("copies: %q is not an integer", copiesText),
			}
		}
		f.Duplex, err = ParseDuplex(strings.ToLower(strings.TrimSpace(row.Fields[col[3]])))
		if err != nil {
			return nil, nil, &tsv.LineError{Line: row.Line, Err: err}
		}
		if f.Filename == "" {
			return nil, nil, &tsv.LineError{Line: row.Line, Err: errNoFilename}
		}

		if f.Copies <= 0 {
			skipped = append(skipped, Skipped{
				Line: row.Line,
				File: f,
				Reason: fmt.Sprintf("copies is expected positive integer, but got %d",
					f.Copies),
			})
			continue
		}
		m.add(f)
	}
	return m, skipped, nil
}

// ReadFile reads the manifest from the named file.
func ReadFile(path string) (*Manifest, []Skipped, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer fd.Close()

	m, skipped, err := Read(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, skipped, nil
}

func (m *Manifest) add(f File) {
	if _, ok := m.files[f.Category]; !ok {
		m.categories = append(m.categories, f.Category)
	}
	m.files[f.Category] = append(m.files[f.Category], f)
	m.rows = append(m.rows, f)
}

// Categories returns the categories in the order they first appear in the
// manifest.
func (m *Manifest) Categories() []string {
	return append([]string(nil), m.categories...)
}

// Files returns the source files of a category, in manifest order.
// The result is empty for unknown categories.
func (m *Manifest) Files(category string) []File {
	return m.files[category]
}

// Has reports whether the category has at least one source file.
func (m *Manifest) Has(category string) bool {
	return len(m.files[category]) > 0
}

// Filenames returns every source file name once, in the order the rows
// first mention them.
func (m *Manifest) Filenames() []string {
	seen := make(map[string]bool)
	var res []string
	for _, f := range m.rows {
		if !seen[f.Filename] {
			seen[f.Filename] = true
			res = append(res, f.Filename)
		}
	}
	return res
}

// All returns all files of all categories, in row order.
func (m *Manifest) All() []File {
	return append([]File(nil), m.rows...)
}

var errNoFilename = errors.New("empty filename")
