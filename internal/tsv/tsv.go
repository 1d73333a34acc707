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

// Package tsv reads the tab-separated tables exported from the
// registration spreadsheet.
package tsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is a parsed TSV file with a header row.
type Table struct {
	Header []string
	Rows   []Row

	index map[string]int
}

// Row is one data row of a table.
type Row struct {
	// Line is the 1-based line number of the row in the input.
	Line   int
	Fields []string
}

// LineError reports a problem with a specific line of a table.
type LineError struct {
	Line int
	Err  error
}

func (err *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", err.Line, err.Err)
}

func (err *LineError) Unwrap() error {
	return err.Err
}

// ErrNoHeader is returned for input without a header row.
var ErrNoHeader = errors.New("missing header row")

// Read parses a tab-separated table.  The first row is the header.
// Rows with a different number of fields than the header are padded or
// truncated, since spreadsheet exports drop trailing empty cells.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	} else if err != nil {
		return nil, err
	}
	t := &Table{
		Header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
	}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		t.Header[i] = name
		if _, seen := t.index[name]; !seen {
			t.index[name] = i
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		fields := make([]string, len(t.Header))
		copy(fields, rec)
		t.Rows = append(t.Rows, Row{Line: line, Fields: fields})
	}
	return t, nil
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Require returns the column indices of all given names, or an error
// listing the missing ones.
func (t *Table) Require(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	var missing []string
	for i, name := range names {
		j, ok := t.index[name]
		if !ok {
			missing = append(missing, fmt.Sprintf("%q", name))
			continue
		}
		idx[i] = j
	}
	if missing != nil {
		return nil, fmt.Errorf("missing column(s) %s, got %q",
			strings.Join(missing, ", "), t.Header)
	}
	return idx, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
