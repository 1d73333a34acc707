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

// Package roster reads the team table exported from the registration
// form.
package roster

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/teamstamp/internal/tsv"
)

// Headers names the roster columns teamstamp uses.  Other columns are
// ignored.
type Headers struct {
	Category string `yaml:"category"`
	Team     string `yaml:"team"`
	Place    string `yaml:"place"`
}

// DefaultHeaders are the column names of the registration form.  The
// team column holds the shortened team name, followed by place and room.
var DefaultHeaders = Headers{
	Category: "Kategória",
	Team:     "Rövidített csapatnév (helyszín, terem)",
	Place:    "Helyszín",
}

// Team is one row of the roster.
type Team struct {
	// Index is the 0-based data row number.  It determines the file
	// names of the team's output files.
	Index int

	// Line is the 1-based line in the input file where the row starts.
	// It equals Index+2 unless blank lines were skipped or a quoted cell
	// spans several lines, in which case it still points at the row a
	// person editing the file has to look at.
	Line int

	Name     string
	Category string
	Place    string
}

// ID returns the zero-padded team number used in output file names.
func (t Team) ID() string {
	return fmt.Sprintf("%03d", t.Index)
}

// ErrNotTSV is returned by [ReadFile] for file names without the .tsv
// extension.
var ErrNotTSV = errors.New("not a TSV file")

// Read parses a roster table.
func Read(r io.Reader, h Headers) ([]Team, error) {
	table, err := tsv.Read(r)
	if err != nil {
		return nil, err
	}
	col, err := table.Require(h.Team, h.Category, h.Place)
	if err != nil {
		return nil, err
	}

	teams := make([]Team, 0, len(table.Rows))
	for i, row := range table.Rows {
		teams = append(teams, Team{
			Index:    i,
			Line:     row.Line,
			Name:     clean(row.Fields[col[0]]),
			Category: clean(row.Fields[col[1]]),
			Place:    clean(row.Fields[col[2]]),
		})
	}
	return teams, nil
}

// ReadFile reads the roster from the named file, which must have a .tsv
// extension.
func ReadFile(path string, h Headers) ([]Team, error) {
	if !strings.EqualFold(filepath.Ext(path), ".tsv") {
		return nil, fmt.Errorf("%s: %w", path, ErrNotTSV)
	}
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	teams, err := Read(fd, h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return teams, nil
}

// clean trims the cell and converts it to NFC, so that names typed on
// different systems compare equal.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Places returns the distinct places of all teams, in Hungarian
// alphabetical order.
func Places(teams []Team) []string {
	seen := make(map[string]bool)
	var res []string
	for _, t := range teams {
		if !seen[t.Place] {
			seen[t.Place] = true
			res = append(res, t.Place)
		}
	}
	collate.New(language.Hungarian).SortStrings(res)
	return res
}

// GroupByPlace returns the teams of each place, in roster order.
func GroupByPlace(teams []Team) map[string][]Team {
	res := make(map[string][]Team)
	for _, t := range teams {
		res[t.Place] = append(res[t.Place], t)
	}
	return res
}
