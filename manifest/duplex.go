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

import "fmt"

// Duplex describes how a multi-page source file is meant to be printed.
type Duplex string

// These are the allowed values of the duplex column.
const (
	// DuplexNone is used for single page files.
	DuplexNone Duplex = ""

	// DuplexTwoSided files are printed on both sides of the paper.
	DuplexTwoSided Duplex = "duplex"

	// DuplexSimplex files must be printed one page per sheet, even when
	// the rest of the bundle is printed two-sided.
	DuplexSimplex Duplex = "simplex"
)

// ParseDuplex converts the text of a duplex cell.
func ParseDuplex(s string) (Duplex, error) {
	switch d := Duplex(s); d {
	case DuplexNone, DuplexTwoSided, DuplexSimplex:
		return d, nil
	default:
		return "", fmt.Errorf("invalid duplex value %q (expected \"\", %q or %q)",
			s, DuplexTwoSided, DuplexSimplex)
	}
}
