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

package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xdg-go/stringprep"
)

// ErrBadPlace is wrapped by the errors of [ValidatePlace].
var ErrBadPlace = errors.New("invalid place name")

// prohibited lists the stringprep tables of characters which must not
// appear in a place name.  Places become directory names, and these
// characters either break file systems or make names look alike.
var prohibited = []stringprep.Set{
	stringprep.TableC2_1, // ASCII control characters
	stringprep.TableC2_2, // non-ASCII control characters
	stringprep.TableC3,   // private use
	stringprep.TableC8,   // change display properties
	stringprep.TableC9,   // tagging characters
}

// ValidatePlace checks that a place name can be used as a directory
// name.
func ValidatePlace(place string) error {
	if place == "" {
		return fmt.Errorf("%w: empty", ErrBadPlace)
	}
	if strings.ContainsAny(place, `/\`) {
		return fmt.Errorf("%w: %q contains a slash, please remove it", ErrBadPlace, place)
	}
	if place == "." || place == ".." {
		return fmt.Errorf("%w: %q", ErrBadPlace, place)
	}
	for _, r := range place {
		for _, set := range prohibited {
			if set.Contains(r) {
				return fmt.Errorf("%w: %q contains the character %U", ErrBadPlace, place, r)
			}
		}
	}
	return nil
}
