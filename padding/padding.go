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

// Package padding decides where blank pages go, so that a bundle of
// stamped files can be printed double-sided without two files sharing a
// sheet of paper.
package padding

import "seehuhn.de/go/teamstamp/manifest"

// Plan returns the 1-based page numbers after which a blank page is
// inserted, for a file with the given number of pages.
//
// When printing one-sided nothing is inserted.  Simplex files get a blank
// back side for every page.  All other files get one blank page at the end
// if their page count is odd.
func Plan(pages int, twoSided bool, mode manifest.Duplex) []int {
	if !twoSided || pages <= 0 {
		return nil
	}
	if mode == manifest.DuplexSimplex {
		res := make([]int, pages)
		for i := range res {
			res[i] = i + 1
		}
		return res
	}
	if pages%2 == 1 {
		return []int{pages}
	}
	return nil
}

// Total returns the page count after applying the plan.
func Total(pages int, plan []int) int {
	return pages + len(plan)
}
