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

package main

import (
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/teamstamp/internal/tsv"
	"seehuhn.de/go/teamstamp/report"
)

func (a *app) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report IN.tsv OUT.pdf",
		Short: "Print a TSV table as a PDF table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeReport(args[0], args[1])
		},
	}
}

func writeReport(in, out string) (err error) {
	r, err := os.Open(in)
	if err != nil {
		return err
	}
	table, err := tsv.Read(r)
	r.Close()
	if err != nil {
		return err
	}

	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		cerr := w.Close()
		if err == nil {
			err = cerr
		}
	}()
	return report.Render(w, table, nil)
}
