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
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"seehuhn.de/go/teamstamp/merge"
)

func (a *app) mergeCmd() *cobra.Command {
	var afterText string
	var jobs int
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge the files of each place into one print file",
		Long: `Merge concatenates all PDF files in <target>/<place>/ into
<target>/<place>.pdf, or <target>/<place>_<aftertext>.pdf if --aftertext
is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &merge.Merger{
				TargetDir: a.cfg.TargetDir,
				Suffix:    afterText,
				Jobs:      jobs,
				Log:       a.log,
			}
			bar := a.progress("places")
			m.Progress = bar.Update
			bundles, err := m.Run(cmd.Context())
			bar.Done()
			if err != nil {
				return err
			}
			for _, b := range bundles {
				fmt.Fprintf(a.stdout, "%s: %d files, %d pages\n",
					filepath.Base(b.Path), b.Files, b.Pages)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&afterText, "aftertext", "", "suffix for the merged file names")
	cmd.Flags().IntVar(&jobs, "jobs", 0, "number of places merged in parallel (default: number of CPUs)")
	return cmd
}
