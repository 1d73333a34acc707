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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) footnoteCmd() *cobra.Command {
	var text, textFile string
	var twoSided bool
	cmd := &cobra.Command{
		Use:   "footnote IN.pdf OUT.pdf",
		Short: "Print centred lines of text at the bottom of every page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if textFile != "" {
				data, err := os.ReadFile(textFile)
				if err != nil {
					return err
				}
				text = strings.TrimRight(string(data), "\n")
			}
			if strings.TrimSpace(text) == "" {
				return errNoText
			}

			s, err := a.stamper()
			if err != nil {
				return err
			}
			tooLong, err := s.Footnote(args[0], args[1], text, &a.cfg.Footnote, twoSided)
			if err != nil {
				return err
			}
			for _, line := range tooLong {
				a.log.Warn("line is too long, consider splitting it", zap.String("line", line))
			}
			fmt.Fprintf(a.stdout, "footnote added: %s\n", args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "footnote text, lines separated by \\n")
	cmd.Flags().StringVar(&textFile, "text-file", "", "read the footnote text from `file`")
	cmd.Flags().BoolVar(&twoSided, "twosided", false, "pad to an even page count")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")
	cmd.MarkFlagsOneRequired("text", "text-file")
	return cmd
}

var errNoText = errors.New("no footnote text given")
