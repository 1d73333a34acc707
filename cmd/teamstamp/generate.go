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
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seehuhn.de/go/teamstamp/fonts"
	"seehuhn.de/go/teamstamp/generate"
	"seehuhn.de/go/teamstamp/internal/progress"
	"seehuhn.de/go/teamstamp/manifest"
	"seehuhn.de/go/teamstamp/roster"
	"seehuhn.de/go/teamstamp/stamp"
)

func (a *app) generateCmd() *cobra.Command {
	var twoSided bool
	var fromLine int
	cmd := &cobra.Command{
		Use:   "generate FILES.tsv TEAMS.tsv",
		Short: "Write the stamped files of every team",
		Long: `Generate reads the file manifest and the team roster and writes
<target>/<place>/<id>-<nn>.pdf for every source file of every team.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.Context(), args[0], args[1], twoSided, fromLine)
		},
	}
	cmd.Flags().BoolVar(&twoSided, "twosided", false, "pad files for double sided printing")
	cmd.Flags().IntVar(&fromLine, "from-line", 1, "start at this data row of the roster")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	var twoSided bool
	cmd := &cobra.Command{
		Use:   "check FILES.tsv",
		Short: "Validate the file manifest and the source files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManifest(args[0], twoSided)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%d categories, %d source files OK\n",
				len(m.Categories()), len(m.Filenames()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&twoSided, "twosided", false, "check the duplex column")
	return cmd
}

func (a *app) generate(ctx context.Context, filesPath, teamsPath string, twoSided bool, fromLine int) error {
	m, err := a.loadManifest(filesPath, twoSided)
	if err != nil {
		return err
	}
	teams, err := roster.ReadFile(teamsPath, a.cfg.Headers)
	if err != nil {
		return err
	}
	s, err := a.stamper()
	if err != nil {
		return err
	}

	g := &generate.Generator{
		Manifest:     m,
		SourceDir:    a.cfg.SourceDir,
		TargetDir:    a.cfg.TargetDir,
		Stamper:      s,
		TwoSided:     twoSided,
		Force:        a.force,
		FromLine:     fromLine,
		TextTemplate: a.cfg.Text,
		Log:          a.log,
	}
	places := roster.Places(teams)
	err = g.PrepareTarget(places)
	if err != nil {
		return err
	}
	byPlace := roster.GroupByPlace(teams)
	for _, place := range places {
		a.log.Debug("place", zap.String("place", place), zap.Int("teams", len(byPlace[place])))
	}

	bar := a.progress("teams")
	g.Progress = bar.Update
	sum, err := g.Run(ctx, teams)
	bar.Done()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%d teams: %d files and %d copies written to %s, %d skipped\n",
		sum.Teams, sum.Files, sum.Copies, a.cfg.TargetDir, sum.Skipped)
	a.log.Info("single files are created in the target directory, merge them with \"teamstamp merge\"")
	return nil
}

// loadManifest reads and validates the file manifest.  Problems which can
// be forced through are logged as warnings when --force is given.
func (a *app) loadManifest(path string, twoSided bool) (*manifest.Manifest, error) {
	if !strings.HasSuffix(path, ".tsv") {
		a.log.Warn("the manifest file has no .tsv suffix", zap.String("file", path))
	}
	m, skipped, err := manifest.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, s := range skipped {
		a.log.Warn("skipping "+s.File.Filename+" because "+s.Reason, zap.Int("line", s.Line))
	}

	problems := manifest.Validate(m, a.cfg.SourceDir, &manifest.Options{TwoSided: twoSided})
	var fatal []*manifest.Problem
	for _, p := range problems {
		if p.Fatal() || !a.force {
			a.log.Error(p.Error(), zap.Stringer("kind", p.Kind))
			fatal = append(fatal, p)
		} else {
			a.log.Warn(p.Error(), zap.Stringer("kind", p.Kind))
		}
	}
	if len(fatal) > 0 {
		return nil, fmt.Errorf("%s: %d problems found\n%s", path, len(fatal), manifest.Summary(fatal))
	}
	return m, nil
}

func (a *app) stamper() (*stamp.Stamper, error) {
	var F *fonts.Font
	var err error
	if a.cfg.Font != "" {
		F, err = fonts.Load(a.cfg.Font)
	} else {
		F, err = fonts.Default()
	}
	if err != nil {
		return nil, err
	}
	return stamp.New(F, &a.cfg.Watermark)
}

// progress returns a progress bar on stderr, which is silent unless stderr
// is a terminal.
func (a *app) progress(label string) *progress.Bar {
	if f, ok := a.stderr.(*os.File); ok {
		return progress.New(f, label)
	}
	return progress.NewWriter(a.stderr, label, false)
}
