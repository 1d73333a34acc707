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

// Package generate writes the personalised PDF files of every team.
//
// For each team of the roster, every source file of the team's category
// is stamped with the team name and written to
//
//	<target>/<place>/<id>-<nn>.pdf
//
// where id is the zero-padded row index of the team and nn counts the
// files of the team, starting at 00.  Additional copies are written to
// <id>-<nn>-<i>.pdf.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seehuhn.de/go/teamstamp/internal/pdfio"
	"seehuhn.de/go/teamstamp/manifest"
	"seehuhn.de/go/teamstamp/padding"
	"seehuhn.de/go/teamstamp/roster"
	"seehuhn.de/go/teamstamp/stamp"
)

// Generator holds the settings of one generation run.
type Generator struct {
	Manifest  *manifest.Manifest
	SourceDir string
	TargetDir string
	Stamper   *stamp.Stamper

	// TwoSided enables padding for double sided printing.
	TwoSided bool

	// Force turns recoverable errors (unknown categories, missing source
	// files, bad place names) into log messages.  Without Force, the first
	// such error ends the run.
	Force bool

	// FromLine is the 1-based data row of the roster to start at.
	// Values below 1 mean the first row.
	FromLine int

	// TextTemplate, if set, is a text/template over a [roster.Team]
	// which gives the watermark text.  The default is the team name.
	TextTemplate string

	// Log receives progress and error messages.  If Log is nil, nothing
	// is logged.
	Log *zap.Logger

	// Progress, if set, is called after each team.
	Progress func(done, total int)
}

// Summary counts what a run has written.
type Summary struct {
	RunID string

	// Teams is the number of teams processed.
	Teams int

	// Files is the number of stamped files, Copies the number of extra
	// copies.
	Files  int
	Copies int

	// Skipped is the number of teams or source files which were skipped
	// because of a recoverable error.
	Skipped int
}

// TeamError is a problem with one row of the roster.
type TeamError struct {
	Team roster.Team
	Err  error
}

func (err *TeamError) Error() string {
	return fmt.Sprintf("team %s (line %d): %v", err.Team.ID(), err.Team.Line, err.Err)
}

func (err *TeamError) Unwrap() error {
	return err.Err
}

// ErrUnknownCategory is returned for teams whose category has no files in
// the manifest.
var ErrUnknownCategory = errors.New("unknown category")

// Run writes the files of all teams, starting at g.FromLine.
// Cancelling ctx stops the run between two teams.
func (g *Generator) Run(ctx context.Context, teams []roster.Team) (*Summary, error) {
	if g.Manifest == nil || g.Stamper == nil {
		return nil, errors.New("generate: manifest and stamper are required")
	}
	tmpl, err := g.template()
	if err != nil {
		return nil, err
	}

	sum := &Summary{RunID: uuid.NewString()}
	log := g.logger().With(zap.String("run", sum.RunID))

	from := max(g.FromLine, 1)
	var todo []roster.Team
	for _, t := range teams {
		if t.Index >= from-1 {
			todo = append(todo, t)
		}
	}

	for i, t := range todo {
		err := ctx.Err()
		if err != nil {
			return sum, err
		}
		err = g.team(log, tmpl, t, sum)
		if err != nil {
			return sum, err
		}
		if g.Progress != nil {
			g.Progress(i+1, len(todo))
		}
	}
	log.Info("single files written",
		zap.Int("teams", sum.Teams),
		zap.Int("files", sum.Files),
		zap.Int("copies", sum.Copies),
		zap.Int("skipped", sum.Skipped))
	return sum, nil
}

func (g *Generator) team(log *zap.Logger, tmpl *template.Template, t roster.Team, sum *Summary) error {
	log = log.With(zap.String("team", t.ID()), zap.Int("line", t.Line))
	log.Debug("adding team",
		zap.String("name", t.Name),
		zap.String("category", t.Category),
		zap.String("place", t.Place))

	files := g.Manifest.Files(t.Category)
	if len(files) == 0 {
		sum.Skipped++
		return g.fail(log, &TeamError{Team: t,
			Err: fmt.Errorf("%w %q (known: %q), skipping line %d",
				ErrUnknownCategory, t.Category, g.Manifest.Categories(), t.Line)})
	}
	err := roster.ValidatePlace(t.Place)
	if err != nil {
		sum.Skipped++
		return g.fail(log, &TeamError{Team: t, Err: err})
	}

	text, err := execute(tmpl, t)
	if err != nil {
		return &TeamError{Team: t, Err: err}
	}
	dir := filepath.Join(g.TargetDir, t.Place)
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return err
	}
	props := map[string]string{
		"Team":     t.Name,
		"Category": t.Category,
		"Place":    t.Place,
		"TeamID":   t.ID(),
		"RunID":    sum.RunID,
	}

	nn := 0
	for _, f := range files {
		src := filepath.Join(g.SourceDir, f.Filename)
		_, err := os.Stat(src)
		if err != nil {
			sum.Skipped++
			err = g.fail(log, &TeamError{Team: t,
				Err: fmt.Errorf("%s not in %s, skipping this file: %w", f.Filename, g.SourceDir, err)})
			if err != nil {
				return err
			}
			continue
		}

		pages, err := pdfio.PageCount(src)
		if err != nil {
			return &TeamError{Team: t, Err: err}
		}
		plan := padding.Plan(pages, g.TwoSided, f.Duplex)

		base := fmt.Sprintf("%s-%02d", t.ID(), nn)
		dst := filepath.Join(dir, base+".pdf")
		log.Debug("stamping",
			zap.String("src", src),
			zap.String("dst", dst),
			zap.Int("pages", padding.Total(pages, plan)),
			zap.Int("copies", f.Copies))

		res, err := g.Stamper.Stamp(&stamp.Request{
			Source:     src,
			Target:     dst,
			Text:       text,
			Padding:    plan,
			Properties: props,
		})
		if err != nil {
			return &TeamError{Team: t, Err: fmt.Errorf("writing over %s: %w", src, err)}
		}
		if res.Overflow {
			log.Warn("team name does not fit on the page",
				zap.String("text", text), zap.Int("size", res.FontSize))
		}
		if len(res.Missing) > 0 {
			log.Warn("font has no glyphs for some characters",
				zap.String("text", text), zap.String("missing", string(res.Missing)))
		}
		sum.Files++

		for i := 1; i < f.Copies; i++ {
			err = pdfio.CopyFile(dst, filepath.Join(dir, fmt.Sprintf("%s-%d.pdf", base, i)))
			if err != nil {
				return err
			}
			sum.Copies++
		}
		nn++
	}
	sum.Teams++
	return nil
}

// fail reports a recoverable error.  Unless g.Force is set, the error is
// returned to end the run.
func (g *Generator) fail(log *zap.Logger, err error) error {
	if g.Force {
		log.Error("continuing after error", zap.Error(err))
		return nil
	}
	return err
}

func (g *Generator) logger() *zap.Logger {
	if g.Log == nil {
		return zap.NewNop()
	}
	return g.Log
}

func (g *Generator) template() (*template.Template, error) {
	if g.TextTemplate == "" {
		return nil, nil
	}
	tmpl, err := template.New("text").Option("missingkey=error").Parse(g.TextTemplate)
	if err != nil {
		return nil, fmt.Errorf("watermark template: %w", err)
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, t roster.Team) (string, error) {
	if tmpl == nil {
		return t.Name, nil
	}
	buf := &bytes.Buffer{}
	err := tmpl.Execute(buf, t)
	if err != nil {
		return "", fmt.Errorf("watermark template: %w", err)
	}
	return buf.String(), nil
}
