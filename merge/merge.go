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

// Package merge combines the per-team files of each place into a single
// PDF file, ready for printing.
package merge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/teamstamp/internal/pdfio"
)

// Merger merges the sub-directories of a target directory.
type Merger struct {
	// TargetDir contains one sub-directory per place.
	TargetDir string

	// Suffix, if non-empty, is appended to the bundle names after an
	// underscore.
	Suffix string

	// Jobs is the maximal number of places merged at the same time.
	// Values below 1 mean the number of CPUs.
	Jobs int

	Log *zap.Logger

	// Progress, if set, is called after each place directory, including
	// skipped empty ones.  Calls are serialised.
	Progress func(done, total int)
}

// Bundle describes one merged file.
type Bundle struct {
	Place string
	Path  string
	Files int
	Pages int
}

// ErrNoPlaces is returned if the target directory has no sub-directories.
var ErrNoPlaces = errors.New("no place directories found")

// Run merges every place directory into <TargetDir>/<place>[_<Suffix>].pdf.
// The bundles are returned in the order of the place names.  Places
// without PDF files are skipped.
func (m *Merger) Run(ctx context.Context) ([]*Bundle, error) {
	log := m.Log
	if log == nil {
		log = zap.NewNop()
	}

	places, err := m.places()
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("%s: %w", m.TargetDir, ErrNoPlaces)
	}

	jobs := m.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	var mu sync.Mutex
	done := 0
	step := func() {
		if m.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done++
		m.Progress(done, len(places))
	}

	bundles := make([]*Bundle, len(places))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, place := range places {
		g.Go(func() error {
			err := ctx.Err()
			if err != nil {
				return err
			}
			b, err := m.merge(log, place)
			if err != nil {
				return err
			}
			bundles[i] = b
			step()
			return nil
		})
	}
	err = g.Wait()
	if err != nil {
		return nil, err
	}

	res := bundles[:0]
	for _, b := range bundles {
		if b != nil {
			res = append(res, b)
		}
	}
	return res, nil
}

// places lists the sub-directories of the target directory.
func (m *Merger) places() ([]string, error) {
	entries, err := os.ReadDir(m.TargetDir)
	if err != nil {
		return nil, err
	}
	var places []string
	for _, e := range entries {
		if e.IsDir() {
			places = append(places, e.Name())
		}
	}
	return places, nil
}

// BundlePath returns the file name the bundle of the given place is
// written to.
func (m *Merger) BundlePath(place string) string {
	name := place
	if m.Suffix != "" {
		name += "_" + m.Suffix
	}
	return filepath.Join(m.TargetDir, name+".pdf")
}

func (m *Merger) merge(log *zap.Logger, place string) (*Bundle, error) {
	dir := filepath.Join(m.TargetDir, place)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var in []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".pdf") {
			in = append(in, filepath.Join(dir, e.Name()))
		}
	}
	if len(in) == 0 {
		log.Warn("no PDF files, skipping place", zap.String("place", place))
		return nil, nil
	}
	sort.Strings(in)

	out := m.BundlePath(place)
	if _, err := os.Stat(out); err == nil {
		log.Warn("file already exists, overwriting", zap.String("file", out))
	}

	// pdfcpu configurations carry state, so each merge gets its own.
	err = pdfio.Merge(in, out, pdfio.NewConfig())
	if err != nil {
		return nil, err
	}
	pages, err := pdfio.PageCount(out)
	if err != nil {
		return nil, err
	}
	log.Debug("merged place",
		zap.String("place", place),
		zap.Int("files", len(in)),
		zap.Int("pages", pages))

	return &Bundle{
		Place: place,
		Path:  out,
		Files: len(in),
		Pages: pages,
	}, nil
}
