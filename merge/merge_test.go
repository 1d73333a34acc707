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

package merge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"seehuhn.de/go/teamstamp/internal/pdftest"
)

func TestMain(m *testing.M) {
	cleanup, err := pdftest.UseTempConfig()
	if err != nil {
		panic(err)
	}
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func fill(t *testing.T, dir string) {
	t.Helper()
	pdftest.File(t, dir, "Eger/000-00.pdf", pdftest.A4Pages(4)...)
	pdftest.File(t, dir, "Eger/000-00-1.pdf", pdftest.A4Pages(4)...)
	pdftest.File(t, dir, "Eger/001-00.pdf", pdftest.A4Pages(2)...)
	pdftest.File(t, dir, "Szeged/002-00.pdf", pdftest.A4)
	err := os.WriteFile(filepath.Join(dir, "Szeged", "notes.txt"), []byte("x"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	err = os.Mkdir(filepath.Join(dir, "Ózd"), 0o755)
	if err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	fill(t, dir)

	core, logs := observer.New(zapcore.WarnLevel)
	m := &Merger{TargetDir: dir, Jobs: 2, Log: zap.New(core)}
	bundles, err := m.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []*Bundle{
		{Place: "Eger", Path: filepath.Join(dir, "Eger.pdf"), Files: 3, Pages: 10},
		{Place: "Szeged", Path: filepath.Join(dir, "Szeged.pdf"), Files: 1, Pages: 1},
	}
	if diff := cmp.Diff(want, bundles); diff != "" {
		t.Errorf("bundles mismatch (-want +got):\n%s", diff)
	}
	if n := logs.FilterMessage("no PDF files, skipping place").Len(); n != 1 {
		t.Errorf("got %d warnings about empty places, want 1", n)
	}

	// a second run overwrites the bundles
	_, err = m.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n := logs.FilterMessage("file already exists, overwriting").Len(); n != 2 {
		t.Errorf("got %d overwrite warnings, want 2", n)
	}
}

func TestRunSuffix(t *testing.T) {
	dir := t.TempDir()
	fill(t, dir)

	// Progress counts every place directory, including the empty one.
	var calls [][2]int
	m := &Merger{
		TargetDir: dir,
		Suffix:    "javitokulcs",
		Progress:  func(done, total int) { calls = append(calls, [2]int{done, total}) },
	}
	bundles, err := m.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(bundles) != 2 {
		t.Fatalf("got %d bundles, want 2", len(bundles))
	}
	if got, want := bundles[1].Path, filepath.Join(dir, "Szeged_javitokulcs.pdf"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	want := [][2]int{{1, 3}, {2, 3}, {3, 3}}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("progress calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRunEmpty(t *testing.T) {
	m := &Merger{TargetDir: t.TempDir()}
	_, err := m.Run(context.Background())
	if !errors.Is(err, ErrNoPlaces) {
		t.Errorf("expected ErrNoPlaces, got %v", err)
	}

	m.TargetDir = filepath.Join(m.TargetDir, "missing")
	_, err = m.Run(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	fill(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &Merger{TargetDir: dir}
	_, err := m.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
