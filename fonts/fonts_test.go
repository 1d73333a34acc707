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

package fonts

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

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

func TestDefault(t *testing.T) {
	F, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if name := F.PostScriptName(); !strings.HasPrefix(name, "Go") {
		t.Errorf("unexpected PostScript name %q", name)
	}

	again, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if again != F {
		t.Error("Default() returned a different instance")
	}
}

func TestWidth(t *testing.T) {
	F, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	if w := F.Width("", 10); w != 0 {
		t.Errorf("empty text has width %g", w)
	}

	w10 := F.Width("Kockafejek", 10)
	w20 := F.Width("Kockafejek", 20)
	if w10 <= 0 {
		t.Fatalf("width %g is not positive", w10)
	}
	if math.Abs(w20-2*w10) > 1e-9 {
		t.Errorf("width does not scale with size: %g vs %g", w10, w20)
	}
	if F.Width("Kockafejek!", 10) <= w10 {
		t.Error("longer text is not wider")
	}
}

func TestMissing(t *testing.T) {
	F, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if m := F.Missing("Őrült Űrhajósok"); len(m) != 0 {
		t.Errorf("Hungarian letters reported missing: %q", string(m))
	}
	if m := F.Missing("نحن"); len(m) == 0 {
		t.Error("Arabic letters are not reported missing")
	}
}

func TestFitSize(t *testing.T) {
	F, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	text := "A very long team name which keeps on going"
	w := F.Width(text, 10)

	size, ok := F.FitSize(text, 10, 6, w+1)
	if !ok || size != 10 {
		t.Errorf("FitSize with room to spare = %g, %t", size, ok)
	}

	size, ok = F.FitSize(text, 10, 6, w*0.8)
	if !ok || math.Abs(size-8) > 1e-9 {
		t.Errorf("FitSize at 80%% = %g, %t, want 8", size, ok)
	}
	if got := F.Width(text, size); got > w*0.8+1e-9 {
		t.Errorf("fitted text is %g wide, limit %g", got, w*0.8)
	}

	size, ok = F.FitSize(text, 10, 6, w*0.5)
	if ok || size != 6 {
		t.Errorf("FitSize below minimum = %g, %t, want 6, false", size, ok)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.ttf")
	err := os.WriteFile(path, goregular.TTF, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	F, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	G, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if F.PostScriptName() != G.PostScriptName() {
		t.Errorf("PostScript name %q, want %q", F.PostScriptName(), G.PostScriptName())
	}

	_, err = Parse([]byte("not a font"))
	if err == nil {
		t.Error("parsing garbage succeeded")
	}
}

func TestInstall(t *testing.T) {
	F, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	err = F.Install()
	if err != nil {
		t.Fatal(err)
	}
	err = F.Install()
	if err != nil {
		t.Fatal(err)
	}
}
