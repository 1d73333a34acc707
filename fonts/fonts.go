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

// Package fonts provides the TrueType fonts used for watermarks,
// together with the glyph metrics needed to fit text onto a page.
package fonts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	xsfnt "golang.org/x/image/font/sfnt"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"

	"seehuhn.de/go/teamstamp/internal/pdfio"
)

// Font is a TrueType font together with its raw file data.
type Font struct {
	info   *sfnt.Font
	cmap   cmap.Subtable
	data   []byte
	psName string

	installOnce sync.Once
	installErr  error
}

// Parse reads a TrueType font from the given data.
func Parse(data []byte) (*Font, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fonts: %w", err)
	}
	sub, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("fonts: %s: %w", info.FamilyName, err)
	}

	// The PDF engine files installed fonts under the name from the
	// name table, which may differ from the name sfnt synthesises.
	raw, err := xsfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: %w", err)
	}
	psName, err := raw.Name(nil, xsfnt.NameIDPostScript)
	if err != nil {
		psName = info.PostScriptName()
	}

	return &Font{info: info, cmap: sub, data: data, psName: psName}, nil
}

// Load reads a TrueType font file, for example Go Noto Universal for
// team names in scripts the Go fonts do not cover.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	F, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return F, nil
}

var (
	defaultOnce sync.Once
	defaultFont *Font
	defaultErr  error
)

// Default returns Go Regular.  It covers Latin-1 and Latin Extended-A,
// which includes the Hungarian alphabet.
func Default() (*Font, error) {
	defaultOnce.Do(func() {
		defaultFont, defaultErr = Parse(goregular.TTF)
	})
	return defaultFont, defaultErr
}

// Bold returns Go Bold.
func Bold() (*Font, error) {
	return Parse(gobold.TTF)
}

// PostScriptName returns the PostScript name of the font.  Once the font
// is installed, this is the name the PDF engine knows it by.
func (F *Font) PostScriptName() string {
	return F.psName
}

// Data returns the TrueType file data.
func (F *Font) Data() []byte {
	return F.data
}

// Width returns the advance width of the text in PDF points, when set at
// the given font size.
func (F *Font) Width(text string, size float64) float64 {
	var w float64
	for _, r := range text {
		gid := F.cmap.Lookup(r)
		w += F.info.GlyphWidthPDF(gid)
	}
	return w * size / 1000
}

// Missing returns the characters of text which have no glyph in the
// font.  These would show up as empty boxes on the page.
func (F *Font) Missing(text string) []rune {
	var res []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		if r == ' ' || seen[r] {
			continue
		}
		if F.cmap.Lookup(r) == 0 {
			seen[r] = true
			res = append(res, r)
		}
	}
	return res
}

// FitSize returns the largest font size between minSize and size at which
// text is at most maxWidth wide.  If the text does not even fit at
// minSize, minSize is returned together with ok == false.
func (F *Font) FitSize(text string, size, minSize, maxWidth float64) (fit float64, ok bool) {
	w := F.Width(text, size)
	if w <= maxWidth {
		return size, true
	}
	fit = size * maxWidth / w
	if fit < minSize {
		return minSize, false
	}
	return fit, true
}

// Install registers the font in the PDF engine's user font store, so that
// watermarks can refer to it by [Font.PostScriptName].  Installing the
// same font several times is cheap.
func (F *Font) Install() error {
	F.installOnce.Do(func() {
		F.installErr = F.install()
	})
	return F.installErr
}

func (F *Font) install() error {
	name := F.PostScriptName()
	if name == "" {
		return errNoName
	}

	// Loading the configuration sets up the user font directory.
	_ = pdfio.NewConfig()

	dir, err := os.MkdirTemp("", "teamstamp-font-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, name+".ttf")
	err = os.WriteFile(path, F.data, 0o644)
	if err != nil {
		return err
	}
	err = api.InstallFonts([]string{path})
	if err != nil {
		return fmt.Errorf("fonts: install %s: %w", name, err)
	}
	return nil
}

var errNoName = errors.New("fonts: font has no PostScript name")
