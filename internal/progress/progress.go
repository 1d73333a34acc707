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

// Package progress draws a progress bar on terminals.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/term"
)

// Bar shows the progress of a batch job on a single terminal line.
// If the output is not a terminal, nothing is drawn.
type Bar struct {
	w       io.Writer
	label   string
	enabled bool
	model   progress.Model
}

// New returns a bar drawing to f, if f is a terminal.
func New(f *os.File, label string) *Bar {
	return NewWriter(f, label, term.IsTerminal(int(f.Fd())))
}

// NewWriter returns a bar drawing to w.  If enabled is false, the bar is
// silent.
func NewWriter(w io.Writer, label string, enabled bool) *Bar {
	return &Bar{
		w:       w,
		label:   label,
		enabled: enabled,
		model:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Update redraws the bar.  It has the signature of the progress callbacks
// of the generate and merge packages.
func (b *Bar) Update(done, total int) {
	if !b.enabled || total <= 0 {
		return
	}
	fmt.Fprintf(b.w, "\r%s %s %d/%d", b.label, b.model.ViewAs(float64(done)/float64(total)), done, total)
}

// Done ends the progress line.
func (b *Bar) Done() {
	if b.enabled {
		fmt.Fprintln(b.w)
	}
}
