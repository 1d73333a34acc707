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

// Package report prints a TSV table, for example the team roster of a
// place, as a paginated PDF table.
package report

import (
	"errors"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/teamstamp/fonts"
	"seehuhn.de/go/teamstamp/internal/tsv"
)

// Letter is the US letter paper size in PDF points.
var Letter = rect.Rect{URx: 612, URy: 792}

// Options describe the table layout.  All lengths are in PDF points.
type Options struct {
	Paper rect.Rect

	// MarginX is used on the left and right, MarginY at the top and
	// bottom of each page.
	MarginX, MarginY float64

	HeaderSize float64
	BodySize   float64

	// Padding is added to the height of every row, and is kept free on
	// both sides of the cell text.
	Padding float64

	Regular, Bold *fonts.Font
}

// DefaultOptions give a letter sized table with a 12pt header row and
// 10pt body rows.
var DefaultOptions = Options{
	Paper:      Letter,
	MarginX:    72,
	MarginY:    36,
	HeaderSize: 12,
	BodySize:   10,
	Padding:    12,
}

// ErrEmpty is returned for tables without columns.
var ErrEmpty = errors.New("report: table has no columns")

var (
	headerFill = [3]int{128, 128, 128}
	headerText = [3]int{245, 245, 245}
	bodyFill   = [3]int{245, 245, 220}
)

// Row is a table row after line breaking.
type Row struct {
	Cells  [][]string
	Height float64
}

// Page lists the body rows shown on one page, as indices into the rows
// of the table.  The header row is repeated on every page.
type Page []int

// Layout breaks the cell contents into lines and distributes the body
// rows over pages.  It returns the header row, the body rows and the
// page assignment.
func Layout(table *tsv.Table, opt *Options) (header Row, body []Row, pages []Page, err error) {
	o, err := complete(opt)
	if err != nil {
		return Row{}, nil, nil, err
	}
	if len(table.Header) == 0 {
		return Row{}, nil, nil, ErrEmpty
	}

	colWidth := o.colWidth(len(table.Header))
	header = o.wrapRow(table.Header, o.Bold, o.HeaderSize, colWidth)
	body = make([]Row, len(table.Rows))
	for i, row := range table.Rows {
		body[i] = o.wrapRow(row.Fields, o.Regular, o.BodySize, colWidth)
	}

	avail := o.Paper.Dy() - 2*o.MarginY
	var cur Page
	used := header.Height
	for i, row := range body {
		// A row which is too tall for any page still gets a page of its own.
		if len(cur) > 0 && used+row.Height > avail {
			pages = append(pages, cur)
			cur = nil
			used = header.Height
		}
		cur = append(cur, i)
		used += row.Height
	}
	if len(cur) > 0 || len(pages) == 0 {
		pages = append(pages, cur)
	}
	return header, body, pages, nil
}

// Render writes the table as a PDF file to w.
func Render(w io.Writer, table *tsv.Table, opt *Options) error {
	o, err := complete(opt)
	if err != nil {
		return err
	}
	header, body, pages, err := Layout(table, o)
	if err != nil {
		return err
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: o.Paper.Dx(), Ht: o.Paper.Dy()},
	})
	doc.SetMargins(o.MarginX, o.MarginY, o.MarginX)
	doc.SetAutoPageBreak(false, 0)
	doc.AddUTF8FontFromBytes("body", "", o.Regular.Data())
	doc.AddUTF8FontFromBytes("body", "B", o.Bold.Data())
	doc.SetDrawColor(0, 0, 0)
	doc.SetLineWidth(1)

	colWidth := o.colWidth(len(table.Header))
	for _, page := range pages {
		doc.AddPage()
		y := o.MarginY
		o.drawRow(doc, header, y, colWidth, "B", o.HeaderSize, o.Bold, headerFill, headerText)
		y += header.Height
		for _, i := range page {
			o.drawRow(doc, body[i], y, colWidth, "", o.BodySize, o.Regular, bodyFill, [3]int{})
			y += body[i].Height
		}
	}
	return doc.Output(w)
}

func (o *Options) drawRow(doc *gofpdf.Fpdf, row Row, y, colWidth float64,
	style string, size float64, F *fonts.Font, fill, text [3]int) {
	doc.SetFont("body", style, size)
	doc.SetFillColor(fill[0], fill[1], fill[2])
	doc.SetTextColor(text[0], text[1], text[2])

	leading := size + 2
	for j, lines := range row.Cells {
		x := o.MarginX + float64(j)*colWidth
		doc.Rect(x, y, colWidth, row.Height, "FD")

		// centre the text block in the cell
		top := y + (row.Height-float64(len(lines))*leading)/2
		for k, line := range lines {
			lx := x + (colWidth-F.Width(line, size))/2
			doc.Text(lx, top+float64(k)*leading+size, line)
		}
	}
}

func (o *Options) colWidth(columns int) float64 {
	return (o.Paper.Dx() - 2*o.MarginX) / float64(columns)
}

// wrapRow breaks all cells of a row into lines.  Missing cells are
// treated as empty.
func (o *Options) wrapRow(fields []string, F *fonts.Font, size, colWidth float64) Row {
	row := Row{Cells: make([][]string, len(fields))}
	maxLines := 1
	for j, field := range fields {
		lines := Wrap(field, F, size, colWidth-o.Padding)
		row.Cells[j] = lines
		maxLines = max(maxLines, len(lines))
	}
	row.Height = float64(maxLines)*(size+2) + o.Padding
	return row
}

// Wrap breaks text into lines of at most the given width, at white space.
// Words which are longer than a line are not split.
func Wrap(text string, F *fonts.Font, size, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, word := range words[1:] {
		next := cur + " " + word
		if F.Width(next, size) <= width {
			cur = next
		} else {
			lines = append(lines, cur)
			cur = word
		}
	}
	return append(lines, cur)
}

func complete(opt *Options) (*Options, error) {
	if opt == nil {
		opt = &DefaultOptions
	}
	o := *opt
	if o.Paper.IsZero() {
		o.Paper = DefaultOptions.Paper
	}
	if o.HeaderSize <= 0 {
		o.HeaderSize = DefaultOptions.HeaderSize
	}
	if o.BodySize <= 0 {
		o.BodySize = DefaultOptions.BodySize
	}
	var err error
	if o.Regular == nil {
		o.Regular, err = fonts.Default()
		if err != nil {
			return nil, err
		}
	}
	if o.Bold == nil {
		o.Bold, err = fonts.Bold()
		if err != nil {
			return nil, err
		}
	}
	return &o, nil
}
