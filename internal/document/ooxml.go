package document

import "github.com/beevik/etree"

// WordprocessingML building blocks shared by the template builder and the
// table-row injection. The whole document uses a single font family and size
// so injected rows match the template body.

const (
	fontName     = "Arial"
	fontSizeHalf = "20" // w:sz is measured in half-points; 20 = 10pt
	headingHalf  = "28" // 14pt for section headings
)

func applyRunFont(run *etree.Element, sizeHalfPoints string, bold bool) {
	rPr := run.CreateElement("w:rPr")
	fonts := rPr.CreateElement("w:rFonts")
	fonts.CreateAttr("w:ascii", fontName)
	fonts.CreateAttr("w:hAnsi", fontName)
	if bold {
		rPr.CreateElement("w:b")
	}
	sz := rPr.CreateElement("w:sz")
	sz.CreateAttr("w:val", sizeHalfPoints)
}

func newRun(parent *etree.Element, text, sizeHalfPoints string, bold bool) *etree.Element {
	run := parent.CreateElement("w:r")
	applyRunFont(run, sizeHalfPoints, bold)
	t := run.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
	return run
}

type paragraphOpts struct {
	bold     bool
	centered bool
	heading  bool
}

func newParagraph(parent *etree.Element, text string, opts paragraphOpts) *etree.Element {
	p := parent.CreateElement("w:p")
	if opts.centered {
		pPr := p.CreateElement("w:pPr")
		jc := pPr.CreateElement("w:jc")
		jc.CreateAttr("w:val", "center")
	}
	size := fontSizeHalf
	if opts.heading {
		size = headingHalf
	}
	if text != "" {
		newRun(p, text, size, opts.bold || opts.heading)
	}
	return p
}

// newLabeledParagraph emits "LABEL: body" with only the label in bold, the
// pattern the contract uses for CONTRATANTE/OBJETO clauses.
func newLabeledParagraph(parent *etree.Element, label, body string) *etree.Element {
	p := parent.CreateElement("w:p")
	newRun(p, label, fontSizeHalf, true)
	newRun(p, body, fontSizeHalf, false)
	return p
}

func newTable(parent *etree.Element, columns int) *etree.Element {
	tbl := parent.CreateElement("w:tbl")
	tblPr := tbl.CreateElement("w:tblPr")
	width := tblPr.CreateElement("w:tblW")
	width.CreateAttr("w:w", "0")
	width.CreateAttr("w:type", "auto")
	borders := tblPr.CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b := borders.CreateElement("w:" + side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", "4")
		b.CreateAttr("w:color", "auto")
	}
	grid := tbl.CreateElement("w:tblGrid")
	for i := 0; i < columns; i++ {
		grid.CreateElement("w:gridCol")
	}
	return tbl
}

// newTableRow appends a row of centered cells. Header rows come out bold.
func newTableRow(tbl *etree.Element, cells []string, header bool) *etree.Element {
	tr := tbl.CreateElement("w:tr")
	for _, text := range cells {
		tc := tr.CreateElement("w:tc")
		tc.CreateElement("w:tcPr")
		p := tc.CreateElement("w:p")
		pPr := p.CreateElement("w:pPr")
		jc := pPr.CreateElement("w:jc")
		jc.CreateAttr("w:val", "center")
		newRun(p, text, fontSizeHalf, header)
	}
	return tr
}
