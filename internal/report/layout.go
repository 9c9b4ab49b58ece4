package report

// Page geometry, A4 portrait in millimeters.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 18.0

	contentWidth = pageWidth - marginLeft - marginRight
	pageBottom   = pageHeight - marginBottom

	sectionGap = 6.0 // vertical gutter between sections

	// Vertical room reserved for the signature block; a page break is
	// forced when less than this remains.
	signatureHeight = 48.0
)

// breakNeeded reports whether drawing `need` millimeters starting at
// cursor y would overflow the page.
func breakNeeded(y, need float64) bool {
	return y+need > pageBottom
}

// normalizeWidths rescales nominal column widths so that their sum equals
// available. Configs may declare arbitrary nominal widths; this keeps a
// table exactly as wide as the page content area regardless of column
// count. A degenerate (zero/negative sum) input falls back to equal
// widths.
func normalizeWidths(widths []float64, available float64) []float64 {
	if len(widths) == 0 {
		return nil
	}
	var sum float64
	for _, w := range widths {
		if w > 0 {
			sum += w
		}
	}
	out := make([]float64, len(widths))
	if sum <= 0 {
		equal := available / float64(len(widths))
		for i := range out {
			out[i] = equal
		}
		return out
	}
	for i, w := range widths {
		if w < 0 {
			w = 0
		}
		out[i] = w / sum * available
	}
	return out
}

// fontSizeForColumns steps the table font size and row height down as the
// column count grows, so dense tables (ET has 11 columns) stay legible.
func fontSizeForColumns(n int) (size, rowHeight float64) {
	switch {
	case n <= 6:
		return 9, 7
	case n <= 8:
		return 8, 6.5
	default:
		return 6.5, 6
	}
}
