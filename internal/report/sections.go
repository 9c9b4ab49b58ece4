package report

import (
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// Cell fill colors.
var (
	colorHeader = [3]int{55, 71, 90}    // table header background
	colorZebra  = [3]int{244, 246, 248} // alternate row background
	colorPass   = [3]int{198, 239, 206}
	colorFail   = [3]int{255, 199, 206}
	colorTitle  = [3]int{230, 234, 238}
)

// painter wraps the document with the loaded font and draws sections.
// One painter exists per render call; the cursor y is threaded through
// every render method and never stored.
type painter struct {
	pdf  *fpdf.Fpdf
	font string
	tr   func(string) string // core-font charset mapping; identity under UTF-8
}

func (p *painter) setFill(c [3]int) { p.pdf.SetFillColor(c[0], c[1], c[2]) }

// ensure inserts a page break when `need` millimeters no longer fit and
// returns the cursor to draw at. Every renderer calls this before any
// drawing, which is what guarantees the page-break invariant.
func (p *painter) ensure(y, need float64) float64 {
	if breakNeeded(y, need) {
		p.pdf.AddPage()
		return marginTop
	}
	return y
}

// sectionTitle draws the shaded title bar common to all sections.
func (p *painter) sectionTitle(y float64, title string) float64 {
	if title == "" {
		return y
	}
	y = p.ensure(y, 8)
	p.setFill(colorTitle)
	p.pdf.SetFont(p.font, "B", 10)
	p.pdf.SetTextColor(33, 37, 41)
	p.pdf.SetXY(marginLeft, y)
	p.pdf.CellFormat(contentWidth, 7, p.tr(title), "1", 0, "L", true, 0, "")
	return y + 7
}

// dispatch maps each section type to its renderer. Unknown types cannot
// reach here: the registry rejects them at registration time.
func (p *painter) renderSection(y float64, spec SectionSpec, env *Envelope) float64 {
	switch spec.Type {
	case SectionInfo:
		return p.renderInfo(y, spec, env)
	case SectionMeasurements:
		return p.renderMeasurements(y, spec, env)
	case SectionDefects:
		return p.renderDefects(y, spec, env)
	case SectionChecklist:
		return p.renderChecklist(y, spec, env)
	case SectionResult:
		return p.renderResult(y, spec, env)
	case SectionNotes:
		return p.renderNotes(y, spec, env)
	}
	return y
}

// renderInfo lays the section's fields out as a two-column label/value
// grid, two fields per row. Missing values render as empty cells.
func (p *painter) renderInfo(y float64, spec SectionSpec, env *Envelope) float64 {
	if len(spec.Fields) == 0 {
		return y
	}
	y = p.sectionTitle(y, spec.Title)

	const rowH = 7.0
	half := contentWidth / 2
	labelW := half * 0.45
	valueW := half - labelW

	p.pdf.SetFont(p.font, "", 9)
	for i := 0; i < len(spec.Fields); i += 2 {
		y = p.ensure(y, rowH)
		fill := (i/2)%2 == 1
		p.setFill(colorZebra)
		p.pdf.SetTextColor(33, 37, 41)
		p.pdf.SetXY(marginLeft, y)
		for j := i; j < i+2; j++ {
			if j < len(spec.Fields) {
				f := spec.Fields[j]
				p.pdf.SetFont(p.font, "B", 9)
				p.pdf.CellFormat(labelW, rowH, p.tr(f.Label), "1", 0, "L", fill, 0, "")
				p.pdf.SetFont(p.font, "", 9)
				p.pdf.CellFormat(valueW, rowH, p.tr(formatValue(env.Values[f.Key])), "1", 0, "L", fill, 0, "")
			} else {
				p.pdf.CellFormat(half, rowH, "", "1", 0, "L", fill, 0, "")
			}
		}
		y += rowH
	}
	return y
}

// renderMeasurements draws the computed measurement table. Column widths
// are the config's nominal widths rescaled to the content width; font
// size steps down with column count. After a page break the header row
// repeats.
func (p *painter) renderMeasurements(y float64, spec SectionSpec, env *Envelope) float64 {
	if env.Calc == nil || len(env.Calc.Measurements) == 0 {
		return y
	}
	y = p.sectionTitle(y, spec.Title)

	nominal := make([]float64, len(spec.Columns))
	for i, c := range spec.Columns {
		nominal[i] = c.Width
	}
	widths := normalizeWidths(nominal, contentWidth)
	size, rowH := fontSizeForColumns(len(spec.Columns))

	header := func(y float64) float64 {
		p.setFill(colorHeader)
		p.pdf.SetTextColor(255, 255, 255)
		p.pdf.SetFont(p.font, "B", size)
		p.pdf.SetXY(marginLeft, y)
		for i, c := range spec.Columns {
			p.pdf.CellFormat(widths[i], rowH, p.tr(c.Label), "1", 0, "C", true, 0, "")
		}
		return y + rowH
	}

	y = p.ensure(y, rowH*2) // header plus at least one data row
	y = header(y)

	p.pdf.SetFont(p.font, "", size)
	for idx, point := range env.Calc.Measurements {
		if breakNeeded(y, rowH) {
			p.pdf.AddPage()
			y = header(marginTop)
			p.pdf.SetFont(p.font, "", size)
		}
		p.pdf.SetXY(marginLeft, y)
		for i, c := range spec.Columns {
			fill := idx%2 == 1
			p.setFill(colorZebra)
			p.pdf.SetTextColor(33, 37, 41)
			if c.Key == "sonuc" {
				fill = true
				if point.Result == VerdictCompliant {
					p.setFill(colorPass)
				} else {
					p.setFill(colorFail)
				}
			}
			p.pdf.CellFormat(widths[i], rowH, p.tr(measurementCell(point, c.Key)), "1", 0, "C", fill, 0, "")
		}
		y += rowH
	}
	return y
}

// measurementCell formats one table cell. Impedances carry two decimals,
// currents one, rated current none.
func measurementCell(p MeasurementPoint, key string) string {
	switch key {
	case "sira":
		return strconv.Itoa(p.Sequence)
	case "nokta":
		return p.PointName
	case "in":
		return fmt.Sprintf("%.0f", p.RatedCurrent)
	case "egri":
		return p.CurveType
	case "ia":
		return fmt.Sprintf("%.1f", p.TripCurrent)
	case "zs":
		return fmt.Sprintf("%.2f", p.LimitImpedance)
	case "zx":
		return fmt.Sprintf("%.2f", p.MeasuredImpedance)
	case "ik1":
		return fmt.Sprintf("%.1f", p.ShortCircuitCurrent)
	case "rcd":
		if p.RCDRating == nil {
			return "-"
		}
		return fmt.Sprintf("%.0f", *p.RCDRating)
	case "tdelta":
		if p.TripTime == nil {
			return "-"
		}
		return fmt.Sprintf("%.0f", *p.TripTime)
	case "sonuc":
		return string(p.Result)
	}
	return ""
}

// renderDefects renders nothing when the defects list is empty: a clean
// inspection simply has no defects section. The data may be a list of
// findings or one free-text block.
func (p *painter) renderDefects(y float64, spec SectionSpec, env *Envelope) float64 {
	v, ok := env.Values[spec.DataKey]
	if !ok || v == nil {
		return y
	}

	switch data := v.(type) {
	case []any:
		if len(data) == 0 {
			return y
		}
		y = p.sectionTitle(y, spec.Title)
		p.pdf.SetFont(p.font, "", 9)
		p.pdf.SetTextColor(33, 37, 41)
		for i, item := range data {
			text := fmt.Sprintf("%d. %s", i+1, toString(item))
			y = p.writeWrapped(y, text, (i)%2 == 1)
		}
		return y
	default:
		text := toString(v)
		if text == "" {
			return y
		}
		y = p.sectionTitle(y, spec.Title)
		p.pdf.SetFont(p.font, "", 9)
		p.pdf.SetTextColor(33, 37, 41)
		return p.writeWrapped(y, text, false)
	}
}

// writeWrapped draws one bordered, possibly multi-line row and returns the
// cursor below it. The row is measured first so the page break happens
// before any of it is drawn.
func (p *painter) writeWrapped(y float64, text string, fill bool) float64 {
	const lineH = 6.0
	lines := p.pdf.SplitText(p.tr(text), contentWidth-4)
	need := float64(len(lines)) * lineH
	y = p.ensure(y, need)
	p.setFill(colorZebra)
	p.pdf.SetXY(marginLeft, y)
	p.pdf.MultiCell(contentWidth, lineH, p.tr(text), "1", "L", fill)
	return y + need
}

// renderChecklist draws item/status rows; affirmative statuses get the
// pass color, anything else entered gets the fail color, blanks stay
// uncolored.
func (p *painter) renderChecklist(y float64, spec SectionSpec, env *Envelope) float64 {
	if len(spec.Fields) == 0 {
		return y
	}
	y = p.sectionTitle(y, spec.Title)

	const rowH = 7.0
	statusW := 35.0
	labelW := contentWidth - statusW

	for i, f := range spec.Fields {
		y = p.ensure(y, rowH)
		status := toString(env.Values[f.Key])

		p.setFill(colorZebra)
		p.pdf.SetTextColor(33, 37, 41)
		p.pdf.SetFont(p.font, "", 9)
		p.pdf.SetXY(marginLeft, y)
		p.pdf.CellFormat(labelW, rowH, p.tr(f.Label), "1", 0, "L", i%2 == 1, 0, "")

		statusFill := false
		if status != "" {
			statusFill = true
			if IsCompliant(status) {
				p.setFill(colorPass)
			} else {
				p.setFill(colorFail)
			}
		}
		display := status
		if display == "" {
			display = "-"
		}
		p.pdf.CellFormat(statusW, rowH, p.tr(display), "1", 0, "C", statusFill, 0, "")
		y += rowH
	}
	return y
}

// renderResult draws the overall verdict banner plus the optional
// explanation line.
func (p *painter) renderResult(y float64, spec SectionSpec, env *Envelope) float64 {
	const bannerH = 11.0
	need := bannerH
	if env.Explanation != "" {
		need += 7
	}
	y = p.ensure(y, need+8) // keep the title bar and banner together
	y = p.sectionTitle(y, spec.Title)

	if env.Overall == VerdictCompliant {
		p.setFill(colorPass)
	} else {
		p.setFill(colorFail)
	}
	p.pdf.SetFont(p.font, "B", 12)
	p.pdf.SetTextColor(33, 37, 41)
	p.pdf.SetXY(marginLeft, y)
	p.pdf.CellFormat(contentWidth, bannerH, p.tr("GENEL SONUÇ: "+string(env.Overall)), "1", 0, "C", true, 0, "")
	y += bannerH

	if env.Explanation != "" {
		p.pdf.SetFont(p.font, "", 9)
		p.pdf.SetXY(marginLeft, y)
		p.pdf.CellFormat(contentWidth, 7, p.tr(env.Explanation), "1", 0, "C", false, 0, "")
		y += 7
	}
	return y
}

// renderNotes draws the config's static regulatory strings as a bulleted
// list.
func (p *painter) renderNotes(y float64, spec SectionSpec, env *Envelope) float64 {
	if len(spec.Items) == 0 {
		return y
	}
	y = p.sectionTitle(y, spec.Title)
	p.pdf.SetFont(p.font, "", 8)
	p.pdf.SetTextColor(90, 90, 90)

	const lineH = 5.0
	for _, item := range spec.Items {
		text := "• " + item
		lines := p.pdf.SplitText(p.tr(text), contentWidth)
		need := float64(len(lines)) * lineH
		y = p.ensure(y, need)
		p.pdf.SetXY(marginLeft, y)
		p.pdf.MultiCell(contentWidth, lineH, p.tr(text), "", "L", false)
		y += need
	}
	return y
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return toString(v)
}
