// Package report renders sweep surfaces as printable heatmaps.
package report

import (
	"fmt"
	"io"
	"math"
	"os"

	"route-profitability/internal/sweep"

	"github.com/jung-kurt/gofpdf"
)

// Page layout, in mm on a landscape A4 page.
var (
	PageWidth  = 297.0
	PageHeight = 210.0
	Margin     = 12.0
	AxisWidth  = 18.0 // room for load factor labels
	TitleSpace = 22.0 // title plus fare labels
	KeySpace   = 16.0

	// Cells narrower than this get no value label.
	MinLabelWidth = 11.0

	LossColor   = []int{0xd7, 0x30, 0x27} // D73027
	ProfitColor = []int{0x1a, 0x98, 0x50} // 1A9850
	EmptyColor  = []int{0xf0, 0xf0, 0xf0}
)

// Heatmap places a Surface on a page. Load factors run bottom to top,
// fares left to right.
type Heatmap struct {
	*gofpdf.Fpdf

	Surface *sweep.Surface
	Title   string

	OffsetU, OffsetV float64
	W, H             float64

	lo, hi float64
	ok     bool
}

func NewHeatmap(s *sweep.Surface, title string) *Heatmap {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	h := &Heatmap{
		Fpdf:    pdf,
		Surface: s,
		Title:   title,
		OffsetU: Margin + AxisWidth,
		OffsetV: Margin + TitleSpace,
		W:       PageWidth - 2*Margin - AxisWidth,
		H:       PageHeight - 2*Margin - TitleSpace - KeySpace,
	}
	h.lo, h.hi, h.ok = s.Range()
	return h
}

func (h *Heatmap) cellSize() (w, ht float64) {
	nf, nl := len(h.Surface.Fares), len(h.Surface.LoadFactors)
	if nf == 0 || nl == 0 {
		return 0, 0
	}
	return h.W / float64(nf), h.H / float64(nl)
}

// UV returns the top-left corner of cell (i, j), where i indexes load
// factors and j indexes fares.
func (h *Heatmap) UV(i, j int) (float64, float64) {
	cw, ch := h.cellSize()
	nl := len(h.Surface.LoadFactors)
	return h.OffsetU + float64(j)*cw, h.OffsetV + float64(nl-1-i)*ch
}

// ColorOf shades losses red and profits green, scaled separately so that
// zero is always white.
func (h *Heatmap) ColorOf(v float64) []int {
	if math.IsNaN(v) || math.IsInf(v, 0) || !h.ok {
		return EmptyColor
	}
	switch {
	case v > 0 && h.hi > 0:
		return blend(ProfitColor, v/h.hi)
	case v < 0 && h.lo < 0:
		return blend(LossColor, v/h.lo)
	default:
		return []int{0xff, 0xff, 0xff}
	}
}

func blend(rgb []int, t float64) []int {
	t = math.Max(0, math.Min(1, t))
	out := make([]int, 3)
	for k := range out {
		out[k] = int(math.Round(255 - t*float64(255-rgb[k])))
	}
	return out
}

func (h *Heatmap) DrawTitle() {
	h.SetFont("Arial", "B", 13)
	h.SetTextColor(0, 0, 0)
	h.SetXY(Margin, Margin)
	h.CellFormat(PageWidth-2*Margin, 7, h.Title, "", 1, "L", false, 0, "")
	h.SetFont("Arial", "", 9)
	h.SetX(Margin)
	h.CellFormat(PageWidth-2*Margin, 5, fmt.Sprintf("metric: %s", h.Surface.Metric), "", 1, "L", false, 0, "")
}

func (h *Heatmap) DrawCells() {
	cw, ch := h.cellSize()
	if cw == 0 {
		return
	}
	h.SetLineWidth(0.1)
	h.SetDrawColor(0xff, 0xff, 0xff)
	fontSize := math.Min(7, ch*2)
	h.SetFont("Arial", "", fontSize)

	for i := range h.Surface.LoadFactors {
		for j := range h.Surface.Fares {
			v := h.Surface.Values[i][j]
			u, vv := h.UV(i, j)
			rgb := h.ColorOf(v)
			h.SetFillColor(rgb[0], rgb[1], rgb[2])
			h.Rect(u, vv, cw, ch, "FD")

			if cw < MinLabelWidth || math.IsNaN(v) {
				continue
			}
			h.SetTextColor(0x20, 0x20, 0x20)
			h.SetXY(u, vv)
			h.CellFormat(cw, ch, formatValue(h.Surface.Metric, v), "", 0, "C", false, 0, "")
		}
	}
}

func (h *Heatmap) DrawAxes() {
	cw, ch := h.cellSize()
	if cw == 0 {
		return
	}
	h.SetFont("Arial", "", 7)
	h.SetTextColor(0, 0, 0)

	// Fares across the top; skip labels that would overlap.
	every := int(math.Ceil(10 / cw))
	for j, fare := range h.Surface.Fares {
		if j%every != 0 {
			continue
		}
		u, _ := h.UV(0, j)
		h.SetXY(u, h.OffsetV-5)
		h.CellFormat(cw*float64(every), 4, fmt.Sprintf("%g", fare), "", 0, "L", false, 0, "")
	}
	h.SetXY(h.OffsetU, h.OffsetV-10)
	h.CellFormat(h.W, 4, "average fare", "", 0, "C", false, 0, "")

	for i, lf := range h.Surface.LoadFactors {
		_, v := h.UV(i, 0)
		h.SetXY(Margin, v)
		h.CellFormat(AxisWidth-1, ch, fmt.Sprintf("%.2f", lf), "", 0, "R", false, 0, "")
	}
}

func (h *Heatmap) DrawKey() {
	y := h.OffsetV + h.H + 4
	h.SetFont("Arial", "", 8)
	h.SetTextColor(0, 0, 0)
	if !h.ok {
		h.SetXY(h.OffsetU, y)
		h.CellFormat(h.W, 5, "no finite values", "", 0, "L", false, 0, "")
		return
	}

	const steps = 20
	const sw = 4.0
	for k := 0; k <= steps; k++ {
		v := h.lo + (h.hi-h.lo)*float64(k)/steps
		rgb := h.ColorOf(v)
		h.SetFillColor(rgb[0], rgb[1], rgb[2])
		h.Rect(h.OffsetU+float64(k)*sw, y, sw, 4, "F")
	}
	h.SetXY(h.OffsetU, y+5)
	h.CellFormat(sw*steps/2, 4, formatValue(h.Surface.Metric, h.lo), "", 0, "L", false, 0, "")
	h.CellFormat(sw*(steps/2+1), 4, formatValue(h.Surface.Metric, h.hi), "", 0, "R", false, 0, "")
}

func formatValue(m sweep.Metric, v float64) string {
	if m == sweep.MetricProfitMargin {
		return fmt.Sprintf("%.1f%%", v*100)
	}
	if math.Abs(v) >= 10000 {
		return fmt.Sprintf("%.1fk", v/1000)
	}
	return fmt.Sprintf("%.0f", v)
}

// WriteSurface renders s as a one-page PDF heatmap.
func WriteSurface(output io.Writer, s *sweep.Surface, title string) error {
	h := NewHeatmap(s, title)
	h.DrawTitle()
	h.DrawAxes()
	h.DrawCells()
	h.DrawKey()
	return h.Output(output)
}

func WriteSurfacePDF(path string, s *sweep.Surface, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteSurface(f, s, title); err != nil {
		return err
	}
	return f.Close()
}
