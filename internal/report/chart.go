package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"style-finder/internal/domain"
)

// ChartRenderer draws the per-style totals as an image.
type ChartRenderer interface {
	Render(totals domain.StyleTotals, maxScore int) ([]byte, error)
}

// PolarChart draws a closed radar polygon with one axis per style on a PNG canvas.
type PolarChart struct {
	Size  int
	Rings int
	Title string
}

func NewPolarChart() *PolarChart {
	return &PolarChart{Size: 600, Rings: 4, Title: "Your Style Chart"}
}

func (c *PolarChart) Render(totals domain.StyleTotals, maxScore int) ([]byte, error) {
	if maxScore <= 0 {
		return nil, fmt.Errorf("%w: radial range [0, %d]", ErrChartRender, maxScore)
	}
	size := c.Size
	if size < 200 {
		size = 200
	}
	rings := c.Rings
	if rings <= 0 {
		rings = 4
	}

	dc := gg.NewContext(size, size)
	dc.SetHexColor("#f7f7f7")
	dc.Clear()

	cx := float64(size) / 2
	cy := float64(size)/2 + 15
	radius := float64(size) * 0.33
	styles := domain.Styles()
	angle := func(i int) float64 {
		return -math.Pi/2 + 2*math.Pi*float64(i)/float64(len(styles))
	}
	point := func(i int, r float64) (float64, float64) {
		a := angle(i)
		return cx + r*math.Cos(a), cy + r*math.Sin(a)
	}

	dc.SetHexColor("#d0d0d0")
	dc.SetLineWidth(1)
	for ring := 1; ring <= rings; ring++ {
		dc.DrawCircle(cx, cy, radius*float64(ring)/float64(rings))
		dc.Stroke()
	}
	for i := range styles {
		x, y := point(i, radius)
		dc.DrawLine(cx, cy, x, y)
		dc.Stroke()
	}

	dc.SetHexColor("#777777")
	for ring := 1; ring <= rings; ring++ {
		value := maxScore * ring / rings
		dc.DrawStringAnchored(strconv.Itoa(value), cx+4, cy-radius*float64(ring)/float64(rings), 0, 1)
	}

	dc.SetHexColor("#222222")
	for i, s := range styles {
		x, y := point(i, radius+24)
		dc.DrawStringAnchored(string(s), x, y, 0.5, 0.5)
	}

	type vertex struct{ x, y float64 }
	vertices := make([]vertex, 0, len(styles))
	for i, s := range styles {
		score := math.Min(math.Max(float64(totals[s]), 0), float64(maxScore))
		x, y := point(i, radius*score/float64(maxScore))
		vertices = append(vertices, vertex{x, y})
	}
	for i, v := range vertices {
		if i == 0 {
			dc.MoveTo(v.x, v.y)
			continue
		}
		dc.LineTo(v.x, v.y)
	}
	dc.ClosePath()
	dc.SetRGBA(0, 0, 1, 0.25)
	dc.FillPreserve()
	dc.SetRGB(0, 0, 1)
	dc.SetLineWidth(2)
	dc.Stroke()
	for _, v := range vertices {
		dc.DrawCircle(v.x, v.y, 4)
		dc.Fill()
	}

	if c.Title != "" {
		dc.SetHexColor("#222222")
		dc.DrawStringAnchored(c.Title, cx, 24, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChartRender, err)
	}
	return buf.Bytes(), nil
}
