// Package render turns OPD maps into heatmap plots and grayscale data
// images for inspection. It is caller-side tooling; the wfe core only
// produces arrays.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	// Liberation fonts register automatically on import
	_ "gonum.org/v1/plot/font/liberation"
)

// opdGrid adapts an OPD matrix to the plotter.GridXYZ interface. Axes are
// in millimeters, centered on the array.
type opdGrid struct {
	opd        [][]float64
	pixelScale float64 // meters per pixel
}

func (g opdGrid) Dims() (c, r int) { return len(g.opd[0]), len(g.opd) }

func (g opdGrid) Z(c, r int) float64 { return g.opd[r][c] * 1e9 } // nanometers

func (g opdGrid) X(c int) float64 {
	return (float64(c) - float64(len(g.opd[0])-1)/2.0) * g.pixelScale * 1e3
}

func (g opdGrid) Y(r int) float64 {
	return (float64(r) - float64(len(g.opd)-1)/2.0) * g.pixelScale * 1e3
}

// StepTicks is a tick marker with fixed step intervals.
type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

// HeatMapImage renders an OPD map (meters) as a heatmap image of the given
// pixel dimensions. pixelScale is the grid sampling in meters per pixel.
func HeatMapImage(opd [][]float64, pixelScale float64, title string, wPx, hPx float64) (image.Image, error) {
	if len(opd) == 0 || len(opd[0]) == 0 {
		return nil, errors.New("empty opd matrix")
	}
	w := len(opd[0])
	for i := 1; i < len(opd); i++ {
		if len(opd[i]) != w {
			return nil, errors.New("ragged opd matrix")
		}
	}

	p := plot.New()

	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)

	p.Title.Text = title
	p.X.Label.Text = "mm"
	p.Y.Label.Text = "mm"

	halfSpan := float64(len(opd)) / 2.0 * pixelScale * 1e3
	p.X.Tick.Marker = StepTicks{Step: halfSpan / 4, Format: "%.2f"}
	p.Y.Tick.Marker = StepTicks{Step: halfSpan / 4, Format: "%.2f"}

	grid := opdGrid{opd: opd, pixelScale: pixelScale}
	heat := plotter.NewHeatMap(grid, palette.Heat(255, 1))
	p.Add(heat)

	// Render into an in-memory image, mapping pixels to vg units via DPI.
	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.New(width, height)
	dc := vgdraw.New(c)
	p.Draw(dc)

	return c.Image(), nil
}

// SaveHeatMapPNG renders an OPD heatmap and writes it to a PNG file.
func SaveHeatMapPNG(filename string, opd [][]float64, pixelScale float64, title string, wPx, hPx float64) (err error) {
	img, err := HeatMapImage(opd, pixelScale, title, wPx, hPx)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}

// OPDToGray16 maps an OPD matrix linearly onto the full Gray16 range, the
// minimum value to 0 and the maximum to 65535. A constant matrix maps to
// mid-gray. Non-finite samples write 0.
func OPDToGray16(m [][]float64) (*image.Gray16, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, errors.New("empty matrix")
	}
	h := len(m)
	w := len(m[0])
	for y := 1; y < h; y++ {
		if len(m[y]) != w {
			return nil, errors.New("ragged matrix")
		}
	}

	lo := math.Inf(1)
	hi := math.Inf(-1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := m[y][x]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	img := image.NewGray16(image.Rect(0, 0, w, h))
	span := hi - lo
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			v := m[y][x]
			i := row + 2*x
			if math.IsNaN(v) || math.IsInf(v, 0) {
				img.Pix[i], img.Pix[i+1] = 0, 0
				continue
			}
			var u float64
			if span == 0 {
				u = 32768
			} else {
				u = math.Round((v - lo) / span * 65535)
			}
			y16 := uint16(u)
			// Gray16 uses big-endian per pixel: high byte, then low byte
			img.Pix[i] = uint8(y16 >> 8)
			img.Pix[i+1] = uint8(y16)
		}
	}
	return img, nil
}

// SaveGray16PNG writes a Gray16 image to a PNG file.
func SaveGray16PNG(filename string, img *image.Gray16) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}
