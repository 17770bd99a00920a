package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/cmplx"
	"os"
	"sort"

	"gonum.org/v1/plot"
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// FieldToGrayPercentile renders the magnitude of a flat (Nz, Nr) complex
// field plane as an 8-bit grayscale image. The radial half-plane is mirrored
// below the axis so the picture shows the full r-z cross section: height is
// 2*Nr (r = +rmax at the top), width is Nz.
//
// The stretch maps the pLow..pHigh percentile range of the finite magnitudes
// to 0..255 and clamps, which keeps a few hot pixels from washing out the
// rest of the image.
func FieldToGrayPercentile(field []complex128, nz, nr int, pLow, pHigh float64) (*image.Gray, error) {
	if nz <= 0 || nr <= 0 || len(field) != nz*nr {
		return nil, errors.New("field plane dimensions do not match the data")
	}
	if !(0 <= pLow && pLow < pHigh && pHigh <= 100) {
		return nil, errors.New("percentiles must satisfy 0 <= pLow < pHigh <= 100")
	}

	// Collect finite magnitudes for percentile computation
	vals := make([]float64, 0, nz*nr)
	mag := make([]float64, nz*nr)
	for i, v := range field {
		m := cmplx.Abs(v)
		mag[i] = m
		if !math.IsNaN(m) && !math.IsInf(m, 0) {
			vals = append(vals, m)
		}
	}
	if len(vals) == 0 {
		return nil, errors.New("field has no finite values")
	}

	sort.Float64s(vals)

	percentile := func(p float64) float64 {
		if p <= 0 {
			return vals[0]
		}
		if p >= 100 {
			return vals[len(vals)-1]
		}
		pos := (p / 100.0) * float64(len(vals)-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i >= len(vals)-1 {
			return vals[len(vals)-1]
		}
		return vals[i]*(1-f) + vals[i+1]*f
	}

	lo := percentile(pLow)
	hi := percentile(pHigh)
	if hi == lo {
		hi = lo + 1 // avoid divide-by-zero; image becomes mostly constant
	}

	img := image.NewGray(image.Rect(0, 0, nz, 2*nr))
	for iz := 0; iz < nz; iz++ {
		for ir := 0; ir < nr; ir++ {
			m := mag[iz*nr+ir]
			var pix uint8
			if !math.IsNaN(m) && !math.IsInf(m, 0) {
				t := (m - lo) / (hi - lo)
				if t < 0 {
					t = 0
				} else if t > 1 {
					t = 1
				}
				pix = uint8(math.Round(t * 255.0))
			}
			// Upper half runs from r = rmax down to the axis; the lower
			// half mirrors it.
			img.Pix[(nr-1-ir)*img.Stride+iz] = pix
			img.Pix[(nr+ir)*img.Stride+iz] = pix
		}
	}
	return img, nil
}

func SaveGrayPNG(filename string, img *image.Gray) (err error) {
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

// StepTicks is a custom tick marker for plots with fixed step intervals.
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

// PlotAxisProfile plots the real part and magnitude of a field along the
// innermost radial row (the cells nearest the axis) against z and renders
// the result to an image.
func PlotAxisProfile(z []float64, field []complex128, nr int, title, yLabel string, wPx, hPx float64) (image.Image, error) {
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
	p.X.Label.Text = "z (m)"
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = StepTicks{Step: (z[len(z)-1] - z[0]) / 10, Format: "%.3g"}
	p.Add(plotter.NewGrid())

	nz := len(z)
	rePts := make(plotter.XYs, nz)
	magPts := make(plotter.XYs, nz)
	for iz := 0; iz < nz; iz++ {
		v := field[iz*nr]
		rePts[iz].X = z[iz]
		rePts[iz].Y = real(v)
		magPts[iz].X = z[iz]
		magPts[iz].Y = cmplx.Abs(v)
	}

	reLine, err := plotter.NewLine(rePts)
	if err != nil {
		return nil, err
	}
	reLine.Color = color.RGBA{B: 255, A: 255}
	p.Add(reLine)
	p.Legend.Add("real part", reLine)

	magLine, err := plotter.NewLine(magPts)
	if err != nil {
		return nil, err
	}
	magLine.Color = color.RGBA{R: 255, A: 255}
	magLine.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(magLine)
	p.Legend.Add("magnitude", magLine)

	p.Legend.TextStyle.Font.Typeface = "Liberation"
	p.Legend.TextStyle.Font.Variant = "Sans"
	p.Legend.Top = true

	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.New(width, height)
	dc := vgdraw.New(c)
	p.Draw(dc)

	return c.Image(), nil
}

// SaveAxisProfilePlot creates and saves an on-axis profile plot to a PNG file.
func SaveAxisProfilePlot(filename string, z []float64, field []complex128, nr int, title, yLabel string) (err error) {
	img, err := PlotAxisProfile(z, field, nr, title, yLabel, 1200, 500)
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
