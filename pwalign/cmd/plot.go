// Copyright © 2023-2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"github.com/pkg/errors"
	"github.com/shenwei356/pwalign/pwalign/align"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// pathPoints returns the traceback path as points of
// (consumed symbols of seq 1, consumed symbols of seq 2).
func pathPoints(r *align.Result) plotter.XYs {
	if r.Len == 0 {
		return nil
	}

	pts := make(plotter.XYs, 0, r.Len+1)
	x, y := r.ABegin-1, r.BBegin-1
	pts = append(pts, plotter.XY{X: float64(x), Y: float64(y)})
	for k := 0; k < r.Len; k++ {
		if r.AlignA[k] != '-' {
			x++
		}
		if r.AlignB[k] != '-' {
			y++
		}
		pts = append(pts, plotter.XY{X: float64(x), Y: float64(y)})
	}
	return pts
}

// plotPath plots the traceback path, with the image format decided by
// the file extension, e.g., png, pdf, svg.
func plotPath(r *align.Result, lenA, lenB int, title, file string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "position in sequence 1"
	p.Y.Label.Text = "position in sequence 2"
	p.X.Min, p.X.Max = 0, float64(lenA)
	p.Y.Min, p.Y.Max = 0, float64(lenB)
	p.Add(plotter.NewGrid())

	if pts := pathPoints(r); len(pts) > 0 {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrap(err, "plotting alignment path")
		}
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
	}

	if err := p.Save(5*vg.Inch, 5*vg.Inch, file); err != nil {
		return errors.Wrapf(err, "saving plot: %s", file)
	}
	return nil
}
