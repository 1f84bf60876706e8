// Package render exports drawing jobs as images: a chart of the speed
// profile and an SVG of the traced path.
package render

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rgyhuang/BoardBot/internal/kinematics"
)

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("nothing to render")

// profileXYs samples speed and distance travelled at n+1 evenly spaced
// instants over the profile.
func profileXYs(p kinematics.Profile, n int) (speed, dist plotter.XYs) {
	n = max(1, n)
	speed = make(plotter.XYs, n+1)
	dist = make(plotter.XYs, n+1)
	T := p.Duration()
	for i := range speed {
		t := T * float64(i) / float64(n)
		speed[i].X, speed[i].Y = t, p.Speed(t)
		dist[i].X, dist[i].Y = t, p.Travelled(t)
	}
	return speed, dist
}

// ProfilePlot charts speed and distance travelled against time, sampling p
// at n+1 instants, and saves it to file. The image format follows the file
// extension (.png, .svg, .pdf, ...).
func ProfilePlot(p kinematics.Profile, n int, file string) error {
	if p.Duration() <= 0 {
		return fmt.Errorf("%s profile: %w", p.Shape(), ErrEmpty)
	}
	speed, dist := profileXYs(p, n)

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s speed profile", p.Shape())
	pl.X.Label.Text = "time (s)"
	pl.Y.Label.Text = "speed, distance"
	pl.Add(plotter.NewGrid())

	sl, err := plotter.NewLine(speed)
	if err != nil {
		return err
	}
	sl.LineStyle.Width = vg.Points(2)
	dl, err := plotter.NewLine(dist)
	if err != nil {
		return err
	}
	dl.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	pl.Add(sl, dl)
	pl.Legend.Add("speed", sl)
	pl.Legend.Add("distance", dl)
	pl.Legend.Top = true

	if err := pl.Save(6*vg.Inch, 4*vg.Inch, file); err != nil {
		return fmt.Errorf("saving profile plot: %w", err)
	}
	return nil
}
