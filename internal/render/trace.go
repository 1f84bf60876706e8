package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v5"

	"github.com/rgyhuang/BoardBot/internal/integrator"
	"github.com/rgyhuang/BoardBot/internal/waypoint"
)

const traceSource = `<svg xmlns="http://www.w3.org/2000/svg" width="{{ width }}" height="{{ height }}" viewBox="{{ viewbox }}">
<title>{{ title }}</title>
<style>
  .ink { fill: none; stroke: black; stroke-width: {{ ink }}; stroke-linejoin: round; }
  .travel { fill: none; stroke: gray; stroke-width: {{ thin }}; stroke-dasharray: {{ dash }}; }
  .anchor { fill: red; }
</style>
{% for a in anchors %}<circle class="anchor" cx="{{ a.X }}" cy="{{ a.Y }}" r="{{ a.R }}"/>
{% endfor %}{% for s in strokes %}{% if s.Ink or travel %}<polyline class="{% if s.Ink %}ink{% else %}travel{% endif %}" points="{{ s.Points }}"/>
{% endif %}{% endfor %}</svg>
`

var traceTemplate = pongo2.Must(pongo2.NewSet("render", pongo2.DefaultLoader).FromString(traceSource))

// TraceOptions controls TraceSVG.
type TraceOptions struct {
	Title string
	Width int // pixels; the height follows the aspect of the drawing
	// AnchorSeparation, when positive, marks the cable anchors at (0, 0)
	// and (AnchorSeparation, 0) and includes them in the frame.
	AnchorSeparation float64
	// Travel draws pen-up moves as dashed lines.
	Travel bool
}

type stroke struct {
	Ink    bool
	Points string
}

type anchor struct {
	X, Y, R string
}

// strokes splits the pointer trace into runs of equal pen state. Each run
// starts where the previous one ended.
func strokes(ticks []integrator.Tick) []stroke {
	var (
		out []stroke
		b   strings.Builder
	)
	pen := ticks[0].Pen
	prev := ticks[0]
	for i, tk := range ticks {
		if i > 0 && tk.Pen != pen {
			out = append(out, stroke{Ink: pen == waypoint.PenDown, Points: b.String()})
			b.Reset()
			b.WriteString(point(prev.X, prev.Y))
			pen = tk.Pen
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(point(tk.X, tk.Y))
		prev = tk
	}
	return append(out, stroke{Ink: pen == waypoint.PenDown, Points: b.String()})
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 5, 64) }

func point(x, y float64) string { return num(x) + "," + num(y) }

// TraceSVG writes the pointer trace as an SVG document in plane units, y
// pointing down the board.
func TraceSVG(w io.Writer, ticks []integrator.Tick, opts TraceOptions) error {
	if len(ticks) == 0 {
		return fmt.Errorf("trace: %w", ErrEmpty)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, tk := range ticks {
		grow(tk.X, tk.Y)
	}
	var anchors []anchor
	if opts.AnchorSeparation > 0 {
		grow(0, 0)
		grow(opts.AnchorSeparation, 0)
	}

	extent := math.Max(maxX-minX, maxY-minY)
	if extent <= 0 {
		extent = 1
	}
	margin := 0.05 * extent
	vw, vh := maxX-minX+2*margin, maxY-minY+2*margin
	if opts.AnchorSeparation > 0 {
		r := num(0.01 * extent)
		anchors = []anchor{
			{X: num(0), Y: num(0), R: r},
			{X: num(opts.AnchorSeparation), Y: num(0), R: r},
		}
	}

	width := opts.Width
	if width <= 0 {
		width = 800
	}
	height := int(math.Round(float64(width) * vh / vw))

	ctx := pongo2.Context{
		"title":   opts.Title,
		"width":   width,
		"height":  height,
		"viewbox": strings.Join([]string{num(minX - margin), num(minY - margin), num(vw), num(vh)}, " "),
		"ink":     num(0.004 * extent),
		"thin":    num(0.002 * extent),
		"dash":    num(0.01 * extent),
		"anchors": anchors,
		"strokes": strokes(ticks),
		"travel":  opts.Travel,
	}
	if err := traceTemplate.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("rendering trace: %w", err)
	}
	return nil
}
