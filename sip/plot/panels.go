package plot

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sip/sip/spectrum"
)

// ErrNoResponse is returned when Panels is called without a spectrum.
var ErrNoResponse = errors.New("plot: no response")

// PanelID identifies one of the four panels.
type PanelID int

const (
	PanelRMag PanelID = iota
	PanelRPha
	PanelCRe
	PanelCIm
)

func (id PanelID) String() string {
	switch id {
	case PanelRMag:
		return QuantityRMag
	case PanelRPha:
		return QuantityRPha
	case PanelCRe:
		return QuantityCRe
	case PanelCIm:
		return QuantityCIm
	default:
		return fmt.Sprintf("PanelID(%d)", int(id))
	}
}

// Scale is an axis scale.
type Scale int

const (
	Linear Scale = iota
	Log
)

func (s Scale) String() string {
	if s == Log {
		return "log"
	}
	return "linear"
}

// Range is a closed axis interval.
type Range struct {
	Min, Max float64
}

// AxisLimits overrides the automatic limits of a panel. Nil axes keep the
// renderer default.
type AxisLimits struct {
	X, Y *Range
}

// Series is one line of a panel.
type Series struct {
	Name   string
	X, Y   []float64
	Dashed bool
}

// Panel is one subplot.
type Panel struct {
	ID       PanelID
	Row, Col int
	XLabel   string
	YLabel   string
	XScale   Scale
	YScale   Scale
	Series   []Series
	Limits   AxisLimits
}

// Figure is a complete 2x2 plot.
type Figure struct {
	Title  string
	Style  Style
	Panels []Panel
}

// Config selects what Panels puts into a figure.
type Config struct {
	Title string
	// Reciprocal is drawn dashed on top of the primary spectrum.
	Reciprocal *spectrum.Response
	Limits     map[PanelID]AxisLimits
	// LabelSet defaults to Material.
	LabelSet LabelSet
}

const frequencyLabel = "frequency [Hz]"

type panelLayout struct {
	id       PanelID
	row, col int
	yScale   Scale
	values   func(*spectrum.Response) []float64
}

var layout = []panelLayout{
	{PanelRMag, 0, 0, Linear, func(r *spectrum.Response) []float64 { return r.RMag }},
	{PanelRPha, 0, 1, Linear, negated(func(r *spectrum.Response) []float64 { return r.RPha })},
	{PanelCRe, 1, 0, Log, func(r *spectrum.Response) []float64 { return r.CRe }},
	{PanelCIm, 1, 1, Log, func(r *spectrum.Response) []float64 { return r.CIm }},
}

func negated(f func(*spectrum.Response) []float64) func(*spectrum.Response) []float64 {
	return func(r *spectrum.Response) []float64 {
		src := f(r)
		out := make([]float64, len(src))
		vecmath.ScaleBlock(out, src, -1)
		return out
	}
}

// Panels builds the standard figure for resp.
func Panels(resp *spectrum.Response, cfg Config, style Style) (*Figure, error) {
	if resp == nil {
		return nil, ErrNoResponse
	}
	set := cfg.LabelSet
	if set == 0 {
		set = Material
	}

	fig := &Figure{Title: cfg.Title, Style: style, Panels: make([]Panel, 0, len(layout))}
	for _, l := range layout {
		ylabel, err := Label(l.id.String(), set, style.TextMode())
		if err != nil {
			return nil, err
		}
		p := Panel{
			ID:     l.id,
			Row:    l.row,
			Col:    l.col,
			YLabel: ylabel,
			XScale: Log,
			YScale: l.yScale,
			Series: []Series{{
				Name: "primary",
				X:    append([]float64(nil), resp.Frequencies...),
				Y:    append([]float64(nil), l.values(resp)...),
			}},
			Limits: cfg.Limits[l.id],
		}
		if l.row == 1 {
			p.XLabel = frequencyLabel
		}
		if rec := cfg.Reciprocal; rec != nil {
			p.Series = append(p.Series, Series{
				Name:   "reciprocal",
				X:      append([]float64(nil), rec.Frequencies...),
				Y:      append([]float64(nil), l.values(rec)...),
				Dashed: true,
			})
		}
		fig.Panels = append(fig.Panels, p)
	}
	return fig, nil
}
