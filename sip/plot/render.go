package plot

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-sip/sip/spectrum"
)

// Renderer writes a figure to filename.
type Renderer interface {
	Render(filename string, fig *Figure) error
}

// Plot builds the figure of resp and hands it to r.
func Plot(r Renderer, filename string, resp *spectrum.Response, cfg Config, style Style) error {
	fig, err := Panels(resp, cfg, style)
	if err != nil {
		return err
	}
	return r.Render(filename, fig)
}

// TableRenderer renders a figure as an aligned text table, one row per
// data point. It writes to Out when set and creates filename otherwise.
type TableRenderer struct {
	Out io.Writer
}

// Render implements Renderer.
func (tr TableRenderer) Render(filename string, fig *Figure) (err error) {
	w := tr.Out
	if w == nil {
		var f *os.File
		if f, err = os.Create(filename); err != nil {
			return fmt.Errorf("plot: create %s: %w", filename, err)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return writeTable(w, fig)
}

func writeTable(w io.Writer, fig *Figure) error {
	if fig.Title != "" {
		if _, err := fmt.Fprintf(w, "# %s\n", fig.Title); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "panel\tseries\tfrequency [Hz]\tvalue\tlabel")
	for _, p := range fig.Panels {
		for _, s := range p.Series {
			name := s.Name
			if s.Dashed {
				name += " (dashed)"
			}
			for i := range s.X {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					p.ID, name, formatValue(s.X[i]), formatValue(s.Y[i]), p.YLabel)
			}
		}
	}
	return tw.Flush()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
