package plot

import (
	"os"
	"runtime"
)

// Style holds rendering settings shared by all figures of an application.
type Style struct {
	FontSize   float64
	LineWidth  float64
	MarkerSize float64
	// Width and Height of the figure in centimetres.
	Width, Height float64
	DPI           int
	UseLaTeX      bool
}

// Option configures a Style.
type Option func(*Style)

// WithFontSize sets the font size used for all text.
func WithFontSize(size float64) Option {
	return func(s *Style) {
		if size > 0 {
			s.FontSize = size
		}
	}
}

// WithLineWidth sets the series line width.
func WithLineWidth(w float64) Option {
	return func(s *Style) {
		if w > 0 {
			s.LineWidth = w
		}
	}
}

// WithMarkerSize sets the series marker size.
func WithMarkerSize(size float64) Option {
	return func(s *Style) {
		if size > 0 {
			s.MarkerSize = size
		}
	}
}

// WithFigureSize sets the figure size in centimetres.
func WithFigureSize(width, height float64) Option {
	return func(s *Style) {
		if width > 0 && height > 0 {
			s.Width, s.Height = width, height
		}
	}
}

// WithDPI sets the raster resolution.
func WithDPI(dpi int) Option {
	return func(s *Style) {
		if dpi > 0 {
			s.DPI = dpi
		}
	}
}

// WithLaTeX toggles LaTeX label markup.
func WithLaTeX(on bool) Option {
	return func(s *Style) {
		s.UseLaTeX = on
	}
}

// Setup returns the default style with opts applied.
func Setup(opts ...Option) Style {
	s := Style{
		FontSize:   7,
		LineWidth:  1.5,
		MarkerSize: 3,
		Width:      10,
		Height:     6,
		DPI:        300,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// StyleFromEnv is Setup with LaTeX markup taken from the environment:
// DD_USE_LATEX=1 enables it, any other value disables it, and when the
// variable is unset LaTeX is used everywhere except on Windows. opts are
// applied afterwards.
func StyleFromEnv(opts ...Option) Style {
	all := append([]Option{WithLaTeX(latexFromEnv(os.LookupEnv, runtime.GOOS))}, opts...)
	return Setup(all...)
}

func latexFromEnv(lookup func(string) (string, bool), goos string) bool {
	if v, ok := lookup("DD_USE_LATEX"); ok {
		return v == "1"
	}
	return goos != "windows"
}

// TextMode returns the label markup of the style.
func (s Style) TextMode() TextMode {
	if s.UseLaTeX {
		return LaTeX
	}
	return MathText
}
