package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-sip/internal/config"
	"github.com/cwbudde/algo-sip/sip/colecole"
	"github.com/cwbudde/algo-sip/sip/params"
	"github.com/cwbudde/algo-sip/sip/plot"
	"github.com/cwbudde/algo-sip/sip/spectrum"
)

func run(cfg *config.Config, stdout io.Writer, logger zerolog.Logger) error {
	domain, err := colecole.ParseDomain(cfg.Model)
	if err != nil {
		return err
	}

	freqs := spectrum.LogFrequencies(cfg.FMin, cfg.FMax, cfg.N)
	md, err := colecole.New(domain, freqs)
	if err != nil {
		return err
	}

	pars, err := loadParameters(cfg)
	if err != nil {
		return err
	}
	st, err := md.Normalize(pars)
	if err != nil {
		return err
	}
	_, terms := st.Dims()

	resp, err := md.Response(pars)
	if err != nil {
		return err
	}
	view, err := resp.View(cfg.View)
	if err != nil {
		return err
	}

	logger.Info().
		Str("model", domain.Name()).
		Int("terms", terms).
		Int("frequencies", len(freqs)).
		Str("view", cfg.View).
		Msg("computed spectrum")
	logger.Debug().Stringer("parameters", st).Msg("normalized parameters")

	write := spectrum.WriteColumn
	if cfg.Row {
		write = spectrum.WriteRow
	}
	if err := writeTo(cfg.Out, stdout, func(w io.Writer) error {
		return write(w, spectrum.ToOneLine(view))
	}); err != nil {
		return err
	}
	if cfg.Out != "" {
		logger.Info().Str("output", cfg.Out).Msg("wrote spectrum")
	}

	if cfg.FreqsOut != "" {
		if err := writeTo(cfg.FreqsOut, nil, func(w io.Writer) error {
			return spectrum.WriteColumn(w, freqs)
		}); err != nil {
			return err
		}
		logger.Info().Str("output", cfg.FreqsOut).Msg("wrote frequencies")
	}

	if cfg.Table {
		set, err := plot.ParseLabelSet(cfg.Labels)
		if err != nil {
			return err
		}
		pc := plot.Config{Title: cfg.Title, LabelSet: set}
		if err := plot.Plot(plot.TableRenderer{Out: stdout}, "", resp, pc, plot.StyleFromEnv()); err != nil {
			return err
		}
	}

	if cfg.Jacobian {
		jac := md.JacobianReIm
		if cfg.Log10 {
			jac = md.JacobianLog10ReIm
		}
		J, err := jac(pars)
		if err != nil {
			return err
		}
		if err := writeMatrix(stdout, J); err != nil {
			return err
		}
	}
	return nil
}

func loadParameters(cfg *config.Config) (params.Parameters, error) {
	if cfg.ParamsFile == "" {
		return params.Flat(cfg.Pars), nil
	}
	f, err := os.Open(cfg.ParamsFile)
	if err != nil {
		return nil, fmt.Errorf("sipmodel: open parameters: %w", err)
	}
	defer f.Close()
	return params.LoadYAML(f)
}

// writeTo calls fn with the file at path, or with fallback when path is
// empty.
func writeTo(path string, fallback io.Writer, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fn(fallback)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sipmodel: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}

func writeMatrix(w io.Writer, m *mat.Dense) error {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		if err := spectrum.WriteRow(w, m.RawRowView(i)); err != nil {
			return err
		}
	}
	return nil
}
