// Command sipmodel computes Cole-Cole SIP spectra and writes them in the
// flat one-line layout used by downstream plotting and inversion tools.
//
// Usage:
//
//	sipmodel [flags]
//
// Settings are taken from built-in defaults, an optional YAML file given
// with -config, SIPMODEL_* environment variables and the command line, in
// increasing order of precedence.
//
// Examples:
//
//	sipmodel -pars 100,0.1,0.04,0.6 -out res_cc_01_data.dat -freqs res_cc_frequencies.dat
//	sipmodel -model cond -pars 0.01,0.1,0.2,0.04,0.0001,0.4,0.8 -view cre_cim
//	sipmodel -params pars.yaml -table
//	sipmodel -pars 100,0.1,0.04,0.6 -n 5 -jacobian -log10
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-sip/internal/config"
)

func main() {
	fs := flag.CommandLine
	config.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sipmodel [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Computes a Cole-Cole SIP spectrum and writes the selected view.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sipmodel -pars 100,0.1,0.04,0.6 -out data.dat -freqs frequencies.dat\n")
		fmt.Fprintf(os.Stderr, "  sipmodel -model cond -pars 0.01,0.1,0.04,0.6 -view cre_cim\n")
		fmt.Fprintf(os.Stderr, "  sipmodel -params pars.yaml -table\n")
	}
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(fs)
	if err != nil {
		logger.Error().Err(err).Msg("load configuration")
		os.Exit(1)
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(lvl)
	} else {
		logger.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		logger = logger.Level(zerolog.InfoLevel)
	}

	if err := run(cfg, os.Stdout, logger); err != nil {
		logger.Error().Err(err).Msg("sipmodel failed")
		os.Exit(1)
	}
}
