// Package config loads the sipmodel settings. Values are layered with viper:
// built-in defaults, an optional YAML file, SIPMODEL_* environment variables
// and finally the flags set on the command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when the merged settings are unusable.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Setting keys. Each key is also the flag name and, upper-cased with the
// SIPMODEL_ prefix, the environment variable.
const (
	KeyConfig   = "config"
	KeyModel    = "model"
	KeyFMin     = "fmin"
	KeyFMax     = "fmax"
	KeyN        = "n"
	KeyPars     = "pars"
	KeyParams   = "params"
	KeyView     = "view"
	KeyOut      = "out"
	KeyRow      = "row"
	KeyFreqs    = "freqs"
	KeyTable    = "table"
	KeyJacobian = "jacobian"
	KeyLog10    = "log10"
	KeyLabels   = "labels"
	KeyTitle    = "title"
	KeyLogLevel = "log-level"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "SIPMODEL"

// Config is the merged sipmodel configuration.
type Config struct {
	Model string
	FMin  float64
	FMax  float64
	N     int
	// Pars is the flat parameter vector; ParamsFile, when set, wins.
	Pars       []float64
	ParamsFile string
	View       string
	Out        string
	Row        bool
	FreqsOut   string
	Table      bool
	Jacobian   bool
	Log10      bool
	Labels     string
	Title      string
	LogLevel   string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Model:    "res",
		FMin:     1e-3,
		FMax:     1e4,
		N:        22,
		Pars:     []float64{100, 0.1, 0.04, 0.6},
		View:     "rmag_rpha",
		Labels:   "material",
		LogLevel: "info",
	}
}

// RegisterFlags defines one flag per setting on fs with the defaults of
// [Default].
func RegisterFlags(fs *flag.FlagSet) {
	d := Default()
	fs.String(KeyConfig, "", "path to a YAML config file")
	fs.String(KeyModel, d.Model, "model formulation: res or cond")
	fs.Float64(KeyFMin, d.FMin, "lowest frequency [Hz]")
	fs.Float64(KeyFMax, d.FMax, "highest frequency [Hz]")
	fs.Int(KeyN, d.N, "number of log-spaced frequencies")
	fs.String(KeyPars, formatFloats(d.Pars), "comma-separated flat parameters: base,m...,tau...,c...")
	fs.String(KeyParams, "", "YAML file with keyed parameters (overrides -pars)")
	fs.String(KeyView, d.View, "exported view: rmag_rpha, cmag_cpha, rre_rim or cre_cim")
	fs.String(KeyOut, "", "one-line data file (default stdout)")
	fs.Bool(KeyRow, false, "write the data as one row instead of one value per line")
	fs.String(KeyFreqs, "", "frequencies file")
	fs.Bool(KeyTable, false, "print the plot panels as a table")
	fs.Bool(KeyJacobian, false, "print the Re/Im Jacobian")
	fs.Bool(KeyLog10, false, "differentiate with respect to log10 parameters")
	fs.String(KeyLabels, d.Labels, "label set of the table: material or meas")
	fs.String(KeyTitle, "", "table title")
	fs.String(KeyLogLevel, d.LogLevel, "log level: debug, info, warn or error")
}

// Load merges defaults, the config file named by the config flag, the
// environment and the flags explicitly set on fs. fs must be parsed.
func Load(fs *flag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	set := map[string]string{}
	if fs != nil {
		fs.Visit(func(f *flag.Flag) {
			set[f.Name] = f.Value.String()
		})
	}

	path := set[KeyConfig]
	if path == "" {
		path = v.GetString(KeyConfig)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	for name, value := range set {
		v.Set(name, value)
	}

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyConfig, "")
	v.SetDefault(KeyModel, d.Model)
	v.SetDefault(KeyFMin, d.FMin)
	v.SetDefault(KeyFMax, d.FMax)
	v.SetDefault(KeyN, d.N)
	v.SetDefault(KeyPars, d.Pars)
	v.SetDefault(KeyParams, "")
	v.SetDefault(KeyView, d.View)
	v.SetDefault(KeyOut, "")
	v.SetDefault(KeyRow, false)
	v.SetDefault(KeyFreqs, "")
	v.SetDefault(KeyTable, false)
	v.SetDefault(KeyJacobian, false)
	v.SetDefault(KeyLog10, false)
	v.SetDefault(KeyLabels, d.Labels)
	v.SetDefault(KeyTitle, "")
	v.SetDefault(KeyLogLevel, d.LogLevel)
}

func decode(v *viper.Viper) (*Config, error) {
	pars, err := parseFloats(v.Get(KeyPars))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, KeyPars, err)
	}

	cfg := &Config{
		Model:      strings.ToLower(strings.TrimSpace(v.GetString(KeyModel))),
		FMin:       v.GetFloat64(KeyFMin),
		FMax:       v.GetFloat64(KeyFMax),
		N:          v.GetInt(KeyN),
		Pars:       pars,
		ParamsFile: v.GetString(KeyParams),
		View:       v.GetString(KeyView),
		Out:        v.GetString(KeyOut),
		Row:        v.GetBool(KeyRow),
		FreqsOut:   v.GetString(KeyFreqs),
		Table:      v.GetBool(KeyTable),
		Jacobian:   v.GetBool(KeyJacobian),
		Log10:      v.GetBool(KeyLog10),
		Labels:     v.GetString(KeyLabels),
		Title:      v.GetString(KeyTitle),
		LogLevel:   v.GetString(KeyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the frequency grid settings.
func (c *Config) Validate() error {
	switch {
	case c.N < 2:
		return fmt.Errorf("%w: %s must be at least 2, got %d", ErrInvalidConfig, KeyN, c.N)
	case !(c.FMin > 0):
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, KeyFMin, c.FMin)
	case !(c.FMax > c.FMin):
		return fmt.Errorf("%w: %s (%v) must exceed %s (%v)", ErrInvalidConfig, KeyFMax, c.FMax, KeyFMin, c.FMin)
	}
	return nil
}

// parseFloats accepts a comma or whitespace separated string (flags,
// environment) or a sequence (YAML config, defaults).
func parseFloats(raw any) ([]float64, error) {
	if s, ok := raw.(string); ok {
		fields := strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		out := make([]float64, 0, len(fields))
		for _, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	}
	var items []any
	switch t := raw.(type) {
	case []float64:
		return append([]float64(nil), t...), nil
	case []any:
		items = t
	default:
		return nil, fmt.Errorf("unsupported value %v (%T)", raw, raw)
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		x, err := cast.ToFloat64E(item)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func formatFloats(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
