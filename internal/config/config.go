// Package config loads solver settings and problems from flags, environment
// variables and configuration files.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/askiada/tabsimplex"
)

const envPrefix = "TABSIMPLEX"

// Keys understood by Load.
const (
	KeyRule          = "rule"
	KeyMaxIterations = "max_iterations"
	KeyOutput        = "output"
	KeyTrace         = "trace"
	KeyVerify        = "verify"
	KeyProblem       = "problem"
)

// Config holds everything a solve needs besides the tableau itself.
type Config struct {
	Rule          string             `mapstructure:"rule"`
	MaxIterations int                `mapstructure:"max_iterations"`
	Output        string             `mapstructure:"output"`
	Trace         bool               `mapstructure:"trace"`
	Verify        bool               `mapstructure:"verify"`
	Problem       tabsimplex.Problem `mapstructure:"problem"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRule, "dantzig")
	v.SetDefault(KeyMaxIterations, tabsimplex.DefaultMaxIterations)
	v.SetDefault(KeyOutput, "text")
	v.SetDefault(KeyTrace, false)
	v.SetDefault(KeyVerify, false)
}

// AddFlags registers the solver flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(KeyRule, "dantzig", "Pivot rule: dantzig or bland")
	fs.Int("max-iterations", tabsimplex.DefaultMaxIterations, "Maximum number of pivots")
	fs.StringP(KeyOutput, "o", "text", "Output format: text, yaml or json")
	fs.Bool(KeyTrace, false, "Print the tableau after every pivot")
	fs.Bool(KeyVerify, false, "Cross-check the optimum with the revised simplex method")
}

// Load reads the configuration file at path, if any, then environment
// variables prefixed with TABSIMPLEX_, then the flags in fs that were set.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	if fs != nil {
		for key, name := range map[string]string{
			KeyRule:          KeyRule,
			KeyMaxIterations: "max-iterations",
			KeyOutput:        KeyOutput,
			KeyTrace:         KeyTrace,
			KeyVerify:        KeyVerify,
		} {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

// Validate checks the solver settings. The problem is validated separately
// since not every command reads one from the configuration.
func (c *Config) Validate() error {
	if _, err := tabsimplex.RuleByName(c.Rule); err != nil {
		return err
	}
	switch c.Output {
	case "text", "yaml", "json":
	default:
		return errors.Errorf("unknown output format %q", c.Output)
	}
	if c.MaxIterations <= 0 {
		return errors.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	}
	return nil
}

// PivotRule returns the configured pivot rule.
func (c *Config) PivotRule() tabsimplex.PivotRule {
	r, err := tabsimplex.RuleByName(c.Rule)
	if err != nil {
		return tabsimplex.Dantzig{}
	}
	return r
}
