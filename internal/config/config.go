// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the CLI reads (MATCHER_THRESHOLD, ...)
const EnvPrefix = "MATCHER"

// Defaults
const (
	DefaultThreshold = 0.7
	DefaultWorkers   = 4
	DefaultFormat    = "json"
)

// Config represents the CLI configuration. Values come from, in increasing
// precedence: defaults, a YAML/JSON/TOML config file, MATCHER_* environment
// variables, and explicitly set command-line flags.
type Config struct {
	// Inputs
	Profiles string `mapstructure:"profiles"` // Directory of candidate profile text files
	Job      string `mapstructure:"job"`      // Path to job description text file

	// Outputs
	Out        string `mapstructure:"out"`                                       // Ranked export path; stdout when empty
	MatchedOut string `mapstructure:"matched-out"`                               // Thresholded export path
	Format     string `mapstructure:"format" validate:"required,oneof=json csv"` // Export encoding

	// Matching
	Threshold float64 `mapstructure:"threshold" validate:"gte=0,lte=1"`  // Composite cutoff for the matched subset
	MinYears  float64 `mapstructure:"min-years" validate:"gte=0,lte=60"` // Hard experience filter in years; 0 disables
	Workers   int     `mapstructure:"workers" validate:"gte=1,lte=256"`  // Concurrent profile workers
	Synonyms  bool    `mapstructure:"synonyms"`                          // Match skills through the alias table

	// Storage
	DatabaseURL string `mapstructure:"database-url" validate:"omitempty,startswith=postgres"` // PostgreSQL connection URL

	// Behavior
	Verbose bool `mapstructure:"verbose"` // Print boxed summaries to stderr
}

// flagAliases maps flag names onto config keys where they differ
var flagAliases = map[string]string{
	"db-url": "database-url",
}

// Load reads configuration from path (optional) and the environment, then
// overlays any flags that were set explicitly. The result is validated.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	// every key needs a default so AutomaticEnv values reach Unmarshal
	v.SetDefault("profiles", "")
	v.SetDefault("job", "")
	v.SetDefault("out", "")
	v.SetDefault("matched-out", "")
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("threshold", DefaultThreshold)
	v.SetDefault("min-years", 0.0)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("synonyms", false)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database-url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind database url environment: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := f.Name
			if alias, ok := flagAliases[key]; ok {
				key = alias
			}
			if err := v.BindPFlag(key, f); err != nil {
				bindErr = errors.Join(bindErr, err)
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required inputs are enforced by the commands, not here.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
