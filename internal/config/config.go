/*
Package config maps environment variables onto the settings of a font
catalog.

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, a configuration is read-only. It is handed to constructors
(fontmeta.NewFromConfig) instead of being kept in global state.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/npillmayer/schuko/schukonf/testconfig"
)

// Config holds the runtime configuration of a font catalog.
type Config struct {
	// Font directories to scan; platform defaults if empty
	Dirs []string `env:"FONTMETA_DIRS" envSeparator:":"`

	// Restrict listings to faces supporting the Latin script
	LatinOnly bool `env:"FONTMETA_LATIN_ONLY" envDefault:"true"`

	// Number of font files extracted in parallel
	Workers int `env:"FONTMETA_WORKERS" envDefault:"1"`

	// Trace level: Debug, Info or Error
	TraceLevel string `env:"FONTMETA_TRACE" envDefault:"Error"`

	// Resolve symbolic links found in font directories
	FollowSymlinks bool `env:"FONTMETA_FOLLOW_SYMLINKS" envDefault:"true"`
}

// traceKeys are the tracers of this module.
var traceKeys = []string{
	"font.opentype",
	"fontmeta",
	"fontmeta.query",
	"fontmeta.scan",
	"fontmeta.cli",
}

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the value ranges of cfg.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("config: FONTMETA_WORKERS must be positive, is %d", c.Workers)
	}
	switch strings.ToLower(c.TraceLevel) {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("config: invalid trace level %q", c.TraceLevel)
	}
	return nil
}

// TraceConf returns a tracing configuration setting all tracers of this
// module to the configured trace level, suitable for trace2go.ConfigureRoot.
func (c *Config) TraceConf() testconfig.Conf {
	level := c.TraceLevel
	if level == "" {
		level = "Error"
	}
	level = strings.ToUpper(level[:1]) + strings.ToLower(level[1:])
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	return conf
}
