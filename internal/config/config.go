// Package config loads CLI settings from flags, BITLY_* environment
// variables, an optional YAML/JSON config file and defaults, in that order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wesleyorama2/bitly/bitly"
)

// EnvPrefix prefixes every environment variable, e.g. BITLY_API_URL.
const EnvPrefix = "BITLY"

// Config holds all CLI configuration.
type Config struct {
	// API
	AccessToken string
	APIURL      string
	APIVersion  string
	Domain      string
	Scheme      string
	Timeout     time.Duration

	// Output
	Output  string
	NoColor bool
	Verbose bool

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string

	// SearchPaths are directories searched for config.yaml (or .json) when
	// File is empty. A missing file there is not an error.
	SearchPaths []string

	// Flags are bound on top of everything else; only flags the user
	// actually set take precedence.
	Flags *pflag.FlagSet
}

// DefaultSearchPaths returns ~/.bitly when the home directory is known.
func DefaultSearchPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, ".bitly")}
}

// Load loads configuration from all sources with proper precedence.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	ApplyDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyToken, EnvPrefix+"_TOKEN", EnvPrefix+"_ACCESS_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if err := readConfigFile(v, opts); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		if err := v.BindPFlags(opts.Flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	return &Config{
		AccessToken: v.GetString(KeyToken),
		APIURL:      v.GetString(KeyAPIURL),
		APIVersion:  v.GetString(KeyAPIVersion),
		Domain:      v.GetString(KeyDomain),
		Scheme:      v.GetString(KeyScheme),
		Timeout:     v.GetDuration(KeyTimeout),
		Output:      strings.ToLower(v.GetString(KeyOutput)),
		NoColor:     v.GetBool(KeyNoColor),
		Verbose:     v.GetBool(KeyVerbose),
		ConfigFile:  v.ConfigFileUsed(),
	}, nil
}

func readConfigFile(v *viper.Viper, opts Options) error {
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		return nil
	}

	if len(opts.SearchPaths) == 0 {
		return nil
	}

	for _, path := range opts.SearchPaths {
		v.AddConfigPath(path)
	}
	v.SetConfigName("config")

	// Config file is optional when discovered
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// ClientOptions returns the bitly.Client options matching the configuration.
func (c *Config) ClientOptions() []bitly.Option {
	return []bitly.Option{
		bitly.WithConfig(bitly.Config{
			APIURL:     c.APIURL,
			APIVersion: c.APIVersion,
			Domain:     c.Domain,
			Scheme:     c.Scheme,
		}),
		bitly.WithTimeout(c.Timeout),
	}
}

// MaskedToken returns the access token with all but its last four
// characters hidden.
func (c *Config) MaskedToken() string {
	const visible = 4
	if c.AccessToken == "" {
		return ""
	}
	if len(c.AccessToken) <= visible {
		return strings.Repeat("*", len(c.AccessToken))
	}
	return strings.Repeat("*", len(c.AccessToken)-visible) + c.AccessToken[len(c.AccessToken)-visible:]
}
