package config

import (
	"github.com/spf13/viper"

	"github.com/wesleyorama2/bitly/bitly"
	apihttp "github.com/wesleyorama2/bitly/internal/http"
)

// Configuration keys. They double as CLI flag names so flags bind directly.
const (
	KeyToken      = "token"
	KeyAPIURL     = "api-url"
	KeyAPIVersion = "api-version"
	KeyDomain     = "domain"
	KeyScheme     = "scheme"
	KeyTimeout    = "timeout"
	KeyOutput     = "output"
	KeyNoColor    = "no-color"
	KeyVerbose    = "verbose"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ApplyDefaults sets default configuration values in the provided Viper instance.
func ApplyDefaults(v *viper.Viper) {
	// API
	v.SetDefault(KeyAPIURL, bitly.DefaultAPIURL)
	v.SetDefault(KeyAPIVersion, bitly.DefaultAPIVersion)
	v.SetDefault(KeyDomain, bitly.DefaultDomain)
	v.SetDefault(KeyScheme, bitly.DefaultScheme)
	v.SetDefault(KeyTimeout, apihttp.DefaultTimeout)

	// Output
	v.SetDefault(KeyOutput, OutputText)
	v.SetDefault(KeyNoColor, false)
	v.SetDefault(KeyVerbose, false)
}
