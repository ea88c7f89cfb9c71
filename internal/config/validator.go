package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) []ValidationError {
	var errs []ValidationError

	if config.AccessToken == "" {
		errs = append(errs, ValidationError{
			Path:    KeyToken,
			Message: fmt.Sprintf("access token is required (--%s, %s_TOKEN or config file)", KeyToken, EnvPrefix),
		})
	}

	if config.APIURL == "" {
		errs = append(errs, ValidationError{Path: KeyAPIURL, Message: "api url cannot be empty"})
	} else if strings.Contains(config.APIURL, "://") || strings.Contains(config.APIURL, "/") {
		errs = append(errs, ValidationError{
			Path:    KeyAPIURL,
			Message: fmt.Sprintf("expected a host such as api-ssl.bitly.com, got %q", config.APIURL),
		})
	}

	if config.APIVersion == "" {
		errs = append(errs, ValidationError{Path: KeyAPIVersion, Message: "api version cannot be empty"})
	}

	if config.Scheme != "http" && config.Scheme != "https" {
		errs = append(errs, ValidationError{
			Path:    KeyScheme,
			Message: fmt.Sprintf("invalid scheme: %s", config.Scheme),
		})
	}

	if config.Timeout < 0 {
		errs = append(errs, ValidationError{Path: KeyTimeout, Message: "timeout cannot be negative"})
	}

	switch config.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		errs = append(errs, ValidationError{
			Path:    KeyOutput,
			Message: fmt.Sprintf("invalid output format '%s', must be one of: %s", config.Output, strings.Join([]string{OutputText, OutputJSON, OutputYAML}, ", ")),
		})
	}

	return errs
}

// Validate returns all validation errors joined, or nil.
func Validate(config *Config) error {
	errs := ValidateConfig(config)
	if len(errs) == 0 {
		return nil
	}

	joined := make([]error, len(errs))
	for i, err := range errs {
		joined[i] = err
	}
	return errors.Join(joined...)
}
