package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		AccessToken: "token",
		APIURL:      "api-ssl.bitly.com",
		APIVersion:  "v3",
		Domain:      "bit.ly",
		Scheme:      "https",
		Timeout:     30 * time.Second,
		Output:      OutputText,
	}
}

// TestValidationError_Error tests the ValidationError.Error() method
func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Path: "api-url", Message: "api url cannot be empty"}
	if err.Error() != "api-url: api url cannot be empty" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *Config)
		expectedPaths []string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:          "missing token",
			mutate:        func(c *Config) { c.AccessToken = "" },
			expectedPaths: []string{"token"},
		},
		{
			name:          "api url with scheme",
			mutate:        func(c *Config) { c.APIURL = "https://api-ssl.bitly.com" },
			expectedPaths: []string{"api-url"},
		},
		{
			name:   "empty api url and version",
			mutate: func(c *Config) {
				c.APIURL = ""
				c.APIVersion = ""
			},
			expectedPaths: []string{"api-url", "api-version"},
		},
		{
			name:          "bad scheme",
			mutate:        func(c *Config) { c.Scheme = "ftp" },
			expectedPaths: []string{"scheme"},
		},
		{
			name:          "negative timeout",
			mutate:        func(c *Config) { c.Timeout = -time.Second },
			expectedPaths: []string{"timeout"},
		},
		{
			name:          "unknown output",
			mutate:        func(c *Config) { c.Output = "xml" },
			expectedPaths: []string{"output"},
		},
		{
			name:          "zero timeout is allowed",
			mutate:        func(c *Config) { c.Timeout = 0 },
			expectedPaths: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			errs := ValidateConfig(cfg)
			if len(errs) != len(tt.expectedPaths) {
				t.Fatalf("Expected %d errors, got %d: %v", len(tt.expectedPaths), len(errs), errs)
			}
			for i, path := range tt.expectedPaths {
				if errs[i].Path != path {
					t.Errorf("Expected error %d at %s, got %s", i, path, errs[i].Path)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	cfg := validConfig()
	cfg.AccessToken = ""
	cfg.Output = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected error")
	}
	for _, fragment := range []string{"token:", "output:"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("Expected %q in %q", fragment, err.Error())
		}
	}
}
