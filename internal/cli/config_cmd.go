package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/bitly/internal/config"
)

// configView is the printable form of the effective configuration.
type configView struct {
	Token      string `json:"token" yaml:"token"`
	APIURL     string `json:"api-url" yaml:"api-url"`
	APIVersion string `json:"api-version" yaml:"api-version"`
	Domain     string `json:"domain" yaml:"domain"`
	Scheme     string `json:"scheme" yaml:"scheme"`
	Timeout    string `json:"timeout" yaml:"timeout"`
	Output     string `json:"output" yaml:"output"`
	ConfigFile string `json:"config-file,omitempty" yaml:"config-file,omitempty"`
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging flags, BITLY_* environment
variables, the config file and defaults. The access token is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			view := configView{
				Token:      cfg.MaskedToken(),
				APIURL:     cfg.APIURL,
				APIVersion: cfg.APIVersion,
				Domain:     cfg.Domain,
				Scheme:     cfg.Scheme,
				Timeout:    cfg.Timeout.String(),
				Output:     cfg.Output,
				ConfigFile: cfg.ConfigFile,
			}
			if err := writeConfig(cmd.OutOrStdout(), cfg.Output, view); err != nil {
				return err
			}

			for _, verr := range config.ValidateConfig(cfg) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", verr)
			}
			return nil
		},
	}
}

func writeConfig(w io.Writer, format string, view configView) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(view)
	default:
		rows := []struct{ label, value string }{
			{config.KeyToken, view.Token},
			{config.KeyAPIURL, view.APIURL},
			{config.KeyAPIVersion, view.APIVersion},
			{config.KeyDomain, view.Domain},
			{config.KeyScheme, view.Scheme},
			{config.KeyTimeout, view.Timeout},
			{config.KeyOutput, view.Output},
			{"config-file", view.ConfigFile},
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, "%-12s %s\n", row.label+":", row.value); err != nil {
				return err
			}
		}
		return nil
	}
}
