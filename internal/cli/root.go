package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/bitly/bitly"
	"github.com/wesleyorama2/bitly/internal/config"
	apihttp "github.com/wesleyorama2/bitly/internal/http"
)

var version = "0.1.0"

// Flags that are not configuration keys.
const (
	flagConfig  = "config"
	flagExtract = "extract"
	flagSchema  = "schema"
)

// NewRootCmd builds the bitly command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "bitly",
		Short:   "A command-line client for the bitly v3 API",
		Version: version,
		Long: `bitly shortens, expands and reports on bitlinks through the bitly v3 API.

The access token is read from --token, BITLY_TOKEN (or BITLY_ACCESS_TOKEN),
or the token key of ~/.bitly/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			// If no subcommand is provided, print help
			_ = cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.String(flagConfig, "", "config file (default $HOME/.bitly/config.yaml)")
	flags.String(config.KeyToken, "", "OAuth access token")
	flags.String(config.KeyAPIURL, bitly.DefaultAPIURL, "API host")
	flags.String(config.KeyAPIVersion, bitly.DefaultAPIVersion, "API version path segment")
	flags.String(config.KeyDomain, bitly.DefaultDomain, "short link domain")
	flags.String(config.KeyScheme, bitly.DefaultScheme, "API scheme (http or https)")
	flags.Duration(config.KeyTimeout, apihttp.DefaultTimeout, "request timeout")
	flags.StringP(config.KeyOutput, "o", config.OutputText, "output format (text, json, yaml)")
	flags.Bool(config.KeyNoColor, false, "disable colored output")
	flags.BoolP(config.KeyVerbose, "v", false, "show the request URL, timing and debug logs")
	flags.String(flagExtract, "", "print only the value at this JSONPath of the response data")
	flags.String(flagSchema, "", "validate the response data against this JSON Schema file")

	root.AddCommand(
		newShortenCmd(),
		newLookupCmd(),
		newItemsCmd("expand", bitly.MethodExpand, "Expand short URLs and hashes to their long URLs", (*bitly.Client).Expand),
		newItemsCmd("clicks", bitly.MethodClicks, "Show total clicks for short URLs and hashes", (*bitly.Client).Clicks),
		newItemsCmd("clicks-by-minute", bitly.MethodClicksByMinute, "Show per-minute clicks for short URLs and hashes", (*bitly.Client).ClicksByMinute),
		newItemsCmd("clicks-by-day", bitly.MethodClicksByDay, "Show per-day clicks for short URLs and hashes", (*bitly.Client).ClicksByDay),
		newItemsCmd("info", bitly.MethodInfo, "Show title and creation details for short URLs and hashes", (*bitly.Client).Info),
		newItemCmd("referrers", bitly.MethodReferrers, "Show referring sites for a short URL or hash", (*bitly.Client).Referrers),
		newItemCmd("countries", bitly.MethodCountries, "Show click countries for a short URL or hash", (*bitly.Client).Countries),
		newRequestCmd(),
		newConfigCmd(),
	)

	return root
}

// Execute runs the command line and reports errors that were not already
// printed. This is called by main.main().
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
