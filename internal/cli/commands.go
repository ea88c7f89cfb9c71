package cli

import (
	"context"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/bitly/bitly"
)

func newShortenCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "shorten LONG_URL",
		Short:   "Create a bitlink for a long URL",
		Example: "  bitly shorten https://example.com/some/long/path",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			longURL := args[0]
			return s.run(cmd.Context(), bitly.MethodShorten, url.Values{"longUrl": {longURL}},
				func(ctx context.Context, c *bitly.Client) (*bitly.Response, error) {
					return c.Shorten(ctx, longURL)
				})
		},
	}
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup URL",
		Short: "Find the bitlink for a long URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			longURL := args[0]
			return s.run(cmd.Context(), bitly.MethodLookup, url.Values{"url": {longURL}},
				func(ctx context.Context, c *bitly.Client) (*bitly.Response, error) {
					return c.Lookup(ctx, longURL)
				})
		},
	}
}

// newItemsCmd builds a command taking one or more short URLs or hashes.
func newItemsCmd(use, method, short string, call func(*bitly.Client, context.Context, ...string) (*bitly.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:     use + " ITEM...",
		Short:   short,
		Example: "  bitly " + use + " http://bit.ly/abc123 def456",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return s.run(cmd.Context(), method, bitly.NormalizeItems(args...),
				func(ctx context.Context, c *bitly.Client) (*bitly.Response, error) {
					return call(c, ctx, args...)
				})
		},
	}
}

// newItemCmd builds a command taking exactly one short URL or hash.
func newItemCmd(use, method, short string, call func(*bitly.Client, context.Context, string) (*bitly.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ITEM",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			item := args[0]
			return s.run(cmd.Context(), method, bitly.NormalizeItems(item),
				func(ctx context.Context, c *bitly.Client) (*bitly.Response, error) {
					return call(c, ctx, item)
				})
		},
	}
}
