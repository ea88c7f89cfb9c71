package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/bitly/bitly"
)

func newRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request METHOD [key=value...]",
		Short: "Call any API method with the given query parameters",
		Long: `Call any API method. Parameters are sent as given; repeat a key to send
several values, e.g. "hash=abc hash=def".`,
		Example: "  bitly request user/link_history limit=5",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			method := args[0]
			return s.run(cmd.Context(), method, params,
				func(ctx context.Context, c *bitly.Client) (*bitly.Response, error) {
					return c.Request(ctx, method, params)
				})
		},
	}
}

// parseParams turns key=value arguments into query parameters.
func parseParams(args []string) (url.Values, error) {
	params := url.Values{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", arg)
		}
		params.Add(key, value)
	}
	return params, nil
}
