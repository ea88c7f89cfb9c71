package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/bitly/bitly"
	"github.com/wesleyorama2/bitly/internal/config"
	"github.com/wesleyorama2/bitly/internal/output"
	"github.com/wesleyorama2/bitly/pkg/jsonpath"
	"github.com/wesleyorama2/bitly/pkg/jsonschema"
)

// session holds what a single command invocation needs to call the API and
// print the result.
type session struct {
	client    *bitly.Client
	formatter output.FormatProvider

	extract string
	schema  *jsonschema.Schema

	out    io.Writer
	errOut io.Writer
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString(flagConfig)

	opts := config.Options{File: file, Flags: cmd.Flags()}
	if file == "" {
		opts.SearchPaths = config.DefaultSearchPaths()
	}
	return config.Load(opts)
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}

	noColor := cfg.NoColor || !colorEnabled(cmd.OutOrStdout())
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose, noColor)

	client, err := bitly.New(cfg.AccessToken, append(cfg.ClientOptions(), bitly.WithLogger(logger))...)
	if err != nil {
		return nil, err
	}

	s := &session{
		client:    client,
		formatter: output.GetFormatter(output.OutputFormat(cfg.Output), cfg.Verbose, noColor),
		out:       cmd.OutOrStdout(),
		errOut:    cmd.ErrOrStderr(),
	}

	s.extract, _ = cmd.Flags().GetString(flagExtract)
	if schemaPath, _ := cmd.Flags().GetString(flagSchema); schemaPath != "" {
		s.schema, err = jsonschema.CompileFile(schemaPath)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

func newLogger(w io.Writer, verbose, noColor bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return output.ColorEnabled(f)
}

// run performs one API call and prints its outcome. params is only used to
// show the request; do makes the call.
func (s *session) run(ctx context.Context, method string, params url.Values, do func(context.Context, *bitly.Client) (*bitly.Response, error)) error {
	if requestURL, err := s.client.URL(method, params); err == nil {
		fmt.Fprint(s.out, s.formatter.FormatRequest(requestURL))
	}

	resp, err := do(ctx, s.client)
	if err != nil {
		fmt.Fprint(s.errOut, s.formatter.FormatError(method, err))
		return &reportedError{err: err}
	}

	return s.print(method, resp)
}

func (s *session) print(method string, resp *bitly.Response) error {
	if s.schema != nil {
		if err := s.schema.Validate(resp.Data); err != nil {
			return fmt.Errorf("%s response data does not match schema: %w", method, err)
		}
	}

	if s.extract != "" {
		value, err := jsonpath.Extract(resp.Data, s.extract)
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", s.extract, err)
		}
		fmt.Fprintln(s.out, value)
		return nil
	}

	fmt.Fprint(s.out, s.formatter.FormatResponse(method, resp))
	return nil
}
