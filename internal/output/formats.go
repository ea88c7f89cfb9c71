package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/bitly/bitly"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// FormatProvider renders API calls for display.
type FormatProvider interface {
	// FormatRequest describes the outgoing request; structured formats
	// return an empty string so stdout stays parseable.
	FormatRequest(requestURL string) string
	FormatResponse(method string, resp *bitly.Response) string
	FormatError(method string, err error) string
}

// GetFormatter returns a formatter for the specified format, falling back to text.
func GetFormatter(format OutputFormat, verbose, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Verbose: verbose, Pretty: true}
	case FormatYAML:
		return &YAMLFormatter{Verbose: verbose}
	default:
		return NewFormatter(verbose, noColor)
	}
}

// ResponseData is the structured form of a successful call.
type ResponseData struct {
	Method     string      `json:"method" yaml:"method"`
	StatusCode int         `json:"status_code" yaml:"status_code"`
	StatusTxt  string      `json:"status_txt" yaml:"status_txt"`
	Data       interface{} `json:"data" yaml:"data"`
	ElapsedMs  int64       `json:"elapsedMs,omitempty" yaml:"elapsedMs,omitempty"`
}

// ErrorData is the structured form of a failed call.
type ErrorData struct {
	Method     string      `json:"method" yaml:"method"`
	Kind       string      `json:"kind" yaml:"kind"`
	Error      string      `json:"error" yaml:"error"`
	StatusCode int         `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	StatusTxt  string      `json:"status_txt,omitempty" yaml:"status_txt,omitempty"`
	Data       interface{} `json:"data,omitempty" yaml:"data,omitempty"`
}

// Error kinds reported in ErrorData.Kind.
const (
	KindAPI       = "api"
	KindTransport = "transport"
	KindOther     = "error"
)

func newResponseData(method string, resp *bitly.Response, verbose bool, data interface{}) ResponseData {
	rd := ResponseData{
		Method:     method,
		StatusCode: resp.StatusCode,
		StatusTxt:  resp.StatusTxt,
		Data:       data,
	}
	if verbose {
		rd.ElapsedMs = resp.Timing.Total.Milliseconds()
	}
	return rd
}

func newErrorData(method string, err error, decode func(json.RawMessage) interface{}) ErrorData {
	ed := ErrorData{Method: method, Kind: KindOther, Error: err.Error()}

	var apiErr *bitly.APIError
	var transportErr *bitly.TransportError
	switch {
	case errors.As(err, &apiErr):
		ed.Kind = KindAPI
		ed.StatusCode = apiErr.StatusCode
		ed.StatusTxt = apiErr.StatusTxt
		if !isNull(apiErr.Data) {
			ed.Data = decode(apiErr.Data)
		}
	case errors.As(err, &transportErr):
		ed.Kind = KindTransport
	}

	return ed
}

func isNull(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

// rawData keeps the payload byte-for-byte for JSON output.
func rawData(raw json.RawMessage) interface{} {
	if isNull(raw) {
		return nil
	}
	return raw
}

// decodedData turns the payload into plain values for YAML output. Payloads
// that are not JSON are shown as strings.
func decodedData(raw json.RawMessage) interface{} {
	if isNull(raw) {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Verbose bool
	Pretty  bool
}

// FormatRequest returns an empty string; requests are only logged.
func (f *JSONFormatter) FormatRequest(string) string {
	return ""
}

// FormatResponse formats a response as JSON
func (f *JSONFormatter) FormatResponse(method string, resp *bitly.Response) string {
	return f.marshal(newResponseData(method, resp, f.Verbose, rawData(resp.Data)))
}

// FormatError formats an error as JSON
func (f *JSONFormatter) FormatError(method string, err error) string {
	return f.marshal(newErrorData(method, err, rawData))
}

func (f *JSONFormatter) marshal(v interface{}) string {
	var out []byte
	var err error
	if f.Pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`+"\n", err.Error())
	}
	return string(out) + "\n"
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	Verbose bool
}

// FormatRequest returns an empty string; requests are only logged.
func (f *YAMLFormatter) FormatRequest(string) string {
	return ""
}

// FormatResponse formats a response as YAML
func (f *YAMLFormatter) FormatResponse(method string, resp *bitly.Response) string {
	return f.marshal(newResponseData(method, resp, f.Verbose, decodedData(resp.Data)))
}

// FormatError formats an error as YAML
func (f *YAMLFormatter) FormatError(method string, err error) string {
	return f.marshal(newErrorData(method, err, decodedData))
}

func (f *YAMLFormatter) marshal(v interface{}) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %q\n", err.Error())
	}
	return string(out)
}

// MaskAccessToken hides the access_token query parameter of rawURL.
func MaskAccessToken(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := u.Query()
	if !query.Has("access_token") {
		return rawURL
	}
	query.Set("access_token", "REDACTED")
	u.RawQuery = query.Encode()

	return u.String()
}
