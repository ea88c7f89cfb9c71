package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/wesleyorama2/bitly/bitly"
)

// Formatter is responsible for formatting API calls in text format
type Formatter struct {
	Verbose bool
	NoColor bool

	scheme *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		scheme:  scheme,
	}
}

// FormatRequest formats the outgoing request, in verbose mode only. The
// access token is masked.
func (f *Formatter) FormatRequest(requestURL string) string {
	if !f.Verbose {
		return ""
	}
	return fmt.Sprintf("▶ REQUEST: %s %s\n", f.scheme.Method.Sprint("GET"), f.scheme.URL.Sprint(MaskAccessToken(requestURL)))
}

// FormatResponse formats a successful call for display
func (f *Formatter) FormatResponse(method string, resp *bitly.Response) string {
	var buf strings.Builder

	status := f.scheme.StatusOK.Sprintf("%d %s", resp.StatusCode, resp.StatusTxt)
	buf.WriteString(fmt.Sprintf("%s %s: %s (%dms)\n", SuccessIcon(f.NoColor), method, status, resp.Timing.Total.Milliseconds()))

	if f.Verbose {
		buf.WriteString(f.scheme.Label.Sprint("  Timing:") + "\n")
		buf.WriteString(fmt.Sprintf("    DNS Lookup:         %dms\n", resp.Timing.DNSLookup.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TCP Connection:     %dms\n", resp.Timing.TCPConnect.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TLS Handshake:      %dms\n", resp.Timing.TLSHandshake.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Time to First Byte: %dms\n", resp.Timing.TimeToFirstByte.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Content Transfer:   %dms\n", resp.Timing.ContentTransfer.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Total:              %dms\n", resp.Timing.Total.Milliseconds()))
	}

	f.writeData(&buf, resp.Data)
	return buf.String()
}

// FormatError formats a failed call for display
func (f *Formatter) FormatError(method string, err error) string {
	var buf strings.Builder

	var apiErr *bitly.APIError
	if errors.As(err, &apiErr) {
		status := f.scheme.StatusError.Sprintf("%d %s", apiErr.StatusCode, apiErr.StatusTxt)
		buf.WriteString(fmt.Sprintf("%s %s: %s\n", ErrorIcon(f.NoColor), method, status))
		f.writeData(&buf, apiErr.Data)
		return buf.String()
	}

	buf.WriteString(fmt.Sprintf("%s %s: %s\n", ErrorIcon(f.NoColor), method, f.scheme.StatusError.Sprint(err.Error())))
	return buf.String()
}

func (f *Formatter) writeData(buf *strings.Builder, data json.RawMessage) {
	if isNull(data) {
		return
	}
	buf.WriteString(f.scheme.Label.Sprint("  Data:") + "\n")
	buf.WriteString("  " + formatJSON(data) + "\n")
}

// formatJSON pretty-prints JSON, returning the input unchanged if it is not JSON
func formatJSON(data []byte) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "  ", "  "); err != nil {
		return string(data)
	}
	return pretty.String()
}
