package output

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wesleyorama2/bitly/bitly"
)

func sampleResponse() *bitly.Response {
	return &bitly.Response{
		StatusCode: 200,
		StatusTxt:  "OK",
		Data:       json.RawMessage(`{"url":"http://bit.ly/abc1234","hash":"abc1234"}`),
		HTTPStatus: 200,
		Timing: bitly.Timing{
			DNSLookup:       5 * time.Millisecond,
			TCPConnect:      10 * time.Millisecond,
			TimeToFirstByte: 40 * time.Millisecond,
			ContentTransfer: 2 * time.Millisecond,
			Total:           57 * time.Millisecond,
		},
	}
}

func TestFormatter_FormatRequest(t *testing.T) {
	formatter := NewFormatter(true, true) // verbose, no color

	output := formatter.FormatRequest("https://api-ssl.bitly.com/v3/shorten?access_token=secret&longUrl=https%3A%2F%2Fexample.com")

	if !strings.Contains(output, "REQUEST: GET https://api-ssl.bitly.com/v3/shorten?") {
		t.Errorf("Expected request line, got: %s", output)
	}
	if strings.Contains(output, "secret") {
		t.Errorf("Expected access token to be masked, got: %s", output)
	}
	if !strings.Contains(output, "access_token=REDACTED") {
		t.Errorf("Expected masked access token, got: %s", output)
	}
}

func TestFormatter_FormatRequestQuiet(t *testing.T) {
	formatter := NewFormatter(false, true)

	if output := formatter.FormatRequest("https://api-ssl.bitly.com/v3/shorten"); output != "" {
		t.Errorf("Expected no request output without verbose, got: %s", output)
	}
}

func TestFormatter_FormatResponse(t *testing.T) {
	formatter := NewFormatter(false, true)

	output := formatter.FormatResponse("shorten", sampleResponse())

	expectedParts := []string{
		"✓ shorten: 200 OK (57ms)",
		"Data:",
		`"url": "http://bit.ly/abc1234"`,
		`"hash": "abc1234"`,
	}
	for _, part := range expectedParts {
		if !strings.Contains(output, part) {
			t.Errorf("Expected output to contain '%s', got: %s", part, output)
		}
	}
	if strings.Contains(output, "Timing:") {
		t.Errorf("Expected no timing without verbose, got: %s", output)
	}
}

func TestFormatter_FormatResponseVerbose(t *testing.T) {
	formatter := NewFormatter(true, true)

	output := formatter.FormatResponse("shorten", sampleResponse())

	expectedParts := []string{
		"Timing:",
		"DNS Lookup:         5ms",
		"TCP Connection:     10ms",
		"Time to First Byte: 40ms",
		"Total:              57ms",
	}
	for _, part := range expectedParts {
		if !strings.Contains(output, part) {
			t.Errorf("Expected output to contain '%s', got: %s", part, output)
		}
	}
}

func TestFormatter_FormatResponseNullData(t *testing.T) {
	formatter := NewFormatter(false, true)

	resp := &bitly.Response{StatusCode: 200, StatusTxt: "OK", Data: json.RawMessage("null")}
	output := formatter.FormatResponse("info", resp)

	if strings.Contains(output, "Data:") {
		t.Errorf("Expected null data to be omitted, got: %s", output)
	}
}

func TestFormatter_FormatError(t *testing.T) {
	formatter := NewFormatter(false, true)

	tests := []struct {
		name     string
		method   string
		err      error
		expected []string
		absent   []string
	}{
		{
			name:   "api error",
			method: "shorten",
			err: &bitly.APIError{
				Method:     "shorten",
				StatusCode: 500,
				StatusTxt:  "INVALID_URI",
				Data:       json.RawMessage("null"),
			},
			expected: []string{"✗ shorten: 500 INVALID_URI"},
			absent:   []string{"Data:"},
		},
		{
			name:   "api error with data",
			method: "expand",
			err: &bitly.APIError{
				Method:     "expand",
				StatusCode: 403,
				StatusTxt:  "RATE_LIMIT_EXCEEDED",
				Data:       json.RawMessage(`{"retry_after":60}`),
			},
			expected: []string{"✗ expand: 403 RATE_LIMIT_EXCEEDED", "Data:", `"retry_after": 60`},
		},
		{
			name:     "transport error",
			method:   "clicks",
			err:      &bitly.TransportError{Method: "clicks", Err: errors.New("connection refused")},
			expected: []string{"✗ clicks: bitly: clicks: connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := formatter.FormatError(tt.method, tt.err)
			for _, part := range tt.expected {
				if !strings.Contains(output, part) {
					t.Errorf("Expected output to contain '%s', got: %s", part, output)
				}
			}
			for _, part := range tt.absent {
				if strings.Contains(output, part) {
					t.Errorf("Expected output not to contain '%s', got: %s", part, output)
				}
			}
		})
	}
}

func TestFormatJSON(t *testing.T) {
	if got := formatJSON([]byte("not json")); got != "not json" {
		t.Errorf("Expected invalid JSON to be returned unchanged, got: %s", got)
	}

	got := formatJSON([]byte(`{"a":1}`))
	if !strings.Contains(got, "\"a\": 1") {
		t.Errorf("Expected indented JSON, got: %s", got)
	}
}
