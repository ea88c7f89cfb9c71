package bitly

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/bitly/internal/bitlytest"
)

func TestRequest_SuccessReturnsDataUntouched(t *testing.T) {
	client, server := newTestClient(t)
	raw := `{"weird" : [1, 2,3], "nested":{"k":"v"}}`
	server.Handle("custom", func(url.Values) bitlytest.Envelope {
		return bitlytest.OK(json.RawMessage(raw))
	})

	resp, err := client.Request(context.Background(), "custom", nil)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, raw, string(resp.Data))
	assert.Equal(t, http.StatusOK, resp.HTTPStatus)
	assert.Greater(t, resp.Timing.Total, time.Duration(0))
}

func TestRequest_APIError(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle("shorten", func(url.Values) bitlytest.Envelope {
		return bitlytest.Envelope{StatusCode: 500, StatusTxt: "INVALID_URI", Data: map[string]string{"long_url": "nope"}}
	})

	resp, err := client.Shorten(context.Background(), "nope")
	assert.Nil(t, resp)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, "INVALID_URI", apiErr.StatusTxt)
	assert.Equal(t, "shorten", apiErr.Method)
	assert.JSONEq(t, `{"long_url":"nope"}`, string(apiErr.Data))
	assert.Equal(t, "bitly: shorten returned 500: INVALID_URI", err.Error())
}

func TestRequest_StatusBoundaries(t *testing.T) {
	tests := []struct {
		code    int
		wantErr bool
	}{
		{199, true},
		{200, false},
		{302, false},
		{399, false},
		{400, true},
		{403, true},
	}

	for _, tt := range tests {
		client, server := newTestClient(t)
		code := tt.code
		server.Handle("info", func(url.Values) bitlytest.Envelope {
			return bitlytest.Envelope{StatusCode: code, StatusTxt: "X"}
		})

		_, err := client.Info(context.Background(), "abc")
		if tt.wantErr {
			var apiErr *APIError
			if assert.ErrorAs(t, err, &apiErr, "status %d", code) {
				assert.Equal(t, code, apiErr.StatusCode)
			}
		} else {
			assert.NoError(t, err, "status %d", code)
		}
	}
}

func TestRequest_InvalidToken(t *testing.T) {
	server := bitlytest.NewServer(testToken)
	defer server.Close()

	client, err := New("wrong", WithScheme("http"), WithAPIURL(server.APIURL()))
	require.NoError(t, err)

	_, err = client.Clicks(context.Background(), "abc")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVALID_ACCESS_TOKEN", apiErr.StatusTxt)
}

func TestRequest_UnknownMethod(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Request(context.Background(), "no_such_method", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestRequest_Passthrough(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle("user/link_history", bitlytest.Echo("history"))

	params := url.Values{
		"limit":    {"5"},
		"shortUrl": {"b", "a"},
		"private":  {"on"},
	}
	resp, err := client.Request(context.Background(), "user/link_history", params)
	require.NoError(t, err)

	call, _ := server.LastCall()
	assert.Equal(t, "user/link_history", call.Method)
	assert.Equal(t, []string{"b", "a"}, call.Query["shortUrl"], "passthrough must not normalize")
	assert.Equal(t, "5", call.Query.Get("limit"))
	assert.Equal(t, `["on"]`, resp.Get("history.private").Raw)
}

func TestRequest_AccessTokenIsAuthoritative(t *testing.T) {
	client, server := newTestClient(t)

	_, err := client.Request(context.Background(), "info", url.Values{"access_token": {"other"}, "hash": {"abc"}})
	require.NoError(t, err)

	call, _ := server.LastCall()
	assert.Equal(t, []string{testToken}, call.Query["access_token"])
}

func TestRequest_TransportError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	client, err := New("s3cret-token", WithScheme("http"), WithAPIURL(addr))
	require.NoError(t, err)

	_, err = client.Shorten(context.Background(), "https://example.com")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "shorten", transportErr.Method)

	var urlErr *url.Error
	require.ErrorAs(t, err, &urlErr)
	assert.NotContains(t, err.Error(), "s3cret-token")
	assert.Contains(t, urlErr.URL, "access_token=REDACTED")

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestRequest_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client, err := New(testToken, WithScheme("http"), WithAPIURL(strings.TrimPrefix(server.URL, "http://")))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Expand(ctx, "abc")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.True(t, transportErr.Timeout())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRequest_NonEnvelopeBody(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantAPIErr bool
	}{
		{name: "gateway error page", status: http.StatusBadGateway, body: "<html>bad gateway</html>", wantAPIErr: true},
		{name: "garbage with 200", status: http.StatusOK, body: "not json", wantAPIErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := New(testToken, WithScheme("http"), WithAPIURL(strings.TrimPrefix(server.URL, "http://")))
			require.NoError(t, err)

			_, err = client.Info(context.Background(), "abc")
			require.Error(t, err)

			var apiErr *APIError
			if tt.wantAPIErr {
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.status, apiErr.StatusCode)
				assert.Equal(t, http.StatusText(tt.status), apiErr.StatusTxt)
			} else {
				assert.False(t, errors.As(err, &apiErr))
				assert.Contains(t, err.Error(), "decode info response")
			}
		})
	}
}

func TestRedactURLError(t *testing.T) {
	plain := errors.New("boom")
	assert.Same(t, plain, redactURLError(plain))

	noToken := &url.Error{Op: "Get", URL: "http://x/v3/info?hash=a", Err: plain}
	assert.Same(t, noToken, redactURLError(noToken))

	withToken := &url.Error{Op: "Get", URL: "http://x/v3/info?access_token=abc&hash=a", Err: plain}
	redacted, ok := redactURLError(withToken).(*url.Error)
	require.True(t, ok)
	assert.Equal(t, "http://x/v3/info?access_token=REDACTED&hash=a", redacted.URL)
	assert.Same(t, plain, redacted.Err)
	assert.Equal(t, "http://x/v3/info?access_token=abc&hash=a", withToken.URL)
}

func TestRequest_TimeoutOnlyWhenConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(200 * time.Millisecond):
		}
		w.Write([]byte(`{"status_code":200,"status_txt":"OK","data":{}}`))
	}))
	defer server.Close()
	apiURL := strings.TrimPrefix(server.URL, "http://")

	client, err := New(testToken, WithScheme("http"), WithAPIURL(apiURL))
	require.NoError(t, err)

	resp, err := client.Request(context.Background(), "slow", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	client, err = New(testToken, WithScheme("http"), WithAPIURL(apiURL), WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Request(context.Background(), "slow", nil)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.True(t, transportErr.Timeout())
}

func TestRequest_InvalidAPIURLIsNotTransportError(t *testing.T) {
	client, err := New(testToken, WithScheme("http"), WithAPIURL("bad host"))
	require.NoError(t, err)

	_, err = client.Expand(context.Background(), "abc")
	require.Error(t, err)

	var transportErr *TransportError
	assert.False(t, errors.As(err, &transportErr))
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "bitly: build expand request")
	assert.NotContains(t, err.Error(), testToken)
}
