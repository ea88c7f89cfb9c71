package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Request represents an outbound API call. Only the path and query vary
// between calls; the body is always empty.
type Request struct {
	Method      string
	Path        string
	QueryParams url.Values
	Headers     map[string]string
}

// NewRequest creates a new request for the given HTTP method and path.
func NewRequest(method, path string) *Request {
	return &Request{
		Method:      method,
		Path:        path,
		QueryParams: make(url.Values),
		Headers:     make(map[string]string),
	}
}

// WithHeader sets a header on the request.
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithQueryParam appends a query parameter value.
func (r *Request) WithQueryParam(key, value string) *Request {
	r.QueryParams.Add(key, value)
	return r
}

// WithQueryValues appends every value of params, keeping repeated keys.
func (r *Request) WithQueryValues(params url.Values) *Request {
	for key, values := range params {
		for _, value := range values {
			r.QueryParams.Add(key, value)
		}
	}
	return r
}

// URL resolves the request against baseURL, query included.
func (r *Request) URL(baseURL string) (*url.URL, error) {
	reqURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	if reqURL.Path == "" {
		reqURL.Path = "/" + strings.TrimLeft(r.Path, "/")
	} else {
		reqURL.Path = strings.TrimRight(reqURL.Path, "/") + "/" + strings.TrimLeft(r.Path, "/")
	}

	query := reqURL.Query()
	for key, values := range r.QueryParams {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	reqURL.RawQuery = query.Encode()

	return reqURL, nil
}

// Build constructs an *http.Request bound to ctx.
func (r *Request) Build(ctx context.Context, baseURL string) (*http.Request, error) {
	reqURL, err := r.URL(baseURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, reqURL.String(), nil)
	if err != nil {
		return nil, err
	}

	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}
