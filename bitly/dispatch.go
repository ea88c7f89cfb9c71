package bitly

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apihttp "github.com/wesleyorama2/bitly/internal/http"
)

const accessTokenParam = "access_token"

// Request calls any API method with params forwarded verbatim as query
// parameters; keys with several values are repeated. The access token is
// always taken from the Client and overrides an access_token in params.
func (c *Client) Request(ctx context.Context, method string, params url.Values) (*Response, error) {
	req := c.newRequest(method, params)
	if _, err := req.URL(c.transport.BaseURL()); err != nil {
		return nil, fmt.Errorf("bitly: build %s request: %w", method, err)
	}

	start := time.Now()
	httpResp, err := c.transport.Do(ctx, req)
	if err != nil {
		c.metrics.observe(method, outcomeTransportError, time.Since(start))
		err = &TransportError{Method: method, Err: redactURLError(err)}
		c.logger.Warn().Err(err).Str("method", method).Msg("bitly request failed")
		return nil, err
	}

	resp, err := decodeResponse(method, httpResp)
	if err != nil {
		outcome := outcomeDecodeError
		if _, ok := err.(*APIError); ok {
			outcome = outcomeAPIError
		}
		c.metrics.observe(method, outcome, time.Since(start))
		c.logger.Warn().Err(err).Str("method", method).Int("http_status", httpResp.StatusCode).Msg("bitly request rejected")
		return nil, err
	}

	c.metrics.observe(method, outcomeOK, time.Since(start))
	c.logger.Debug().
		Str("method", method).
		Int("status_code", resp.StatusCode).
		Str("status_txt", resp.StatusTxt).
		Dur("elapsed", resp.Timing.Total).
		Msg("bitly request completed")

	return resp, nil
}

// methodPath returns "/{apiVersion}/{method}". The method is not cleaned so
// nested methods such as "user/link_history" pass through.
func (c *Client) methodPath(method string) string {
	return "/" + c.config.APIVersion + "/" + method
}

// newRequest builds the GET for method signed with the access token.
func (c *Client) newRequest(method string, params url.Values) *apihttp.Request {
	req := apihttp.NewRequest(http.MethodGet, c.methodPath(method)).WithQueryValues(params)
	req.QueryParams.Set(accessTokenParam, c.accessToken)
	return req
}

// URL returns the fully qualified URL Request would call, access token
// included.
func (c *Client) URL(method string, params url.Values) (string, error) {
	u, err := c.newRequest(method, params).URL(c.transport.BaseURL())
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func decodeResponse(method string, httpResp *apihttp.Response) (*Response, error) {
	var resp Response
	if err := httpResp.DecodeJSON(&resp); err != nil {
		if !httpResp.IsSuccess() {
			return nil, &APIError{
				Method:     method,
				StatusCode: httpResp.StatusCode,
				StatusTxt:  http.StatusText(httpResp.StatusCode),
			}
		}
		return nil, fmt.Errorf("bitly: decode %s response: %w", method, err)
	}

	if !resp.OK() {
		return nil, &APIError{
			Method:     method,
			StatusCode: resp.StatusCode,
			StatusTxt:  resp.StatusTxt,
			Data:       resp.Data,
		}
	}

	resp.HTTPStatus = httpResp.StatusCode
	resp.Timing = Timing{
		DNSLookup:       httpResp.Timing.DNSLookupTime,
		TCPConnect:      httpResp.Timing.TCPConnectTime,
		TLSHandshake:    httpResp.Timing.TLSHandshakeTime,
		TimeToFirstByte: httpResp.Timing.TimeToFirstByte,
		ContentTransfer: httpResp.Timing.ContentTransferTime,
		Total:           httpResp.Timing.TotalTime,
	}

	return &resp, nil
}
