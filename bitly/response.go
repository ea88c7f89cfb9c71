package bitly

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/tidwall/gjson"
)

// Timing breaks down where the time of a request went. Phases that did not
// happen (reused connection, plain http) are zero.
type Timing struct {
	DNSLookup       time.Duration
	TCPConnect      time.Duration
	TLSHandshake    time.Duration
	TimeToFirstByte time.Duration
	ContentTransfer time.Duration
	Total           time.Duration
}

// Response is the envelope every API method answers with. Data is passed
// through exactly as received; its shape depends on the method.
type Response struct {
	StatusCode int             `json:"status_code"`
	StatusTxt  string          `json:"status_txt"`
	Data       json.RawMessage `json:"data"`

	// HTTPStatus is the status of the HTTP response itself, which the API
	// usually leaves at 200 regardless of StatusCode.
	HTTPStatus int `json:"-"`

	Timing Timing `json:"-"`
}

// OK reports whether StatusCode is in [200, 400).
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 400
}

// DecodeData unmarshals Data into v.
func (r *Response) DecodeData(v interface{}) error {
	if len(r.Data) == 0 {
		return errors.New("bitly: response has no data")
	}
	return json.Unmarshal(r.Data, v)
}

// Get looks up a gjson path in Data, e.g. "url" for shorten or
// "expand.0.long_url" for expand.
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Data, path)
}
