package lingvo

import (
	"fmt"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. The order is kept on the wire.
type Params []Param

// Add appends key=value, formatting value with fmt.Sprint.
func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: fmt.Sprint(value)})
}

// Get returns the first value for key.
func (p Params) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

// QueryString joins the parameters as "?k1=v1&k2=v2". Values are written as
// given; callers pass URL-safe values. An empty list yields "".
func (p Params) QueryString() string {
	if len(p) == 0 {
		return ""
	}
	pairs := make([]string, len(p))
	for i, param := range p {
		pairs[i] = param.Key + "=" + param.Value
	}
	return "?" + strings.Join(pairs, "&")
}

// Request describes one API call.
type Request interface {
	// Method is the API method path appended to the base URL, e.g. "WordForms".
	Method() string
	// Params are the query parameters in the order they are sent.
	Params() Params
	// WrapKey names the field a bare JSON array body is wrapped under before
	// decoding. Empty means the endpoint always answers with an object.
	WrapKey() string
	// NewResult returns a fresh pointer the response body is decoded into.
	NewResult() Result
}
