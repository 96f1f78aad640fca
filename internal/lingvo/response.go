package lingvo

import "encoding/json"

// Response is the envelope shared by every result type. Result types embed it.
type Response struct {
	IsOk             bool            `json:"isOk"`
	Code             int             `json:"code"`
	Message          string          `json:"message"`
	ErrorDescription json.RawMessage `json:"errorDescription,omitempty"`
}

// Envelope gives the engine access to the embedded envelope.
func (r *Response) Envelope() *Response { return r }

// Err returns nil for a successful envelope and a *RemoteError otherwise.
func (r *Response) Err() error {
	if r.IsOk {
		return nil
	}
	return &RemoteError{
		Code:        r.Code,
		Message:     r.Message,
		Description: r.ErrorDescription,
	}
}

// Result is implemented by every type a Request decodes into.
type Result interface {
	Envelope() *Response
}
