package lingvo

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

var errEmptyBody = errors.New("response json is null or empty")

// errorEnvelope is the object synthesized for non-2xx responses.
type errorEnvelope struct {
	IsOk             bool            `json:"isOk"`
	Code             int             `json:"code"`
	Message          string          `json:"message"`
	ErrorDescription json.RawMessage `json:"errorDescription"`
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// normalize turns a raw response into a JSON object ready for decoding into
// req's result. Successful bare-array bodies are wrapped under req.WrapKey();
// non-2xx responses are replaced by an error envelope that embeds the
// original body.
func normalize(req Request, status int, statusText string, body []byte) ([]byte, error) {
	body = bytes.TrimSpace(body)

	if !isSuccess(status) {
		return json.Marshal(errorEnvelope{
			IsOk:             false,
			Code:             status,
			Message:          statusText,
			ErrorDescription: embeddable(body),
		})
	}

	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, errEmptyBody
	}
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	if key := req.WrapKey(); key != "" && body[0] == '[' {
		return wrapArray(key, body)
	}
	return body, nil
}

// wrapArray writes {"key":<array>} keeping the array bytes untouched.
func wrapArray(key string, array []byte) ([]byte, error) {
	quotedKey, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(quotedKey) + len(array) + 3)
	buf.WriteByte('{')
	buf.Write(quotedKey)
	buf.WriteByte(':')
	buf.Write(array)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// embeddable keeps valid JSON as-is and quotes anything else, so the error
// envelope is always well-formed.
func embeddable(body []byte) json.RawMessage {
	if len(body) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return json.RawMessage("null")
	}
	return quoted
}

// decode normalizes the body and unmarshals it into a fresh result of req.
func decode(req Request, status int, statusText string, body []byte) (Result, error) {
	data, err := normalize(req, status, statusText, body)
	if err != nil {
		return nil, &DecodeError{Method: req.Method(), Err: err}
	}

	result := req.NewResult()
	if err := json.Unmarshal(data, result); err != nil {
		return nil, &DecodeError{Method: req.Method(), Err: err}
	}

	if isSuccess(status) {
		env := result.Envelope()
		env.IsOk = true
		env.Code = status
		env.Message = statusText
	}
	return result, nil
}
