package client

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// envelope is the {code, message, data} wrapper of every backend response.
type envelope struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func parseEnvelope(body []byte) (envelope, error) {
	if !gjson.ValidBytes(body) {
		return envelope{}, ErrMalformedEnvelope
	}
	code := gjson.GetBytes(body, "code")
	if !code.Exists() || code.Type != gjson.Number {
		return envelope{}, ErrMalformedEnvelope
	}

	env := envelope{
		Code:    int(code.Int()),
		Message: gjson.GetBytes(body, "message").String(),
	}
	if data := gjson.GetBytes(body, "data"); data.Exists() && data.Type != gjson.Null {
		env.Data = json.RawMessage(data.Raw)
	}
	return env, nil
}

func (e envelope) decode(out any) error {
	if out == nil || len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// errorMessage digs a human message out of an error body: the envelope
// message, a FastAPI "detail" string, or the first validation error.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"message", "detail", "detail.0.msg"} {
		r := gjson.GetBytes(body, path)
		if r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return ""
}
