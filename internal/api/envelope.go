package api

import (
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/recipebox/recipebox-server/internal/http/response"
)

// successEnvelope wraps every 2xx payload.
type successEnvelope struct {
	Version string `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data"`
}

// errorEnvelope wraps every error payload. Plain errors carry Error;
// errors with a machine-readable code carry Code, Message, and Details.
type errorEnvelope struct {
	Version string `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps response bodies in the API envelope. It is
// appended to the huma config's transformers at server construction.
func EnvelopeTransformer(ctx huma.Context, status string, v any) (any, error) {
	if v == nil {
		return v, nil
	}

	if apiErr, ok := v.(*APIError); ok {
		env := errorEnvelope{
			Version: response.Version,
			Success: false,
		}
		if apiErr.Code != "" || apiErr.Details != nil {
			env.Code = apiErr.Code
			env.Message = apiErr.Message
			env.Details = apiErr.Details
		} else {
			env.Error = apiErr.Message
		}
		return env, nil
	}

	if code := statusCode(status); code >= 400 {
		// Errors produced outside our handler path (huma internals).
		msg := "request failed"
		if err, ok := v.(error); ok {
			msg = err.Error()
		}
		return errorEnvelope{
			Version: response.Version,
			Success: false,
			Error:   msg,
		}, nil
	}

	return successEnvelope{
		Version: response.Version,
		Success: true,
		Data:    v,
	}, nil
}

func statusCode(status string) int {
	code, err := strconv.Atoi(strings.SplitN(status, " ", 2)[0])
	if err != nil {
		return 0
	}
	return code
}
