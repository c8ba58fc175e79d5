package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/recipebox/recipebox-server/internal/errors"
	"github.com/recipebox/recipebox-server/internal/store"
)

// APIError is the error shape produced by handlers. It satisfies
// huma.StatusError so huma writes the right status code, and the envelope
// transformer turns it into the wire envelope.
type APIError struct {
	status  int
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType implements huma.ContentTypeFilter.
func (e *APIError) ContentType(ct string) string {
	return ct
}

// RegisterErrorHandler installs the error mapping for all huma-served
// routes. Domain errors keep their code and details; huma's own request
// validation failures surface as plain 400s.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *errors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
			}
			var storeErr *store.Error
			if errors.As(err, &storeErr) {
				return &APIError{
					status:  storeErr.HTTPCode(),
					Message: storeErr.Message,
				}
			}
		}

		// Malformed or schema-invalid request bodies.
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}

		apiErr := &APIError{
			status:  status,
			Message: message,
		}
		if status >= http.StatusBadRequest && len(errs) > 0 {
			details := make([]string, 0, len(errs))
			for _, err := range errs {
				if detailer, ok := err.(huma.ErrorDetailer); ok {
					if d := detailer.ErrorDetail(); d.Location != "" {
						details = append(details, d.Location+": "+d.Message)
						continue
					}
				}
				details = append(details, err.Error())
			}
			apiErr.Details = details
		}
		return apiErr
	}
}
