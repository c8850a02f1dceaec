package pollsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// APIError is returned for every non-success response.
type APIError struct {
	StatusCode int

	// Message is the "error" or "detail" text of the body.
	Message string

	// Code is set for token errors, e.g. "token_not_valid".
	Code string

	// Fields holds per-field validation messages from /register.
	Fields map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		keys := slices.Sorted(maps.Keys(e.Fields))
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.Fields[k])
		}
		return fmt.Sprintf("polls: %d: %s", e.StatusCode, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("polls: %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// IsUnauthorized reports a 401 from the server.
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// IsConflict reports a 409, returned for a second vote on the same question.
func IsConflict(err error) bool { return IsStatus(err, http.StatusConflict) }

// parseErrorResponse builds an *APIError from an error body. Bodies that are
// not JSON keep the raw text as the message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	apiErr.Message = er.Error
	if apiErr.Message == "" {
		apiErr.Message = er.Detail
	}
	apiErr.Code = er.Code
	apiErr.Fields = er.Errors
	return apiErr
}
