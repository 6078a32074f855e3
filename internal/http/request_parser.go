package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

const (
	msgUserIDRequired  = "userId is required"
	msgMonthRequired   = "month is required (format: YYYY-MM)"
	msgMessageRequired = "message is required"
	msgInvalidJSON     = "request body must be valid JSON"
)

// monthRequest is the body of POST /ai/insights.
type monthRequest struct {
	UserID string `json:"userId"`
	Month  string `json:"month"`
}

// chatRequest is the body of POST /ai/chat.
type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

var errInvalidJSON = errors.New(msgInvalidJSON)

// fieldTypeError reports a well-formed body whose field has the wrong JSON
// type. Every request field is a string.
type fieldTypeError struct {
	field string
}

func (e *fieldTypeError) Error() string {
	return e.field + " must be a string"
}

// decodeJSONBody decodes r's body into dst. An empty body decodes as {}.
// Bodies over the size cap surface as *http.MaxBytesError.
func decodeJSONBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errInvalidJSON
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &fieldTypeError{field: typeErr.Field}
		}
		return errInvalidJSON
	}
	return nil
}
