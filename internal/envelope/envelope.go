// Package envelope holds the response wrapper shared by every hospital
// backend and the rules for turning a failed call into a single message.
package envelope

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// FallbackMessage is used when neither the body, the status line nor the
// transport produced anything readable.
const FallbackMessage = "An unexpected error occurred"

// Envelope represents the {success, message, data} body returned by every backend.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// Write encodes a successful envelope with the given status code.
func Write(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope[any]{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail encodes a failed envelope. data may carry field-level detail
// (validation errors) and is otherwise nil.
func Fail(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope[any]{
		Success: false,
		Message: message,
		Data:    data,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Decode unwraps the data field of an envelope body.
func Decode[T any](body []byte) (T, error) {
	env, err := DecodeEnvelope[T](body)
	return env.Data, err
}

// DecodeEnvelope parses the whole envelope. An empty body yields the zero envelope.
func DecodeEnvelope[T any](body []byte) (Envelope[T], error) {
	var env Envelope[T]
	if len(strings.TrimSpace(string(body))) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return env, fmt.Errorf("failed to decode response envelope: %w", err)
	}
	return env, nil
}

// MessageFromBody extracts the message field of an error body. Bodies that
// are not JSON objects, or carry no string message, yield "".
func MessageFromBody(body []byte) string {
	var probe struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	msg, _ := probe.Message.(string)
	return strings.TrimSpace(msg)
}

// ErrorMessage picks the message surfaced to the user for a failed call:
// the body's message, then the HTTP status text, then the transport error,
// then FallbackMessage.
func ErrorMessage(bodyMessage, statusText string, transportErr error) string {
	if bodyMessage != "" {
		return bodyMessage
	}
	if statusText != "" {
		return statusText
	}
	if transportErr != nil && transportErr.Error() != "" {
		return transportErr.Error()
	}
	return FallbackMessage
}
