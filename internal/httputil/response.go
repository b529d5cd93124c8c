package httputil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire format of every response:
// {success, data|token|message|errors}.
type Envelope struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Token   string       `json:"token,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RespondJSON writes a JSON response with the given status code.
// It handles encoding errors safely by marshaling first, preventing
// partial responses if encoding fails after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, body interface{}) {
	payload, err := json.Marshal(body)
	if err != nil {
		// Encoding failed - fall back to a plain 500 envelope
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondData writes a success envelope carrying data.
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	RespondJSON(w, status, Envelope{Success: true, Data: data})
}

// RespondMessage writes a success envelope carrying only a message.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Envelope{Success: true, Message: message})
}

// RespondError writes a failure envelope.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Envelope{Success: false, Message: message})
}

// RespondValidationErrors writes a 400 failure envelope with a field-level
// error list.
func RespondValidationErrors(w http.ResponseWriter, message string, errs []FieldError) {
	RespondJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: message, Errors: errs})
}
