package transport

import "encoding/json"

// Envelope is the JSON wrapper shared by every success and error response.
// Errors carries per-field validation messages when present.
type Envelope struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}) Envelope {
	return Envelope{
		Success: true,
		Data:    data,
	}
}

// NewError returns an error envelope with an optional per-field error map.
func NewError(code, message string, errors interface{}) Envelope {
	return Envelope{
		Success: false,
		Code:    code,
		Message: message,
		Errors:  errors,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}
