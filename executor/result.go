package executor

import "fmt"

// Error kinds rendered to the caller. Callers switch on Type, not on the
// process exit code.
const (
	ErrConnection  = "CONNECTION_ERROR"
	ErrValidation  = "VALIDATION_ERROR"
	ErrExecution   = "EXECUTION_ERROR"
	ErrInvalidJSON = "INVALID_JSON"
)

type Error struct {
	Type    string `json:"type,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func validationErrf(format string, a ...interface{}) *Error {
	return &Error{Type: ErrValidation, Message: fmt.Sprintf(format, a...)}
}

func executionErrf(format string, a ...interface{}) *Error {
	return &Error{Type: ErrExecution, Message: fmt.Sprintf(format, a...)}
}

type Order struct {
	Ticket  uint64  `json:"ticket"`
	Volume  float64 `json:"volume"`
	Price   float64 `json:"price"`
	Comment string  `json:"comment"`
}

type Response struct {
	Success bool   `json:"success"`
	Order   *Order `json:"order,omitempty"`
	Error   *Error `json:"error,omitempty"`
}
