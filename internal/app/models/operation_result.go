package models

// OperationResult is what every workflow operation returns to the
// presentation layer: a success flag, a human-readable message, the
// offending field for validation failures and an optional payload.
// Domain errors never cross the service boundary in raw form.
type OperationResult struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	FieldError string      `json:"fieldError,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
}

// OkResult creates a successful OperationResult with a message.
func OkResult(message string) OperationResult {
	return OperationResult{Success: true, Message: message}
}

// FailResult creates a failed OperationResult with a message.
func FailResult(message string) OperationResult {
	return OperationResult{Success: false, Message: message}
}
