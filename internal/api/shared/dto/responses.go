package dto

// Envelope is the body of every API response. Failures of any class share
// the same shape and differ only by message.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Failure(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
