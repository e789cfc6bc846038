// Package envelope defines the JSON shapes every endpoint responds with.
package envelope

// Success wraps a single entity or a mutation result.
type Success struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// List wraps a collection. Data is always a JSON array.
type List struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

// Failure is the body of every error response. Error is a stable machine
// code; Errors lists individual validation problems.
type Failure struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Errors  []string `json:"errors,omitempty"`
}

func OK(data interface{}) *Success {
	return &Success{Success: true, Data: data}
}

func Message(msg string) *Success {
	return &Success{Success: true, Message: msg}
}

func WithData(msg string, data interface{}) *Success {
	return &Success{Success: true, Message: msg, Data: data}
}

// NewList returns a list envelope for items. count must equal the number of
// elements in items.
func NewList(items interface{}, count int) *List {
	return &List{Success: true, Count: count, Data: items}
}

func Fail(msg, code string, details ...string) *Failure {
	return &Failure{Message: msg, Error: code, Errors: details}
}
