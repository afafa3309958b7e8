package room

import "encoding/json"

// Response is a message pushed to a connected client
type Response struct {
	Key     string      `json:"key"`
	Value   interface{} `json:"value,omitempty"`
	Context string      `json:"context,omitempty"`
}

// PayloadIn is a message received from a connected client
type PayloadIn struct {
	Action  string          `json:"action"`
	Context string          `json:"context,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
