package event

import "encoding/json"

type Event interface {
	Type() string
}

// EventResponse is the wire envelope for every websocket message.
type EventResponse struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func New(ev Event) *EventResponse {
	return &EventResponse{
		Type: ev.Type(),
		Data: ev,
	}
}

func (e *EventResponse) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
