package models

import "encoding/json"

// InboundMessage is what a connected client sends over the socket: an action
// name plus action-specific fields kept raw until the handler decodes them.
type InboundMessage struct {
	Action string `json:"action"`
	Fields json.RawMessage
}

func (m *InboundMessage) UnmarshalJSON(data []byte) error {
	var head struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	m.Action = head.Action
	m.Fields = append(m.Fields[:0], data...)
	return nil
}

// Decode unmarshals the full message into an action-specific params struct.
func (m *InboundMessage) Decode(v any) error {
	return json.Unmarshal(m.Fields, v)
}

// OutboundMessage is the envelope every reply and broadcast uses.
type OutboundMessage struct {
	Status  string `json:"status"`
	Action  string `json:"action"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success wraps a handler result for the given action.
func Success(action string, data any) OutboundMessage {
	return OutboundMessage{Status: "success", Action: action, Data: data}
}

// Error wraps a handler failure for the given action.
func Error(action, message string) OutboundMessage {
	return OutboundMessage{Status: "error", Action: action, Message: message}
}

// GroupEvent is what travels over the Redis fan-out channel between gateway
// instances: the target presence group plus the already-enveloped payload.
type GroupEvent struct {
	Group   string          `json:"group"`
	Payload OutboundMessage `json:"payload"`
}
