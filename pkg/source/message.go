package source

import (
	"encoding/json"
	"fmt"
	"time"
)

// messageType identifies a tracker WebSocket message.
type messageType string

const (
	// Tracker -> bridge messages
	typeSample messageType = "sample" // pose + button snapshot
	typeStatus messageType = "status" // session state change

	// Bidirectional
	typePing messageType = "ping"
	typePong messageType = "pong"
)

// message is the base wrapper for all tracker messages.
type message struct {
	Type      messageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// statusData carries a session state change.
type statusData struct {
	State string `json:"state"` // "not_focused", "session_ending"
}

// Session states reported by the tracker.
const (
	stateNotFocused    = "not_focused"
	stateSessionEnding = "session_ending"
)

// newMessage creates a message with the current timestamp.
func newMessage(msgType messageType, data interface{}) (*message, error) {
	var raw json.RawMessage
	if data != nil {
		var err error
		raw, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}
	return &message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      raw,
	}, nil
}

// parseMessage parses a JSON message from bytes.
func parseMessage(data []byte) (*message, error) {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse tracker message: %w", err)
	}
	return &msg, nil
}

// bytes returns the JSON-encoded message.
func (m *message) bytes() ([]byte, error) {
	return json.Marshal(m)
}

// parseData unmarshals the message payload into the provided struct.
func (m *message) parseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}
