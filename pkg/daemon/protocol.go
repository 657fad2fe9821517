package daemon

import (
	"encoding/json"
	"fmt"

	"github.com/b/tabswitch/pkg/paths"
)

// MessageType identifies the type of message
type MessageType string

const (
	MsgSubscribe   MessageType = "subscribe"
	MsgUnsubscribe MessageType = "unsubscribe"
	MsgSwitch      MessageType = "switch"  // SwitchPayload
	MsgNext        MessageType = "next"    // no payload
	MsgPrev        MessageType = "prev"    // no payload
	MsgRefresh     MessageType = "refresh" // RefreshPayload
	MsgSetup       MessageType = "setup"   // rediscover and rebuild
	MsgList        MessageType = "list"    // no payload
	MsgState       MessageType = "state"   // Server -> client: StatePayload
	MsgSwitched    MessageType = "switched"
	MsgError       MessageType = "error" // ErrorPayload
	MsgPing        MessageType = "ping"
	MsgPong        MessageType = "pong"
)

// Message is one line of newline-delimited JSON on the control socket.
type Message struct {
	Type     MessageType     `json:"type"`
	ClientID string          `json:"client_id,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// SwitchPayload names the tab to activate, by ID or by position.
type SwitchPayload struct {
	ID    string `json:"id,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// RefreshPayload carries the externally edited selection.
type RefreshPayload struct {
	Hint int `json:"hint"`
}

type TabInfo struct {
	Index  int    `json:"index"`
	ID     string `json:"id"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// StatePayload answers every successful request and is broadcast to
// subscribers after each switch.
type StatePayload struct {
	Active int       `json:"active"` // -1 when nothing is active
	Tabs   []TabInfo `json:"tabs"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage encodes payload into a message of the given type. A nil
// payload leaves the field empty.
func NewMessage(t MessageType, payload any) (Message, error) {
	msg := Message{Type: t}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to encode %s payload: %w", t, err)
	}
	msg.Payload = data
	return msg, nil
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("%s message has no payload", m.Type)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", m.Type, err)
	}
	return nil
}

// ErrorMessage wraps err for the wire.
func ErrorMessage(err error) Message {
	msg, _ := NewMessage(MsgError, ErrorPayload{Error: err.Error()})
	return msg
}

// SocketPath returns the control socket path for a session
func SocketPath(sessionID string) string {
	if sessionID == "" {
		sessionID = "default"
	}
	return paths.StatePath(fmt.Sprintf("control-%s.sock", sessionID))
}

// PidPath returns the pidfile path for a session
func PidPath(sessionID string) string {
	if sessionID == "" {
		sessionID = "default"
	}
	return paths.StatePath(fmt.Sprintf("control-%s.pid", sessionID))
}
