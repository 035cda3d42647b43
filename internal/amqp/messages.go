package amqp

import (
	"encoding/json"
	"time"
)

// LedgerEvent is the message type published on every record mutation.
type LedgerEvent string

const (
	EventRecordCreated LedgerEvent = "record.created"
	EventRecordDeleted LedgerEvent = "record.deleted"
	EventStoreCleared  LedgerEvent = "store.cleared"
)

// LedgerEventMessage is a lightweight change notification. The worker
// fetches the current collection from the store; the message only says
// that something changed and which record triggered it.
type LedgerEventMessage struct {
	Event     LedgerEvent `json:"event"`
	RecordID  string      `json:"recordId,omitempty"`
	Kind      string      `json:"kind,omitempty"`
	DueOn     string      `json:"dueOn,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewLedgerEventMessage creates an event message stamped with the current time.
func NewLedgerEventMessage(event LedgerEvent, recordID, kind, dueOn string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Event:     event,
		RecordID:  recordID,
		Kind:      kind,
		DueOn:     dueOn,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
