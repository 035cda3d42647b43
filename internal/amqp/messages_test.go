package amqp

import (
	"strings"
	"testing"
	"time"
)

func TestLedgerEventMessageRoundTrip(t *testing.T) {
	msg := NewLedgerEventMessage(EventRecordCreated, "rec-1", "CREDIT", "2025-06-25")

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := LedgerEventMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if got.Event != EventRecordCreated {
		t.Errorf("event = %q, want %q", got.Event, EventRecordCreated)
	}
	if got.RecordID != "rec-1" {
		t.Errorf("recordID = %q, want rec-1", got.RecordID)
	}
	if got.Kind != "CREDIT" {
		t.Errorf("kind = %q, want CREDIT", got.Kind)
	}
	if got.DueOn != "2025-06-25" {
		t.Errorf("dueOn = %q, want 2025-06-25", got.DueOn)
	}
	if got.Timestamp.IsZero() || time.Since(got.Timestamp) > time.Minute {
		t.Errorf("timestamp not recent: %v", got.Timestamp)
	}
}

func TestLedgerEventMessageOmitsEmptyFields(t *testing.T) {
	msg := NewLedgerEventMessage(EventStoreCleared, "", "", "")

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	for _, field := range []string{"recordId", "kind", "dueOn"} {
		if strings.Contains(string(data), field) {
			t.Errorf("empty %s must be omitted, got %s", field, data)
		}
	}
}

func TestLedgerEventMessageFromJSONInvalid(t *testing.T) {
	if _, err := LedgerEventMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
