package store

import (
	"encoding/json"
	"testing"
)

func TestEventRepository_AppendAndRecent(t *testing.T) {
	s := newTestStore(t)
	repo := s.Events()

	events := []*Event{
		{BindingID: "left-click", Primitive: "button", Payload: json.RawMessage(`{"down":true}`)},
		{BindingID: "left-click", Primitive: "button", Payload: json.RawMessage(`{"down":false}`)},
		{BindingID: "cursor-x", Primitive: "set_position", Payload: json.RawMessage(`{"x":100,"y":200}`)},
	}
	for _, e := range events {
		if err := repo.Append(e); err != nil {
			t.Fatalf("failed to append event: %v", err)
		}
		if e.ID == 0 {
			t.Error("ID should be assigned after append")
		}
	}

	recent, err := repo.Recent(10)
	if err != nil {
		t.Fatalf("failed to list recent events: %v", err)
	}
	if len(recent) != len(events) {
		t.Errorf("expected %d events, got %d", len(events), len(recent))
	}
	// Recent returns newest first.
	if recent[0].BindingID != "cursor-x" {
		t.Errorf("expected most recent event first, got binding_id %q", recent[0].BindingID)
	}
}

func TestEventRepository_Recent_Limit(t *testing.T) {
	s := newTestStore(t)
	repo := s.Events()

	for i := 0; i < 5; i++ {
		if err := repo.Append(&Event{BindingID: "x", Primitive: "button"}); err != nil {
			t.Fatalf("failed to append event: %v", err)
		}
	}

	recent, err := repo.Recent(2)
	if err != nil {
		t.Fatalf("failed to list recent events: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("expected 2 events, got %d", len(recent))
	}
}

func TestEventRepository_ByBindingID(t *testing.T) {
	s := newTestStore(t)
	repo := s.Events()

	if err := repo.Append(&Event{BindingID: "left-click", Primitive: "button"}); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}
	if err := repo.Append(&Event{BindingID: "right-click", Primitive: "button"}); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}

	byBinding, err := repo.ByBindingID("left-click")
	if err != nil {
		t.Fatalf("failed to query events by binding id: %v", err)
	}
	if len(byBinding) != 1 {
		t.Errorf("expected 1 event for left-click, got %d", len(byBinding))
	}
}
