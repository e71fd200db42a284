package constants

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseTaskState(t *testing.T) {
	for _, st := range TaskStates() {
		got, err := ParseTaskState(string(st))
		if err != nil {
			t.Fatalf("ParseTaskState(%q) error = %v", st, err)
		}
		if got != st {
			t.Errorf("expected %s, got %s", st, got)
		}
	}

	for _, raw := range []string{"", "active", "ARCHIVED", " ACTIVE"} {
		if _, err := ParseTaskState(raw); !errors.Is(err, ErrUnknownTaskState) {
			t.Errorf("ParseTaskState(%q) expected ErrUnknownTaskState, got %v", raw, err)
		}
	}
}

func TestTaskState_UnmarshalJSON(t *testing.T) {
	var payload struct {
		State TaskState `json:"state"`
	}

	if err := json.Unmarshal([]byte(`{"state":"ACTIVE"}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.State != StateActive {
		t.Errorf("expected %s, got %s", StateActive, payload.State)
	}

	err := json.Unmarshal([]byte(`{"state":"UNKNOWN"}`), &payload)
	if !errors.Is(err, ErrUnknownTaskState) {
		t.Errorf("expected ErrUnknownTaskState, got %v", err)
	}

	if err := json.Unmarshal([]byte(`{"state":3}`), &payload); err == nil {
		t.Error("expected error for non-string state")
	}
}

func TestTaskState_ScanAndValue(t *testing.T) {
	var s TaskState
	if err := s.Scan([]byte("DELETED")); err != nil {
		t.Fatalf("Scan error = %v", err)
	}
	if s != StateDeleted {
		t.Errorf("expected %s, got %s", StateDeleted, s)
	}

	if err := s.Scan("BOGUS"); !errors.Is(err, ErrUnknownTaskState) {
		t.Errorf("expected ErrUnknownTaskState, got %v", err)
	}
	if err := s.Scan(nil); !errors.Is(err, ErrUnknownTaskState) {
		t.Errorf("expected ErrUnknownTaskState for NULL, got %v", err)
	}

	v, err := StateDone.Value()
	if err != nil || v != "DONE" {
		t.Errorf("Value() = %v, %v", v, err)
	}
	if _, err := TaskState("nope").Value(); err == nil {
		t.Error("expected Value() to reject unknown state")
	}
}
