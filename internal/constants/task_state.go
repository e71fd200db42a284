package constants

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

type TaskState string

const (
	StateNew     TaskState = "NEW"
	StateActive  TaskState = "ACTIVE"
	StateDone    TaskState = "DONE"
	StateDeleted TaskState = "DELETED"
)

var ErrUnknownTaskState = errors.New("unknown task state")

// TaskStates lists every state a task may be stored with.
func TaskStates() []TaskState {
	return []TaskState{StateNew, StateActive, StateDone, StateDeleted}
}

func ParseTaskState(s string) (TaskState, error) {
	for _, st := range TaskStates() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTaskState, s)
}

func (s TaskState) IsValid() bool {
	_, err := ParseTaskState(string(s))
	return err == nil
}

func (s TaskState) String() string {
	return string(s)
}

func (s TaskState) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaskState, string(s))
	}
	return json.Marshal(string(s))
}

func (s *TaskState) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("task state must be a string: %w", err)
	}

	parsed, err := ParseTaskState(raw)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// Scan rejects stored values outside the known set so that a row written by
// another client with a foreign state fails the read instead of leaking out.
func (s *TaskState) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: NULL", ErrUnknownTaskState)
	default:
		return fmt.Errorf("cannot scan %T into TaskState", value)
	}

	parsed, err := ParseTaskState(raw)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

func (s TaskState) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaskState, string(s))
	}
	return string(s), nil
}
