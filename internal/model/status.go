package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is the parent of every input rejection in the core.
var ErrValidation = errors.New("validation failed")

// ErrInvalidStatus reports a status string outside the pipeline.
var ErrInvalidStatus = errors.New("invalid status")

type Status string

const (
	StatusPlanning  Status = "planning"
	StatusScripting Status = "scripting"
	StatusRecording Status = "recording"
	StatusEditing   Status = "editing"
	StatusReady     Status = "ready"
	StatusUploaded  Status = "uploaded"
)

// Pipeline lists every stage in production order.
var Pipeline = []Status{
	StatusPlanning,
	StatusScripting,
	StatusRecording,
	StatusEditing,
	StatusReady,
	StatusUploaded,
}

type stage struct {
	next   Status
	action string
}

// stages maps each status to its single legal successor and the label of the
// action that performs it. uploaded has no entry.
var stages = map[Status]stage{
	StatusPlanning:  {next: StatusScripting, action: "Start Script"},
	StatusScripting: {next: StatusRecording, action: "Start Recording"},
	StatusRecording: {next: StatusEditing, action: "Start Editing"},
	StatusEditing:   {next: StatusReady, action: "Mark Ready"},
	StatusReady:     {next: StatusUploaded, action: "Upload Now"},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s.Index() >= 0
}

// Index returns the position of s in Pipeline, or -1.
func (s Status) Index() int {
	for i, v := range Pipeline {
		if v == s {
			return i
		}
	}
	return -1
}

func (s Status) IsTerminal() bool {
	return s == StatusUploaded
}

// Next returns the immediate successor of s. ok is false for uploaded and
// for unknown statuses.
func (s Status) Next() (Status, bool) {
	st, ok := stages[s]
	if !ok {
		return "", false
	}
	return st.next, true
}

// Action is the label of the step that moves s forward, empty when terminal.
func (s Status) Action() string {
	return stages[s].action
}

func (s Status) CanTransitionTo(target Status) bool {
	next, ok := s.Next()
	return ok && next == target
}

func ValidateStatus(s Status) error {
	if s.IsValid() {
		return nil
	}
	return fmt.Errorf("%w %q: must be one of %s", ErrInvalidStatus, s, pipelineList())
}

// ParseStatus accepts a status name in any case with surrounding space.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	if err := ValidateStatus(s); err != nil {
		return "", err
	}
	return s, nil
}

func pipelineList() string {
	names := make([]string, len(Pipeline))
	for i, s := range Pipeline {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
