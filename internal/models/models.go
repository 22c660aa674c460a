package models

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies what sort of task an item is
type Kind int

const (
	KindTodo Kind = iota
	KindDeadline
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return "todo"
	}
}

// Symbol is the one-letter tag shown in task listings
func (k Kind) Symbol() string {
	return strings.ToUpper(k.String()[:1])
}

// ParseKind is the inverse of Kind.String
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return KindTodo, nil
	case "deadline":
		return KindDeadline, nil
	case "event":
		return KindEvent, nil
	}
	return KindTodo, fmt.Errorf("unknown task kind %q", s)
}

// Task represents a single todo, deadline or event
type Task struct {
	ID          int64
	Kind        Kind
	Description string
	Done        bool
	At          *time.Time // deadline "by" or event start; nil for todos
	End         *time.Time // event end; nil for todos and deadlines
	CreatedAt   time.Time
}

// Span reports the time a task occupies. Todos have none, a deadline
// occupies the single instant it is due and an event runs from At to End.
func (t Task) Span() (start, end time.Time, ok bool) {
	if t.At == nil {
		return time.Time{}, time.Time{}, false
	}
	switch t.Kind {
	case KindDeadline:
		return *t.At, *t.At, true
	case KindEvent:
		if t.End == nil {
			return *t.At, *t.At, true
		}
		return *t.At, *t.End, true
	}
	return time.Time{}, time.Time{}, false
}
