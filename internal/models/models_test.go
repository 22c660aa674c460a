package models

import (
	"testing"
	"time"
)

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindTodo, KindDeadline, KindEvent} {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", k.String(), err)
		}
		if got != k {
			t.Fatalf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if _, err := ParseKind("meeting"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestKindSymbol(t *testing.T) {
	if KindTodo.Symbol() != "T" || KindDeadline.Symbol() != "D" || KindEvent.Symbol() != "E" {
		t.Fatalf("unexpected symbols: %s %s %s", KindTodo.Symbol(), KindDeadline.Symbol(), KindEvent.Symbol())
	}
}

func TestTaskSpan(t *testing.T) {
	start := time.Date(2024, 3, 1, 14, 0, 0, 0, time.Local)
	end := start.Add(90 * time.Minute)

	if _, _, ok := (Task{Kind: KindTodo}).Span(); ok {
		t.Fatalf("todo must not be scheduled")
	}

	s, e, ok := Task{Kind: KindDeadline, At: &start}.Span()
	if !ok || !s.Equal(start) || !e.Equal(start) {
		t.Fatalf("deadline span = %v %v %v", s, e, ok)
	}

	s, e, ok = Task{Kind: KindEvent, At: &start, End: &end}.Span()
	if !ok || !s.Equal(start) || !e.Equal(end) {
		t.Fatalf("event span = %v %v %v", s, e, ok)
	}
}
