package views

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/byteme/internal/command"
	"github.com/tgienger/byteme/internal/models"
)

type fakeRunner struct {
	lines []string
	resp  command.Response
	err   error
}

func (f *fakeRunner) Run(_ context.Context, line string) (command.Response, error) {
	f.lines = append(f.lines, line)
	return f.resp, f.err
}

func typeLine(v *ConsoleView, line string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
}

func submit(t *testing.T, v *ConsoleView) tea.Msg {
	t.Helper()
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a command after submit")
	}
	return cmd()
}

func TestConsoleRunsCommand(t *testing.T) {
	task := models.Task{Kind: models.KindTodo, Description: "read book"}
	runner := &fakeRunner{resp: command.Response{Kind: command.ResponseAdded, Task: &task, Count: 1}}
	v := NewConsoleView(runner)
	v.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	typeLine(v, "todo read book")
	msg := submit(t, v)

	if len(runner.lines) != 1 || runner.lines[0] != "todo read book" {
		t.Fatalf("unexpected runner input: %q", runner.lines)
	}
	if v.input.Value() != "" {
		t.Fatalf("expected input to be cleared, got %q", v.input.Value())
	}

	_, cmd := v.Update(msg)
	if cmd != nil {
		t.Fatalf("unexpected follow-up command")
	}

	last := v.Transcript()[len(v.Transcript())-1]
	if !strings.Contains(last, "read book") || !strings.Contains(last, "Now you have 1 task") {
		t.Fatalf("unexpected transcript entry: %s", last)
	}
	if !strings.Contains(v.View(), "ByteMe") {
		t.Fatalf("view is missing the title")
	}
}

func TestConsoleShowsErrors(t *testing.T) {
	runner := &fakeRunner{err: &command.Error{Kind: command.NoDescription, Detail: "'todo'"}}
	v := NewConsoleView(runner)

	typeLine(v, "todo")
	v.Update(submit(t, v))

	last := v.Transcript()[len(v.Transcript())-1]
	if !strings.Contains(last, "cannot be empty") {
		t.Fatalf("unexpected transcript entry: %s", last)
	}

	runner.err = errors.New("database is locked")
	typeLine(v, "list")
	v.Update(submit(t, v))
	last = v.Transcript()[len(v.Transcript())-1]
	if !strings.Contains(last, "database is locked") {
		t.Fatalf("unexpected transcript entry: %s", last)
	}
}

func TestConsoleQuitsOnBye(t *testing.T) {
	runner := &fakeRunner{resp: command.Response{Kind: command.ResponseBye}}
	v := NewConsoleView(runner)

	typeLine(v, "bye")
	_, cmd := v.Update(submit(t, v))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestConsoleIgnoresEmptyInput(t *testing.T) {
	runner := &fakeRunner{}
	v := NewConsoleView(runner)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || len(runner.lines) != 0 {
		t.Fatalf("empty input should not run anything")
	}
}

func TestConsoleHistory(t *testing.T) {
	runner := &fakeRunner{resp: command.Response{Kind: command.ResponseHelp}}
	v := NewConsoleView(runner)

	for _, line := range []string{"list", "help"} {
		typeLine(v, line)
		v.Update(submit(t, v))
	}

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	if v.input.Value() != "help" {
		t.Fatalf("expected last command, got %q", v.input.Value())
	}
	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	if v.input.Value() != "list" {
		t.Fatalf("expected first command, got %q", v.input.Value())
	}
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	if v.input.Value() != "" {
		t.Fatalf("expected empty prompt after browsing past the end, got %q", v.input.Value())
	}
}
