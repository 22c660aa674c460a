package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tgienger/byteme/internal/command"
	"github.com/tgienger/byteme/internal/interval"
	"github.com/tgienger/byteme/internal/models"
	"github.com/tgienger/byteme/internal/ui/styles"
)

var day = time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)

func clockAt(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func mustInterval(t *testing.T, start, end time.Time) interval.Interval {
	t.Helper()
	iv, err := interval.New(start, end)
	if err != nil {
		t.Fatal(err)
	}
	return iv
}

func assertContains(t *testing.T, out string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(out, p) {
			t.Fatalf("output missing %q:\n%s", p, out)
		}
	}
}

func TestTask(t *testing.T) {
	r := New(styles.NewStyles())
	start, end := clockAt(14, 0), clockAt(15, 30)

	out := r.Task(models.Task{Kind: models.KindEvent, Description: "meeting", At: &start, End: &end, Done: true})
	assertContains(t, out, "[E]", "[✓]", "meeting", "at: Mar 01 2024 14:00 - 15:30")

	out = r.Task(models.Task{Kind: models.KindDeadline, Description: "report", At: &start})
	assertContains(t, out, "[D]", "[ ]", "report", "by: Mar 01 2024 14:00")

	out = r.Task(models.Task{Kind: models.KindTodo, Description: "read"})
	assertContains(t, out, "[T]", "read")
	if strings.Contains(out, "(") {
		t.Fatalf("todo should not show a time: %s", out)
	}
}

func TestResponseAddedAndList(t *testing.T) {
	r := New(styles.NewStyles())
	task := models.Task{Kind: models.KindTodo, Description: "read book"}

	out := r.Response(command.Response{Kind: command.ResponseAdded, Task: &task, Count: 1})
	assertContains(t, out, "added this task", "read book", "Now you have 1 task in the list.")

	out = r.Response(command.Response{Kind: command.ResponseList, Tasks: []models.Task{task, task}, Count: 2})
	assertContains(t, out, " 1.", " 2.", "read book")

	out = r.Response(command.Response{Kind: command.ResponseList})
	assertContains(t, out, "empty")
}

func TestFreeSlots(t *testing.T) {
	r := New(styles.NewStyles())
	free := []interval.Interval{
		mustInterval(t, clockAt(0, 0), clockAt(14, 0)),
		mustInterval(t, clockAt(15, 30), clockAt(24, 0)),
	}
	busy := []interval.Interval{mustInterval(t, clockAt(14, 0), clockAt(15, 30))}

	out := r.FreeSlots(day, free, busy)
	assertContains(t, out,
		"Free time on Fri, 01 Mar 2024",
		"free  00:00 - 14:00", "(14h)",
		"busy  14:00 - 15:30", "(1h30m)",
		"free  15:30 - 24:00", "(8h30m)",
	)
	if strings.Index(out, "00:00 - 14:00") > strings.Index(out, "14:00 - 15:30") {
		t.Fatalf("slots out of order:\n%s", out)
	}

	out = r.FreeSlots(day, nil, []interval.Interval{mustInterval(t, clockAt(0, 0), clockAt(24, 0))})
	assertContains(t, out, "No free time on Fri, 01 Mar 2024")
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		14 * time.Hour:   "14h",
		90 * time.Minute: "1h30m",
		45 * time.Minute: "45m",
		0:                "0m",
	}
	for d, want := range cases {
		if got := FormatDuration(d); got != want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestError(t *testing.T) {
	r := New(styles.NewStyles())

	_, err := command.Parse("todo")
	assertContains(t, r.Error(err), "description of 'todo' cannot be empty")

	_, err = command.Parse("deadline x")
	assertContains(t, r.Error(err), "time after '/by' cannot be empty")

	_, err = command.Parse("dance")
	assertContains(t, r.Error(err), "don't know what that means")

	_, invalid := interval.New(clockAt(15, 0), clockAt(14, 0))
	err = &command.Error{Kind: command.InvalidInterval, Detail: "'free time'", Err: invalid}
	assertContains(t, r.Error(err), "ends before it starts", "Mar 01 2024 15:00 - Mar 01 2024 14:00")

	assertContains(t, r.Error(fmt.Errorf("disk full")), "Something went wrong: disk full")
}

func TestHelpListsCommands(t *testing.T) {
	out := New(styles.NewStyles()).Help()
	for _, verb := range []string{"list", "todo", "deadline", "event", "done", "delete", "find", "free time", "bye"} {
		assertContains(t, out, verb)
	}
}
