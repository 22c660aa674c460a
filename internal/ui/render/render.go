// Package render turns command responses into the text shown to the user.
package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tgienger/byteme/internal/command"
	"github.com/tgienger/byteme/internal/interval"
	"github.com/tgienger/byteme/internal/models"
	"github.com/tgienger/byteme/internal/ui/styles"
)

const (
	whenLayout = "Jan 02 2006 15:04"
	dayLayout  = "Mon, 02 Jan 2006"
	clock      = "15:04"
)

type Renderer struct {
	s *styles.Styles
}

func New(s *styles.Styles) *Renderer {
	return &Renderer{s: s}
}

// Welcome is the banner shown when the console starts
func (r *Renderer) Welcome() string {
	return r.s.Title.Render("Hello! I'm ByteMe 🐣") + "\n" +
		r.s.TitleMuted.Render("What can I do for you? Type help for the list of commands.")
}

// Response renders the outcome of a command
func (r *Renderer) Response(resp command.Response) string {
	switch resp.Kind {
	case command.ResponseAdded:
		return r.s.Success.Render("Got it. I've added this task:") + "\n  " +
			r.Task(*resp.Task) + "\n" + r.count(resp.Count)
	case command.ResponseList:
		if len(resp.Tasks) == 0 {
			return r.s.Muted.Render("Your list is empty.")
		}
		return "Here are the tasks in your list:\n" + r.taskList(resp.Tasks)
	case command.ResponseDone:
		return r.s.Success.Render("Nice! I've marked this task as done:") + "\n  " + r.Task(*resp.Task)
	case command.ResponseDeleted:
		return "Noted. I've removed this task:\n  " + r.Task(*resp.Task) + "\n" + r.count(resp.Count)
	case command.ResponseFound:
		if len(resp.Tasks) == 0 {
			return r.s.Muted.Render("No matching tasks.")
		}
		return "Here are the matching tasks in your list:\n" + r.taskList(resp.Tasks)
	case command.ResponseFree:
		return r.FreeSlots(resp.Date, resp.Free, resp.Busy)
	case command.ResponseHelp:
		return r.Help()
	case command.ResponseBye:
		return "Bye. Hope to see you again soon!"
	}
	return ""
}

// Task renders a single task line such as
// [E][✓] meeting (at: Mar 01 2024 14:00 - 15:30)
func (r *Renderer) Task(t models.Task) string {
	status := r.s.TaskPending.Render("[ ]")
	if t.Done {
		status = r.s.TaskDone.Render("[✓]")
	}

	line := r.s.TaskKind.Render("["+t.Kind.Symbol()+"]") + status + " " + r.s.TaskTitle.Render(t.Description)
	if when := describeWhen(t); when != "" {
		line += " " + r.s.TaskWhen.Render("("+when+")")
	}
	return line
}

func describeWhen(t models.Task) string {
	if t.At == nil {
		return ""
	}
	switch t.Kind {
	case models.KindDeadline:
		return "by: " + t.At.Format(whenLayout)
	case models.KindEvent:
		when := "at: " + t.At.Format(whenLayout)
		if t.End != nil {
			if sameDay(*t.At, *t.End) {
				when += " - " + t.End.Format(clock)
			} else {
				when += " - " + t.End.Format(whenLayout)
			}
		}
		return when
	}
	return ""
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (r *Renderer) taskList(tasks []models.Task) string {
	var b strings.Builder
	for i, t := range tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.s.TaskIndex.Render(fmt.Sprintf("%2d.", i+1)))
		b.WriteString(" ")
		b.WriteString(r.Task(t))
	}
	return b.String()
}

func (r *Renderer) count(n int) string {
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	return r.s.Muted.Render(fmt.Sprintf("Now you have %d %s in the list.", n, noun))
}

// FreeSlots renders the free intervals of date, with the busy spans
// between them for context
func (r *Renderer) FreeSlots(date time.Time, free, busy []interval.Interval) string {
	var b strings.Builder
	day := date.Format(dayLayout)

	if len(free) == 0 {
		b.WriteString(r.s.Muted.Render("No free time on " + day + "."))
		return b.String()
	}

	b.WriteString("Free time on " + day + ":")

	type slot struct {
		iv   interval.Interval
		free bool
	}
	timeline := make([]slot, 0, len(free)+len(busy))
	for _, iv := range free {
		timeline = append(timeline, slot{iv: iv, free: true})
	}
	for _, iv := range busy {
		timeline = append(timeline, slot{iv: iv})
	}
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].iv.Compare(timeline[j].iv) < 0
	})

	for _, sl := range timeline {
		span := fmt.Sprintf("%s - %s", formatClock(date, sl.iv.Start()), formatClock(date, sl.iv.End()))
		b.WriteString("\n  ")
		if sl.free {
			b.WriteString(r.s.SlotFree.Render("free  " + span))
		} else {
			b.WriteString(r.s.SlotBusy.Render("busy  " + span))
		}
		b.WriteString(" " + r.s.SlotDuration.Render("("+FormatDuration(sl.iv.Duration())+")"))
	}
	return b.String()
}

// formatClock prints the time of day, using 24:00 for the end of date
func formatClock(date, t time.Time) string {
	if !sameDay(date, t) && t.After(date) {
		return "24:00"
	}
	return t.Format(clock)
}

// FormatDuration prints whole hours and minutes: 14h, 1h30m, 45m
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// Help lists the commands the console understands
func (r *Renderer) Help() string {
	commands := [][2]string{
		{"list", "show all tasks"},
		{"todo <description>", "add a todo"},
		{"deadline <description> /by <yyyy-mm-dd hh:mm>", "add a deadline"},
		{"event <description> /at <yyyy-mm-dd hh:mm> [/to <yyyy-mm-dd hh:mm>]", "add an event"},
		{"done <n>", "mark task n as done"},
		{"delete <n>", "remove task n"},
		{"find <keyword>", "search descriptions"},
		{"free time <yyyy-mm-dd>", "show free time on a day"},
		{"bye", "quit"},
	}

	var b strings.Builder
	b.WriteString("Commands:")
	for _, c := range commands {
		b.WriteString("\n  " + r.s.HelpKey.Render(c[0]) + "  " + r.s.HelpDesc.Render(c[1]))
	}
	return b.String()
}

// Error renders a failed command. Errors that are not command errors are
// shown as they are.
func (r *Renderer) Error(err error) string {
	var cmdErr *command.Error
	if !errors.As(err, &cmdErr) {
		return r.s.Error.Render("☹ Something went wrong: " + err.Error())
	}

	var msg string
	switch cmdErr.Kind {
	case command.InvalidInput:
		msg = "I'm sorry, but I don't know what that means: " + cmdErr.Detail
	case command.NoDescription:
		msg = "The description of " + cmdErr.Detail + " cannot be empty."
	case command.NoDate:
		msg = "The time after " + cmdErr.Detail + " cannot be empty."
	case command.NotFound:
		msg = "I can't find " + cmdErr.Detail + " in your list."
	case command.InvalidInterval:
		msg = "A task in " + cmdErr.Detail + " ends before it starts"
		var invalid *interval.InvalidIntervalError
		if errors.As(err, &invalid) {
			msg += fmt.Sprintf(" (%s - %s)", invalid.Start.Format(whenLayout), invalid.End.Format(whenLayout))
		}
		msg += "."
	default:
		msg = cmdErr.Error()
	}
	return r.s.Error.Render("☹ " + msg)
}
