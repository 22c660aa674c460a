package command

import (
	"strconv"
	"strings"
	"time"
)

// Verb is the first word of a command line
type Verb string

const (
	VerbList     Verb = "list"
	VerbTodo     Verb = "todo"
	VerbDeadline Verb = "deadline"
	VerbEvent    Verb = "event"
	VerbDone     Verb = "done"
	VerbDelete   Verb = "delete"
	VerbFind     Verb = "find"
	VerbFree     Verb = "free"
	VerbHelp     Verb = "help"
	VerbBye      Verb = "bye"
)

// DateLayout is the calendar date format accepted by "free"
const DateLayout = "2006-01-02"

// DateTimeLayouts are tried in order for /by, /at and /to
var DateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 1504",
	"2006-01-02T15:04",
}

// Command is a parsed command line
type Command struct {
	Verb        Verb
	Description string
	At          time.Time
	End         *time.Time
	// Position is the 1-based list position for done and delete
	Position int
	Query    string
	// Date is midnight of the queried day for free
	Date time.Time
}

// Parse turns a line of user input into a Command. Dates are read as naive
// local time.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	word, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch Verb(strings.ToLower(word)) {
	case VerbList:
		return Command{Verb: VerbList}, nil
	case VerbHelp:
		return Command{Verb: VerbHelp}, nil
	case VerbBye, "exit", "quit":
		return Command{Verb: VerbBye}, nil
	case VerbTodo:
		if rest == "" {
			return Command{}, newError(NoDescription, "'todo'")
		}
		return Command{Verb: VerbTodo, Description: rest}, nil
	case VerbDeadline:
		return parseTimed(VerbDeadline, rest, "/by")
	case VerbEvent:
		return parseTimed(VerbEvent, rest, "/at")
	case VerbDone, VerbDelete:
		return parsePosition(Verb(strings.ToLower(word)), rest)
	case VerbFind:
		if rest == "" {
			return Command{}, newError(NoDescription, "'find'")
		}
		return Command{Verb: VerbFind, Query: rest}, nil
	case VerbFree:
		return parseFree(rest)
	}
	return Command{}, newError(InvalidInput, "%q", line)
}

func parseTimed(verb Verb, rest, marker string) (Command, error) {
	desc, when, found := cutMarker(rest, marker)
	if desc == "" {
		return Command{}, newError(NoDescription, "'%s'", verb)
	}
	if !found || when == "" {
		return Command{}, newError(NoDate, "'%s'", marker)
	}

	cmd := Command{Verb: verb, Description: desc}

	if verb == VerbEvent {
		start, end, hasEnd := cutMarker(when, "/to")
		if hasEnd {
			if end == "" {
				return Command{}, newError(NoDate, "'/to'")
			}
			t, err := ParseDateTime(end)
			if err != nil {
				return Command{}, err
			}
			cmd.End = &t
		}
		when = start
	}

	at, err := ParseDateTime(when)
	if err != nil {
		return Command{}, err
	}
	cmd.At = at
	return cmd, nil
}

// cutMarker splits "text /marker value" around the marker. found is false
// when the marker is missing.
func cutMarker(s, marker string) (before, after string, found bool) {
	idx := strings.Index(s, marker)
	if idx < 0 {
		return strings.TrimSpace(s), "", false
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(marker):]), true
}

func parsePosition(verb Verb, rest string) (Command, error) {
	if rest == "" {
		return Command{}, newError(InvalidInput, "'%s' needs a task number", verb)
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return Command{}, newError(InvalidInput, "task number %q", rest)
	}
	return Command{Verb: verb, Position: n}, nil
}

func parseFree(rest string) (Command, error) {
	// "free time <date>" and "free <date>"
	if word, after, _ := strings.Cut(rest, " "); strings.EqualFold(word, "time") {
		rest = strings.TrimSpace(after)
	}
	if rest == "" {
		return Command{}, newError(NoDate, "'free time'")
	}
	date, err := ParseDate(rest)
	if err != nil {
		return Command{}, err
	}
	return Command{Verb: VerbFree, Date: date}, nil
}

// ParseDate reads a calendar date as local midnight
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, &Error{Kind: InvalidInput, Detail: "date " + strconv.Quote(s), Err: err}
	}
	return t, nil
}

// ParseDateTime reads a naive local date-time in any of DateTimeLayouts
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, newError(InvalidInput, "date-time %q, expected e.g. 2024-03-01 14:00", s)
}
