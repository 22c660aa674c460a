package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/byteme/internal/command"
	"github.com/tgienger/byteme/internal/ui/keys"
	"github.com/tgienger/byteme/internal/ui/render"
	"github.com/tgienger/byteme/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// Runner executes one line of user input. *command.Executor implements it.
type Runner interface {
	Run(ctx context.Context, line string) (command.Response, error)
}

// ConsoleView is a prompt with a scrolling transcript of commands and
// their responses
type ConsoleView struct {
	runner   Runner
	renderer *render.Renderer
	styles   *styles.Styles
	keys     keys.KeyMap
	help     help.Model

	input    textinput.Model
	viewport viewport.Model

	transcript []string
	history    []string
	historyIdx int // len(history) means "not browsing"
	busy       bool

	width  int
	height int
}

// commandDoneMsg carries the result of a command back to Update
type commandDoneMsg struct {
	resp command.Response
	err  error
}

func NewConsoleView(runner Runner) *ConsoleView {
	s := styles.NewStyles()

	input := textinput.New()
	input.Placeholder = "todo read book, free time 2024-03-01, help..."
	input.Prompt = "› "
	input.CharLimit = 500
	input.Focus()

	r := render.New(s)

	return &ConsoleView{
		runner:     runner,
		renderer:   r,
		styles:     s,
		keys:       keys.DefaultKeyMap(),
		help:       help.New(),
		input:      input,
		viewport:   viewport.New(0, 0),
		transcript: []string{r.Welcome()},
	}
}

func (v *ConsoleView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *ConsoleView) run(line string) tea.Cmd {
	return func() tea.Msg {
		resp, err := v.runner.Run(context.Background(), line)
		return commandDoneMsg{resp: resp, err: err}
	}
}

// Update handles messages
func (v *ConsoleView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.input.Width = clamp(contentWidth-8, 10, styles.MaxWidth)
		v.help.Width = contentWidth
		v.viewport.Width = contentWidth
		// title, input box (3 lines) and help
		v.viewport.Height = max(v.height-6, 1)
		v.refresh()
		return v, nil

	case commandDoneMsg:
		v.busy = false
		if msg.err != nil {
			v.append(v.renderer.Error(msg.err))
			return v, nil
		}
		v.append(v.renderer.Response(msg.resp))
		if msg.resp.Kind == command.ResponseBye {
			return v, tea.Quit
		}
		return v, nil

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *ConsoleView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Submit):
		line := strings.TrimSpace(v.input.Value())
		if line == "" || v.busy {
			return v, nil
		}
		v.input.SetValue("")
		v.history = append(v.history, line)
		v.historyIdx = len(v.history)
		v.busy = true
		v.append(v.styles.Echo.Render("› " + line))
		return v, v.run(line)

	case key.Matches(msg, v.keys.History):
		v.browseHistory(msg.String() == "up")
		return v, nil

	case key.Matches(msg, v.keys.PageUp, v.keys.PageDown):
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd

	case key.Matches(msg, v.keys.Clear):
		v.transcript = nil
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *ConsoleView) browseHistory(up bool) {
	if len(v.history) == 0 {
		return
	}
	if up {
		v.historyIdx = max(v.historyIdx-1, 0)
	} else {
		v.historyIdx = min(v.historyIdx+1, len(v.history))
	}
	if v.historyIdx == len(v.history) {
		v.input.SetValue("")
		return
	}
	v.input.SetValue(v.history[v.historyIdx])
	v.input.CursorEnd()
}

func (v *ConsoleView) append(entry string) {
	v.transcript = append(v.transcript, entry)
	v.refresh()
}

// refresh rebuilds the viewport content and keeps it scrolled to the end
func (v *ConsoleView) refresh() {
	divider := v.styles.Divider.Render(strings.Repeat("─", clamp(styles.ContentWidth(v.width)-4, 10, styles.MaxWidth)))
	content := v.styles.Transcript.Render(strings.Join(v.transcript, "\n"+divider+"\n"))
	v.viewport.SetContent(content)
	v.viewport.GotoBottom()
}

// Transcript returns the entries shown so far
func (v *ConsoleView) Transcript() []string {
	return v.transcript
}

func (v *ConsoleView) View() string {
	var b strings.Builder

	b.WriteString(v.styles.TitleBar.Render("ByteMe"))
	b.WriteString(v.styles.TitleMuted.Render(" personal task tracker"))
	b.WriteString("\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")

	inputStyle := v.styles.InputFocused
	if v.busy {
		inputStyle = v.styles.Input
	}
	b.WriteString(inputStyle.Width(max(styles.ContentWidth(v.width)-2, 10)).Render(v.input.View()))
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(v.help.View(v.keys)))

	return styles.CenterView(b.String(), v.width, v.height)
}
