// internal/tui/app.go
//
// Interactive front end for the task list. It uses bubbletea (Model, Update,
// View). Every key that changes the list goes through the session, which saves
// the file immediately; quitting performs the final save.

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo/internal/output"
	"todo/internal/session"
	"todo/internal/store"
	"todo/internal/task"
)

type mode int

const (
	modeList  mode = iota // moving the selection, toggling, removing
	modeInput             // typing a new task
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))
	doneStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#888888"))
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// Model is the bubbletea model for the task list.
type Model struct {
	sess   *session.Session
	tasks  []task.Task
	cursor int
	mode   mode
	input  textinput.Model
	status string

	closed   bool
	closeErr error
}

// New creates a model over sess.
func New(sess *session.Session) Model {
	input := textinput.New()
	input.Placeholder = "new task"
	input.Prompt = "+ "
	input.CharLimit = 256

	return Model{
		sess:  sess,
		tasks: sess.Tasks(),
		input: input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == modeInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if key.String() == "ctrl+c" {
		return m.close()
	}
	if m.mode == modeInput {
		return m.updateInput(key)
	}
	return m.updateList(key)
}

func (m Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "x", " ":
		if !m.hasSelection() {
			m.status = "select a task to toggle"
			break
		}
		m.apply(m.sess.ToggleAt(m.cursor))
	case "d", "delete":
		if !m.hasSelection() {
			m.status = "select a task to remove"
			break
		}
		m.apply(m.sess.RemoveAt(m.cursor))
	case "a", "i":
		m.mode = modeInput
		m.status = ""
		return m, m.input.Focus()
	case "q", "esc":
		return m.close()
	}
	return m, nil
}

func (m Model) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case "enter":
		// Blank input is ignored, like an empty text field.
		if strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		res, err := m.sess.Add(m.input.Value())
		m.apply(res, err)
		if err == nil || isSaveError(err) {
			m.cursor = res.Index
			m.input.Reset()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

// apply refreshes the view state after a session call.
func (m *Model) apply(_ session.Result, err error) {
	m.tasks = m.sess.Tasks()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	switch {
	case err == nil:
		m.status = ""
	case isSaveError(err):
		m.status = "error: " + err.Error()
	default:
		m.status = err.Error()
	}
}

func (m Model) close() (tea.Model, tea.Cmd) {
	m.closed = true
	m.closeErr = m.sess.Close()
	return m, tea.Quit
}

func (m Model) hasSelection() bool {
	return m.cursor >= 0 && m.cursor < len(m.tasks)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.closed {
		return ""
	}

	var rows []string
	if len(m.tasks) == 0 {
		rows = append(rows, emptyStyle.Render("no tasks yet, press a to add one"))
	}
	for i, t := range m.tasks {
		label := output.TaskLabel(t)
		if t.Completed {
			label = doneStyle.Render(label)
		}
		if i == m.cursor && m.mode == modeList {
			rows = append(rows, selectedStyle.Render("> ")+label)
		} else {
			rows = append(rows, "  "+label)
		}
	}

	sections := []string{
		titleStyle.Render(fmt.Sprintf("Tasks (%d)", len(m.tasks))),
		boxStyle.Render(strings.Join(rows, "\n")),
	}
	if m.mode == modeInput {
		sections = append(sections, m.input.View(), hintStyle.Render("enter add • esc back"))
	} else {
		sections = append(sections, hintStyle.Render("↑/k ↓/j move • x toggle • d remove • a add • q quit"))
	}
	if m.status != "" {
		sections = append(sections, errorStyle.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

// Tasks returns the rows the model currently shows.
func (m Model) Tasks() []task.Task {
	return m.tasks
}

// Cursor returns the selected row.
func (m Model) Cursor() int {
	return m.cursor
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Closed reports whether the final save ran, and its error.
func (m Model) Closed() (bool, error) {
	return m.closed, m.closeErr
}

// Run starts the terminal UI and blocks until the user quits or ctx ends.
// The returned error is the final save error, if any.
func Run(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(sess),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := p.Run()

	if m, ok := final.(Model); ok {
		if closed, closeErr := m.Closed(); closed {
			if closeErr != nil {
				return closeErr
			}
			return ignoreKilled(err)
		}
	}

	// Interrupted without a clean quit: still write the final state.
	if closeErr := sess.Close(); closeErr != nil {
		return closeErr
	}
	return ignoreKilled(err)
}

func ignoreKilled(err error) error {
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func isSaveError(err error) bool {
	var saveErr *store.SaveError
	return errors.As(err, &saveErr)
}
