package wizard

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

type spinnerDoneMsg struct{ err error }

type spinnerModel struct {
	spinner spinner.Model
	message string
	fn      func() error
	err     error
	done    bool
}

func newSpinnerModel(message string, fn func() error) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
	return spinnerModel{spinner: s, message: message, fn: fn}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return spinnerDoneMsg{err: m.fn()} },
	)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.message + "\n"
}

// runWithSpinner runs fn while animating a spinner next to message. The
// spinner is cosmetic: if the terminal program itself fails, fn's own result
// still decides the outcome when available.
func runWithSpinner(out io.Writer, message string, fn func() error) error {
	program := tea.NewProgram(newSpinnerModel(message, fn), tea.WithOutput(out), tea.WithInput(nil))
	final, err := program.Run()
	if err != nil {
		log.WithError(err).Debug("spinner ui unavailable")
		return err
	}
	return final.(spinnerModel).err
}
