package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"a2ui/model"
)

// ErrorModal is a standalone modal for errors that stop the app before the
// main view starts (unreadable config, settings store failure).
type ErrorModal struct {
	title   string
	message string
	hint    string
	width   int
	height  int
}

func NewErrorModal(title, message string) ErrorModal {
	return ErrorModal{
		title:   title,
		message: message,
	}
}

// NewErrorModalFor builds the modal for err, with the hint for its kind.
func NewErrorModalFor(title string, err error) ErrorModal {
	m := NewErrorModal(title, err.Error())
	m.hint = model.Hint(err)
	return m
}

func (m ErrorModal) Init() tea.Cmd {
	return nil
}

func (m ErrorModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ErrorModal) View() string {
	if m.width < 20 || m.height < 10 {
		return "Terminal too small"
	}

	return RenderThreeSectionModal(m.title, errorLines(m.message, m.hint, 60), "Press Enter to quit", ModalTypeError, 60, m.width, m.height)
}

// errorLines lays out an error message and its hint for a modal body.
func errorLines(message, hint string, width int) []string {
	messageStyle := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	hintStyle := messageStyle.Foreground(dimColor).Italic(true)

	var lines []string
	for _, line := range strings.Split(wordWrap(message, width-4), "\n") {
		lines = append(lines, messageStyle.Render(line))
	}
	if hint != "" {
		lines = append(lines, "")
		for _, line := range strings.Split(wordWrap(hint, width-4), "\n") {
			lines = append(lines, hintStyle.Render(line))
		}
	}
	return lines
}
