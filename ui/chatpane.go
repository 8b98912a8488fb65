package ui

import (
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"a2ui/config"
)

// ChatPane shows the chatbot half of a dual reply and holds the chatbot
// input line.
type ChatPane struct {
	viewport viewport.Model
	input    textinput.Model

	text     string // raw reply text
	rendered string
	turn     int
	width    int
}

func NewChatPane() ChatPane {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Prompt = "> "
	input.CharLimit = 4000

	return ChatPane{
		viewport: viewport.New(0, 0),
		input:    input,
	}
}

// SetSize lays out the viewport above a one-line input.
func (c *ChatPane) SetSize(width, height int) {
	c.width = width
	c.viewport.Width = width
	c.viewport.Height = max(height-2, 1)
	c.input.Width = width - 4
	c.refresh()
}

// SetReply stores new chatbot text and returns the command that renders it.
func (c *ChatPane) SetReply(text string, turn int) tea.Cmd {
	c.text = text
	c.turn = turn
	c.rendered = ""
	c.refresh()
	if text == "" {
		return nil
	}
	return renderMarkdownAsync(turn, text, c.width)
}

// ApplyRendered installs a finished markdown render unless a newer reply
// has arrived since.
func (c *ChatPane) ApplyRendered(msg markdownRenderedMsg) {
	if msg.Turn != c.turn {
		return
	}
	c.rendered = msg.Rendered
	c.refresh()
}

// ShowStatus replaces the pane content with a status line (loading, error).
func (c *ChatPane) ShowStatus(status string) {
	c.viewport.SetContent(status)
	c.viewport.GotoTop()
}

func (c *ChatPane) refresh() {
	switch {
	case c.rendered != "":
		c.viewport.SetContent(c.rendered)
	case c.text != "":
		c.viewport.SetContent(AssistantStyle.Render(wordWrap(c.text, max(c.width-2, 10))))
	default:
		c.viewport.SetContent(DimStyle.Render("The chatbot reply appears here."))
	}
}

func (c *ChatPane) Text() string { return c.text }

func (c *ChatPane) Input() string { return c.input.Value() }

func (c *ChatPane) SetInput(v string) {
	c.input.SetValue(v)
	c.input.CursorEnd()
}

func (c *ChatPane) Focus() tea.Cmd { return c.input.Focus() }

func (c *ChatPane) Blur() { c.input.Blur() }

// UpdateInput forwards a key to the input and reports whether its value
// changed.
func (c *ChatPane) UpdateInput(msg tea.Msg) (tea.Cmd, bool) {
	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd, c.input.Value() != before
}

func (c *ChatPane) ScrollDown() { c.viewport.ScrollDown(1) }

func (c *ChatPane) ScrollUp() { c.viewport.ScrollUp(1) }

func (c *ChatPane) View() string {
	return c.viewport.View() + "\n" + c.input.View()
}

func renderMarkdownAsync(turn int, content string, width int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		rendered := renderMarkdown(content, width)
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Markdown rendered in %v (%d chars)", time.Since(start), len(content))
		}
		return markdownRenderedMsg{Turn: turn, Rendered: rendered}
	}
}

// renderMarkdown renders with go-term-markdown. Autolink is off so plain URLs
// stay plain text for the terminal to detect.
func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}
	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	doc := p.Parse([]byte(content))
	out := gomarkdown.Render(doc, markdown.NewRenderer(width-2, 0))
	return strings.TrimRight(string(out), "\n")
}
