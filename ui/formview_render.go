package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"a2ui/renderer"
	"a2ui/schema"
)

const barWidth = 20

// View renders every element in order. active is false while another pane
// has keyboard focus; the focus marker is then hidden.
func (f *FormView) View(active bool) string {
	elements := f.surface.Elements()
	if len(elements) == 0 {
		return DimStyle.Render("Nothing rendered yet.")
	}

	focused, hasFocus := f.Focused()
	width := f.width
	if width <= 0 {
		width = 60
	}

	blocks := make([]string, 0, len(elements))
	for _, el := range elements {
		isFocused := active && hasFocus && el.ID() == focused.ID()
		block := f.renderElement(el, isFocused, width-2)

		marker := "  "
		if isFocused {
			marker = FocusStyle.Render("▸ ")
		}
		blocks = append(blocks, indentBlock(block, marker))
	}
	return strings.Join(blocks, "\n")
}

func indentBlock(block, marker string) string {
	lines := strings.Split(block, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = marker + lines[i]
		} else {
			lines[i] = "  " + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func (f *FormView) renderElement(el renderer.Element, focused bool, width int) string {
	switch c := el.Component.(type) {
	case schema.Text:
		return wordWrap(c.Content, width)

	case schema.Heading:
		level := renderer.HeadingLevel(c)
		content := c.Content
		if level >= 4 {
			content = strings.Repeat("#", level) + " " + content
		}
		return headingStyle(level).Render(wordWrap(content, width))

	case schema.Input:
		return withLabel(c.Label, f.textField(el, focused, c.Placeholder))

	case schema.Datetime:
		label := fmt.Sprintf("%s (%s)", c.Label, c.InputType)
		return withLabel(label, f.textField(el, focused, placeholderFor(c)))

	case schema.Textarea:
		if focused {
			return withLabel(c.Label, f.area.View())
		}
		rows := renderer.TextareaRows(c)
		body := el.Text
		if body == "" {
			body = DimStyle.Render(c.Placeholder)
		}
		lines := strings.Split(wordWrap(body, width-4), "\n")
		for len(lines) < rows {
			lines = append(lines, "")
		}
		box := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(borderColor).Width(width - 4)
		return withLabel(c.Label, box.Render(strings.Join(lines[:rows], "\n")))

	case schema.Button:
		if focused {
			return focusedButtonStyle.Render(c.Label)
		}
		return buttonStyle.Render(c.Label)

	case schema.Select:
		current := DimStyle.Render("(none)")
		if el.Choice != renderer.NoChoice {
			current = c.Options[el.Choice]
		}
		value := "‹ " + current + " ›"
		if focused {
			value = SelectedStyle.Render(value)
		}
		return fmt.Sprintf("%s %s", labelText(c.Label), value)

	case schema.Radio:
		return optionList(c.Label, c.Options, func(i int) string {
			if i == el.Choice {
				return "(•)"
			}
			return "( )"
		}, focused, f.option)

	case schema.Checkbox:
		return optionList(c.Label, c.Options, func(i int) string {
			if el.Checked[i] {
				return "[x]"
			}
			return "[ ]"
		}, focused, f.option)

	case schema.Toggle:
		state := DimStyle.Render("[off]")
		if el.On {
			state = lipgloss.NewStyle().Foreground(successColor).Render("[on] ")
		}
		return state + " " + c.Label

	case schema.Slider:
		fill := 0.0
		if c.Max > c.Min {
			fill = (el.Number - c.Min) / (c.Max - c.Min)
		}
		bar := renderBar(fill)
		if focused {
			bar = SelectedStyle.Render(bar)
		}
		return fmt.Sprintf("%s\n%s %s", labelText(c.Label), bar, renderer.FormatNumber(el.Number))

	case schema.Image:
		return DimStyle.Render(fmt.Sprintf("[image: %s] %s", c.Alt, c.Src))

	case schema.Link:
		return LinkStyle.Render(c.Label) + " " + DimStyle.Render(c.Href)

	case schema.Divider:
		return DimStyle.Render(strings.Repeat("─", max(width-2, 1)))

	case schema.Progress:
		fill := 0.0
		if c.Max > 0 {
			fill = c.Value / c.Max
		}
		line := fmt.Sprintf("%s %d%%", renderBar(fill), int(math.Round(clamp01(fill)*100)))
		if c.Label == "" {
			return line
		}
		return labelText(c.Label) + "\n" + line

	case schema.List:
		lines := make([]string, len(c.Items))
		for i, item := range c.Items {
			bullet := "•"
			if c.Ordered {
				bullet = fmt.Sprintf("%d.", i+1)
			}
			lines[i] = bullet + " " + item
		}
		return strings.Join(lines, "\n")

	case schema.Alert:
		return alertStyle(c.Variant).Width(width - 2).Render(c.Content)
	}
	return ""
}

func (f *FormView) textField(el renderer.Element, focused bool, placeholder string) string {
	if focused {
		return "[ " + f.text.View() + " ]"
	}
	if el.Text == "" {
		return "[ " + DimStyle.Render(placeholder) + " ]"
	}
	return "[ " + truncate(el.Text, max(f.width-8, 4)) + " ]"
}

func optionList(label string, options []string, mark func(int) string, focused bool, cursor int) string {
	lines := []string{labelText(label)}
	for i, opt := range options {
		line := mark(i) + " " + opt
		if focused && i == cursor {
			line = SelectedStyle.Render(line)
		}
		lines = append(lines, "  "+line)
	}
	return strings.Join(lines, "\n")
}

func withLabel(label, body string) string {
	if label == "" {
		return body
	}
	return labelText(label) + "\n" + body
}

func labelText(label string) string {
	return TitleStyle.Render(label)
}

func renderBar(fill float64) string {
	n := int(math.Round(clamp01(fill) * barWidth))
	return strings.Repeat("━", n) + DimStyle.Render(strings.Repeat("─", barWidth-n))
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
