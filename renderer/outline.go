package renderer

import (
	"fmt"
	"strings"

	"a2ui/schema"
)

// Outline renders the surface as plain text, one block per element. It is
// used where no terminal styling is available (tool output, logs).
func (s *Surface) Outline() string {
	var b strings.Builder
	for _, e := range s.elements {
		writeOutline(&b, e)
	}
	return b.String()
}

func writeOutline(b *strings.Builder, e *Element) {
	switch c := e.Component.(type) {
	case schema.Text:
		fmt.Fprintf(b, "%s\n", c.Content)
	case schema.Heading:
		fmt.Fprintf(b, "%s %s\n", strings.Repeat("#", HeadingLevel(c)), c.Content)
	case schema.Input:
		fmt.Fprintf(b, "%s[%s] %q\n", labelPrefix(c.Label), c.ID, orPlaceholder(e.Text, c.Placeholder))
	case schema.Textarea:
		fmt.Fprintf(b, "%s[%s, %d rows] %q\n", labelPrefix(c.Label), c.ID, TextareaRows(c), orPlaceholder(e.Text, c.Placeholder))
	case schema.Button:
		fmt.Fprintf(b, "<%s> (%s)\n", c.Label, c.ID)
	case schema.Select:
		fmt.Fprintf(b, "%s:\n", c.Label)
		for i, opt := range c.Options {
			fmt.Fprintf(b, "  %s %s\n", mark(i == e.Choice, "▸", " "), opt)
		}
	case schema.Radio:
		fmt.Fprintf(b, "%s:\n", c.Label)
		for i, opt := range c.Options {
			fmt.Fprintf(b, "  %s %s\n", mark(i == e.Choice, "(•)", "( )"), opt)
		}
	case schema.Checkbox:
		fmt.Fprintf(b, "%s:\n", c.Label)
		for i, opt := range c.Options {
			fmt.Fprintf(b, "  %s %s\n", mark(e.Checked[i], "[x]", "[ ]"), opt)
		}
	case schema.Toggle:
		fmt.Fprintf(b, "%s %s\n", mark(e.On, "[on] ", "[off]"), c.Label)
	case schema.Slider:
		fmt.Fprintf(b, "%s: %s (%s–%s)\n", c.Label, FormatNumber(e.Number), FormatNumber(c.Min), FormatNumber(c.Max))
	case schema.Datetime:
		fmt.Fprintf(b, "%s (%s): %q\n", c.Label, c.InputType, e.Text)
	case schema.Image:
		fmt.Fprintf(b, "[image: %s] %s\n", c.Alt, c.Src)
	case schema.Link:
		fmt.Fprintf(b, "%s <%s>\n", c.Label, c.Href)
	case schema.Divider:
		b.WriteString("────────\n")
	case schema.Progress:
		fmt.Fprintf(b, "%s%s/%s\n", labelPrefix(c.Label), FormatNumber(c.Value), FormatNumber(c.Max))
	case schema.List:
		for i, item := range c.Items {
			if c.Ordered {
				fmt.Fprintf(b, "%d. %s\n", i+1, item)
			} else {
				fmt.Fprintf(b, "• %s\n", item)
			}
		}
	case schema.Alert:
		fmt.Fprintf(b, "[%s] %s\n", strings.ToUpper(c.Variant), c.Content)
	}
}

func labelPrefix(label string) string {
	if label == "" {
		return ""
	}
	return label + ": "
}

func orPlaceholder(text, placeholder string) string {
	if text == "" {
		return placeholder
	}
	return text
}

func mark(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}
