package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"a2ui/config"
	"a2ui/renderer"
	"a2ui/schema"
)

// FormView is the terminal projection of a renderer.Surface. It owns focus
// and the text editors for the focused field; every edit goes through the
// surface so that the surface stays the only holder of widget state.
type FormView struct {
	surface *renderer.Surface
	kb      *config.KeyBindingsConfig

	focus  int
	option int // cursor within the focused select, radio or checkbox

	text textinput.Model
	area textarea.Model

	width int
}

func NewFormView(surface *renderer.Surface, kb *config.KeyBindingsConfig) FormView {
	text := textinput.New()
	text.Prompt = ""
	text.CharLimit = 2000

	area := textarea.New()
	area.ShowLineNumbers = false
	area.Prompt = ""
	area.CharLimit = 10000
	// Tab moves focus; it must not reach the textarea.
	area.KeyMap.InsertNewline.SetKeys("enter")

	return FormView{surface: surface, kb: kb, text: text, area: area}
}

// SetWidth sets the pane width used for wrapping and editors.
func (f *FormView) SetWidth(width int) {
	f.width = width
	f.text.Width = width - 6
	f.area.SetWidth(width - 4)
}

// Reset moves focus to the first focusable element after a new render.
func (f *FormView) Reset() tea.Cmd {
	f.focus = 0
	return f.load()
}

// Refresh reloads the focused editor after the surface changed underneath it.
func (f *FormView) Refresh() {
	el, ok := f.Focused()
	if !ok {
		return
	}
	switch el.Kind() {
	case schema.KindInput, schema.KindDatetime:
		if f.text.Value() != el.Text {
			f.text.SetValue(el.Text)
		}
	case schema.KindTextarea:
		if f.area.Value() != el.Text {
			f.area.SetValue(el.Text)
		}
	}
}

// Blur stops the editors when the form pane loses focus.
func (f *FormView) Blur() {
	f.text.Blur()
	f.area.Blur()
}

// Focus restarts the editor of the focused field.
func (f *FormView) Focus() tea.Cmd {
	return f.load()
}

func (f *FormView) focusIDs() []string {
	var ids []string
	for _, el := range f.surface.Elements() {
		if el.Kind().Interactive() || el.Kind() == schema.KindButton {
			ids = append(ids, el.ID())
		}
	}
	return ids
}

// Focused returns the element with focus.
func (f *FormView) Focused() (renderer.Element, bool) {
	ids := f.focusIDs()
	if len(ids) == 0 {
		return renderer.Element{}, false
	}
	if f.focus >= len(ids) {
		f.focus = len(ids) - 1
	}
	return f.surface.Element(ids[f.focus])
}

func (f *FormView) move(delta int) tea.Cmd {
	ids := f.focusIDs()
	if len(ids) == 0 {
		return nil
	}
	f.focus = (f.focus + delta + len(ids)) % len(ids)
	return f.load()
}

func (f *FormView) load() tea.Cmd {
	f.text.Blur()
	f.area.Blur()
	f.option = 0

	el, ok := f.Focused()
	if !ok {
		return nil
	}
	switch el.Kind() {
	case schema.KindInput, schema.KindDatetime:
		f.text.Placeholder = placeholderFor(el.Component)
		f.text.SetValue(el.Text)
		f.text.CursorEnd()
		return f.text.Focus()
	case schema.KindTextarea:
		t := el.Component.(schema.Textarea)
		f.area.Placeholder = t.Placeholder
		f.area.SetHeight(renderer.TextareaRows(t))
		f.area.SetValue(el.Text)
		return f.area.Focus()
	case schema.KindSelect, schema.KindRadio:
		if el.Choice != renderer.NoChoice {
			f.option = el.Choice
		}
	}
	return nil
}

// HandleKey applies one key press. A non-nil interaction means a button was
// clicked and the caller should send it to the agent.
func (f *FormView) HandleKey(msg tea.KeyMsg) (tea.Cmd, *schema.Interaction, error) {
	key := msg.String()

	if f.kb.Matches(key, "focus_next") {
		return f.move(1), nil, nil
	}
	if f.kb.Matches(key, "focus_prev") {
		return f.move(-1), nil, nil
	}

	el, ok := f.Focused()
	if !ok {
		return nil, nil, nil
	}
	id := el.ID()

	switch el.Kind() {
	case schema.KindInput:
		if f.kb.Matches(key, "activate") {
			in, clicked, err := f.surface.Submit(id)
			if !clicked {
				return nil, nil, err
			}
			return nil, &in, err
		}
		return f.editText(msg, id)

	case schema.KindDatetime:
		if f.kb.Matches(key, "activate") {
			return nil, nil, nil
		}
		return f.editText(msg, id)

	case schema.KindTextarea:
		var cmd tea.Cmd
		before := f.area.Value()
		f.area, cmd = f.area.Update(msg)
		if f.area.Value() != before {
			return cmd, nil, f.surface.SetText(id, f.area.Value())
		}
		return cmd, nil, nil
	}

	if f.kb.Matches(key, "field_down") {
		return f.move(1), nil, nil
	}
	if f.kb.Matches(key, "field_up") {
		return f.move(-1), nil, nil
	}

	switch el.Kind() {
	case schema.KindButton:
		if f.kb.Matches(key, "activate") || f.kb.Matches(key, "option_toggle") {
			in, err := f.surface.Click(id)
			if err != nil {
				return nil, nil, err
			}
			return nil, &in, nil
		}

	case schema.KindSelect:
		options := el.Options()
		if len(options) == 0 {
			return nil, nil, nil
		}
		switch {
		case f.kb.Matches(key, "option_next"):
			f.option = (f.option + 1) % len(options)
		case f.kb.Matches(key, "option_prev"):
			f.option = (f.option - 1 + len(options)) % len(options)
		default:
			return nil, nil, nil
		}
		return nil, nil, f.surface.Choose(id, options[f.option])

	case schema.KindRadio, schema.KindCheckbox:
		options := el.Options()
		if len(options) == 0 {
			return nil, nil, nil
		}
		switch {
		case f.kb.Matches(key, "option_next"):
			f.option = (f.option + 1) % len(options)
		case f.kb.Matches(key, "option_prev"):
			f.option = (f.option - 1 + len(options)) % len(options)
		case f.kb.Matches(key, "option_toggle"), f.kb.Matches(key, "activate"):
			if el.Kind() == schema.KindRadio {
				return nil, nil, f.surface.Choose(id, options[f.option])
			}
			return nil, nil, f.surface.ToggleOption(id, options[f.option])
		}

	case schema.KindToggle:
		if f.kb.Matches(key, "option_toggle") || f.kb.Matches(key, "activate") {
			return nil, nil, f.surface.SetChecked(id, !el.On)
		}

	case schema.KindSlider:
		switch {
		case f.kb.Matches(key, "option_next"):
			return nil, nil, f.surface.Nudge(id, 1)
		case f.kb.Matches(key, "option_prev"):
			return nil, nil, f.surface.Nudge(id, -1)
		}
	}

	return nil, nil, nil
}

func (f *FormView) editText(msg tea.KeyMsg, id string) (tea.Cmd, *schema.Interaction, error) {
	var cmd tea.Cmd
	before := f.text.Value()
	f.text, cmd = f.text.Update(msg)
	if f.text.Value() != before {
		return cmd, nil, f.surface.SetText(id, f.text.Value())
	}
	return cmd, nil, nil
}

// UpdateEditors forwards non-key messages (cursor blink) to the editors.
func (f *FormView) UpdateEditors(msg tea.Msg) tea.Cmd {
	var c1, c2 tea.Cmd
	f.text, c1 = f.text.Update(msg)
	f.area, c2 = f.area.Update(msg)
	return tea.Batch(c1, c2)
}

func placeholderFor(c schema.Component) string {
	switch c := c.(type) {
	case schema.Input:
		return c.Placeholder
	case schema.Datetime:
		switch c.InputType {
		case schema.DatetimeTime:
			return "HH:MM"
		case schema.DatetimeDatetimeLocal:
			return "YYYY-MM-DDTHH:MM"
		default:
			return "YYYY-MM-DD"
		}
	}
	return ""
}
