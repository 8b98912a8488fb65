package renderer

import (
	"fmt"

	"a2ui/schema"
)

// The methods below are user edits. Each one updates element state and then
// notifies the value observer with the full value map.

// SetText replaces the text of an input, textarea or datetime element.
func (s *Surface) SetText(id, text string) error {
	e, err := s.editable(id, schema.KindInput, schema.KindTextarea, schema.KindDatetime)
	if err != nil {
		return err
	}
	e.Text = text
	s.changed()
	return nil
}

// Choose selects one option of a select or radio element.
func (s *Surface) Choose(id, option string) error {
	e, err := s.editable(id, schema.KindSelect, schema.KindRadio)
	if err != nil {
		return err
	}
	i := indexOf(e.Options(), option, false)
	if i == NoChoice {
		return fmt.Errorf("component %q has no option %q", id, option)
	}
	e.Choice = i
	s.changed()
	return nil
}

// ToggleOption flips one option of a checkbox element.
func (s *Surface) ToggleOption(id, option string) error {
	e, err := s.editable(id, schema.KindCheckbox)
	if err != nil {
		return err
	}
	i := indexOf(e.Options(), option, false)
	if i == NoChoice {
		return fmt.Errorf("component %q has no option %q", id, option)
	}
	e.Checked[i] = !e.Checked[i]
	s.changed()
	return nil
}

// SetChecked sets a toggle element.
func (s *Surface) SetChecked(id string, on bool) error {
	e, err := s.editable(id, schema.KindToggle)
	if err != nil {
		return err
	}
	e.On = on
	s.changed()
	return nil
}

// SetNumber moves a slider; the value is clamped and snapped to the step.
func (s *Surface) SetNumber(id string, n float64) error {
	e, err := s.editable(id, schema.KindSlider)
	if err != nil {
		return err
	}
	e.Number = SanitizeSlider(e.Component.(schema.Slider), n)
	s.changed()
	return nil
}

// Nudge moves a slider by delta steps.
func (s *Surface) Nudge(id string, delta int) error {
	e, err := s.editable(id, schema.KindSlider)
	if err != nil {
		return err
	}
	slider := e.Component.(schema.Slider)
	return s.SetNumber(id, e.Number+float64(delta)*SliderStep(slider))
}

func (s *Surface) editable(id string, kinds ...schema.Kind) (*Element, error) {
	e := s.find(id)
	if e == nil {
		return nil, fmt.Errorf("no component with id %q", id)
	}
	for _, k := range kinds {
		if e.Kind() == k {
			return e, nil
		}
	}
	return nil, fmt.Errorf("component %q is a %s", id, e.Kind())
}
