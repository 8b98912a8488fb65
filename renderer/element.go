package renderer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"a2ui/schema"
)

// NoChoice marks a select or radio element with nothing selected.
const NoChoice = -1

// Element is the live state of one rendered component.
type Element struct {
	Component schema.Component

	Text    string  // input, textarea, datetime
	Choice  int     // select, radio: index into Options or NoChoice
	Checked []bool  // checkbox: parallel to Options
	On      bool    // toggle
	Number  float64 // slider
}

// ID returns the component id (the group name for radio and checkbox).
func (e *Element) ID() string { return e.Component.ComponentID() }

// Kind returns the component kind.
func (e *Element) Kind() schema.Kind { return e.Component.Kind() }

// Options returns the option labels of select, radio and checkbox elements.
func (e *Element) Options() []string {
	switch c := e.Component.(type) {
	case schema.Select:
		return c.Options
	case schema.Radio:
		return c.Options
	case schema.Checkbox:
		return c.Options
	}
	return nil
}

func (e *Element) clone() Element {
	out := *e
	if e.Checked != nil {
		out.Checked = append([]bool(nil), e.Checked...)
	}
	return out
}

type builder func(c schema.Component) *Element

func static(c schema.Component) *Element { return &Element{Component: c, Choice: NoChoice} }

var builders = map[schema.Kind]builder{
	schema.KindText:     static,
	schema.KindHeading:  static,
	schema.KindButton:   static,
	schema.KindImage:    static,
	schema.KindLink:     static,
	schema.KindDivider:  static,
	schema.KindProgress: static,
	schema.KindList:     static,
	schema.KindAlert:    static,
	schema.KindInput:    static,
	schema.KindTextarea: static,
	schema.KindDatetime: static,
	schema.KindSelect: func(c schema.Component) *Element {
		e := static(c)
		if len(c.(schema.Select).Options) > 0 {
			e.Choice = 0
		}
		return e
	},
	schema.KindRadio: static,
	schema.KindCheckbox: func(c schema.Component) *Element {
		e := static(c)
		e.Checked = make([]bool, len(c.(schema.Checkbox).Options))
		return e
	},
	schema.KindToggle: func(c schema.Component) *Element {
		e := static(c)
		e.On = c.(schema.Toggle).Checked
		return e
	},
	schema.KindSlider: func(c schema.Component) *Element {
		s := c.(schema.Slider)
		e := static(c)
		e.Number = SanitizeSlider(s, s.Value)
		return e
	},
}

func init() {
	for _, k := range schema.Kinds() {
		if _, ok := builders[k]; !ok {
			panic(fmt.Sprintf("renderer: no builder for component kind %q", k))
		}
	}
}

// collect writes this element's value into values, following the per-kind
// flattening rules. Non-interactive elements write nothing.
func (e *Element) collect(values schema.ValueMap) {
	id := e.ID()
	switch c := e.Component.(type) {
	case schema.Input, schema.Textarea, schema.Datetime:
		values[id] = e.Text
	case schema.Select:
		if e.Choice >= 0 && e.Choice < len(c.Options) {
			values[id] = c.Options[e.Choice]
		} else {
			values[id] = ""
		}
	case schema.Radio:
		if e.Choice >= 0 && e.Choice < len(c.Options) {
			values[id] = c.Options[e.Choice]
		}
	case schema.Checkbox:
		var picked []string
		for i, on := range e.Checked {
			if on {
				picked = append(picked, c.Options[i])
			}
		}
		if len(picked) > 0 {
			values[id] = strings.Join(picked, CheckboxSeparator)
		}
	case schema.Toggle:
		values[id] = strconv.FormatBool(e.On)
	case schema.Slider:
		values[id] = FormatNumber(e.Number)
	}
}

// apply overwrites this element's state from a collected value.
func (e *Element) apply(v string) {
	switch c := e.Component.(type) {
	case schema.Input, schema.Textarea, schema.Datetime:
		e.Text = v
	case schema.Select:
		e.Choice = indexOf(c.Options, v, false)
	case schema.Radio:
		e.Choice = indexOf(c.Options, v, true)
	case schema.Checkbox:
		want := map[string]bool{}
		for _, part := range strings.Split(v, CheckboxSeparator) {
			want[part] = true
		}
		for i, opt := range c.Options {
			e.Checked[i] = want[opt]
		}
	case schema.Toggle:
		e.On = v == "true"
	case schema.Slider:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return
		}
		e.Number = SanitizeSlider(c, n)
	}
}

// CheckboxSeparator joins selected checkbox options. Option labels containing
// it do not round-trip.
const CheckboxSeparator = ", "

func indexOf(options []string, v string, fold bool) int {
	for i, opt := range options {
		if opt == v || (fold && strings.EqualFold(opt, v)) {
			return i
		}
	}
	return NoChoice
}

// FormatNumber renders a slider value the shortest way that parses back exactly.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// SliderStep returns the effective step (1 when unset or non-positive).
func SliderStep(s schema.Slider) float64 {
	if s.Step == nil || *s.Step <= 0 {
		return 1
	}
	return *s.Step
}

// SanitizeSlider clamps n into [min, max] and snaps it onto the step grid
// anchored at min, the way a browser range input does.
func SanitizeSlider(s schema.Slider, n float64) float64 {
	lo, hi := s.Min, s.Max
	if hi < lo {
		hi = lo
	}
	step := SliderStep(s)
	if math.IsNaN(n) {
		n = lo
	}
	n = math.Max(lo, math.Min(hi, n))

	snapped := lo + math.Floor((n-lo)/step+0.5)*step
	if snapped > hi {
		snapped -= step
	}
	if snapped < lo {
		snapped = lo
	}
	return roundTo(snapped, decimals(step)+decimals(lo))
}

func decimals(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func roundTo(f float64, places int) float64 {
	if places > 12 {
		return f
	}
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}

// HeadingLevel clamps a heading level into [1, 6].
func HeadingLevel(h schema.Heading) int {
	switch {
	case h.Level < 1:
		return 1
	case h.Level > 6:
		return 6
	}
	return h.Level
}

// TextareaRows returns the row count, defaulting when unset.
func TextareaRows(t schema.Textarea) int {
	if t.Rows <= 0 {
		return schema.DefaultTextareaRows
	}
	return t.Rows
}
