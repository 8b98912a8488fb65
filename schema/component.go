// Package schema defines the declarative UI description exchanged between an
// agent and a renderer.
//
// A UISchema is an ordered, flat list of components. Each component is one of a
// closed set of kinds; the set is sealed by an unexported interface method so
// that only this package can add new kinds. Consumers that dispatch on kind
// (the renderer, the validator) must handle every value returned by Kinds.
//
// # Wire Format
//
// Components are JSON objects discriminated by a "type" field:
//
//	{"type":"ui","components":[
//	    {"type":"text","id":"t1","content":"What is your name?"},
//	    {"type":"input","id":"name","placeholder":"Enter your name"},
//	    {"type":"button","id":"go","label":"Submit","action":"submit"}
//	]}
package schema

// Kind discriminates component variants.
type Kind string

const (
	KindText     Kind = "text"
	KindHeading  Kind = "heading"
	KindInput    Kind = "input"
	KindTextarea Kind = "textarea"
	KindButton   Kind = "button"
	KindSelect   Kind = "select"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
	KindToggle   Kind = "toggle"
	KindSlider   Kind = "slider"
	KindDatetime Kind = "datetime"
	KindImage    Kind = "image"
	KindLink     Kind = "link"
	KindDivider  Kind = "divider"
	KindProgress Kind = "progress"
	KindList     Kind = "list"
	KindAlert    Kind = "alert"
)

// Kinds returns every component kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindText, KindHeading, KindInput, KindTextarea, KindButton,
		KindSelect, KindRadio, KindCheckbox, KindToggle, KindSlider,
		KindDatetime, KindImage, KindLink, KindDivider, KindProgress,
		KindList, KindAlert,
	}
}

// Interactive reports whether components of this kind carry user-editable state.
// Buttons are not interactive in this sense: they emit interactions but hold no value.
func (k Kind) Interactive() bool {
	switch k {
	case KindInput, KindTextarea, KindSelect, KindRadio, KindCheckbox,
		KindToggle, KindSlider, KindDatetime:
		return true
	}
	return false
}

// Component is one renderable unit of a UISchema.
type Component interface {
	ComponentID() string
	Kind() Kind
	sealed()
}

// Base carries the fields shared by every component.
type Base struct {
	ID string `json:"id"`
}

// ComponentID returns the caller-supplied id.
func (b Base) ComponentID() string { return b.ID }

func (Base) sealed() {}

// Alert variants.
const (
	AlertInfo    = "info"
	AlertWarning = "warning"
	AlertError   = "error"
	AlertSuccess = "success"
)

// Datetime input types.
const (
	DatetimeDate          = "date"
	DatetimeTime          = "time"
	DatetimeDatetimeLocal = "datetime-local"
)

// DefaultTextareaRows is used when a textarea omits rows.
const DefaultTextareaRows = 4

type Text struct {
	Base
	Content string `json:"content"`
}

type Heading struct {
	Base
	Content string `json:"content"`
	Level   int    `json:"level"`
}

type Input struct {
	Base
	Placeholder string `json:"placeholder,omitempty"`
	Label       string `json:"label,omitempty"`
}

type Textarea struct {
	Base
	Placeholder string `json:"placeholder,omitempty"`
	Label       string `json:"label,omitempty"`
	Rows        int    `json:"rows,omitempty"`
}

type Button struct {
	Base
	Label  string `json:"label"`
	Action string `json:"action"`
}

type Select struct {
	Base
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// Radio is a single-choice group; the component id doubles as the group name.
type Radio struct {
	Base
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

type Checkbox struct {
	Base
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

type Toggle struct {
	Base
	Label   string `json:"label"`
	Checked bool   `json:"checked,omitempty"`
}

// Slider mirrors an HTML range input. A nil Step means 1.
type Slider struct {
	Base
	Label string   `json:"label"`
	Min   float64  `json:"min"`
	Max   float64  `json:"max"`
	Value float64  `json:"value"`
	Step  *float64 `json:"step,omitempty"`
}

type Datetime struct {
	Base
	Label     string `json:"label"`
	InputType string `json:"inputType"`
}

type Image struct {
	Base
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type Link struct {
	Base
	Href  string `json:"href"`
	Label string `json:"label"`
}

type Divider struct {
	Base
}

type Progress struct {
	Base
	Value float64 `json:"value"`
	Max   float64 `json:"max"`
	Label string  `json:"label,omitempty"`
}

type List struct {
	Base
	Items   []string `json:"items"`
	Ordered bool     `json:"ordered,omitempty"`
}

type Alert struct {
	Base
	Content string `json:"content"`
	Variant string `json:"variant"`
}

func (Text) Kind() Kind     { return KindText }
func (Heading) Kind() Kind  { return KindHeading }
func (Input) Kind() Kind    { return KindInput }
func (Textarea) Kind() Kind { return KindTextarea }
func (Button) Kind() Kind   { return KindButton }
func (Select) Kind() Kind   { return KindSelect }
func (Radio) Kind() Kind    { return KindRadio }
func (Checkbox) Kind() Kind { return KindCheckbox }
func (Toggle) Kind() Kind   { return KindToggle }
func (Slider) Kind() Kind   { return KindSlider }
func (Datetime) Kind() Kind { return KindDatetime }
func (Image) Kind() Kind    { return KindImage }
func (Link) Kind() Kind     { return KindLink }
func (Divider) Kind() Kind  { return KindDivider }
func (Progress) Kind() Kind { return KindProgress }
func (List) Kind() Kind     { return KindList }
func (Alert) Kind() Kind    { return KindAlert }

// newComponent returns a zero value of the given kind for decoding.
func newComponent(k Kind) (Component, bool) {
	switch k {
	case KindText:
		return &Text{}, true
	case KindHeading:
		return &Heading{}, true
	case KindInput:
		return &Input{}, true
	case KindTextarea:
		return &Textarea{}, true
	case KindButton:
		return &Button{}, true
	case KindSelect:
		return &Select{}, true
	case KindRadio:
		return &Radio{}, true
	case KindCheckbox:
		return &Checkbox{}, true
	case KindToggle:
		return &Toggle{}, true
	case KindSlider:
		return &Slider{}, true
	case KindDatetime:
		return &Datetime{}, true
	case KindImage:
		return &Image{}, true
	case KindLink:
		return &Link{}, true
	case KindDivider:
		return &Divider{}, true
	case KindProgress:
		return &Progress{}, true
	case KindList:
		return &List{}, true
	case KindAlert:
		return &Alert{}, true
	}
	return nil, false
}

// Deref converts a pointer component to its value form. Decoded schemas and
// the renderer only ever hold value forms.
func Deref(c Component) Component {
	switch v := c.(type) {
	case *Text:
		return *v
	case *Heading:
		return *v
	case *Input:
		return *v
	case *Textarea:
		return *v
	case *Button:
		return *v
	case *Select:
		return *v
	case *Radio:
		return *v
	case *Checkbox:
		return *v
	case *Toggle:
		return *v
	case *Slider:
		return *v
	case *Datetime:
		return *v
	case *Image:
		return *v
	case *Link:
		return *v
	case *Divider:
		return *v
	case *Progress:
		return *v
	case *List:
		return *v
	case *Alert:
		return *v
	}
	return c
}
