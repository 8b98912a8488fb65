package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const keybindingsFile = "keybindings.toml"

// KeyBindingsConfig holds modifier customization and optional per-action overrides
type KeyBindingsConfig struct {
	Modifiers ModifierConfig    `toml:"modifiers"`
	Actions   map[string]string `toml:"actions"`
}

type ModifierConfig struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
}

type actionDef struct {
	modifier string // "primary", "secondary", or "none"
	key      string
}

// actionRegistry maps action names to their default keybindings.
// Users can override any of these in the [actions] section.
var actionRegistry = map[string]actionDef{
	// App
	"quit":            {"primary", "q"},
	"help":            {"primary", "h"},
	"settings":        {"primary", "s"},
	"restart":         {"primary", "n"},
	"toggle_mode":     {"primary", "m"},
	"toggle_chat":     {"primary", "i"},
	"copy_schema":     {"primary", "y"},
	"copy_values":     {"secondary", "y"},
	"toggle_source":   {"primary", "o"},
	"toggle_freeform": {"primary", "f"},

	// Form pane
	"focus_next":    {"none", "tab"},
	"focus_prev":    {"none", "shift+tab"},
	"activate":      {"none", "enter"},
	"option_next":   {"none", "right"},
	"option_prev":   {"none", "left"},
	"option_toggle": {"none", "space"},
	"field_down":    {"none", "down"},
	"field_up":      {"none", "up"},

	// Chat pane
	"scroll_down": {"primary", "j"},
	"scroll_up":   {"primary", "k"},
	"send":        {"none", "enter"},

	"clear_input": {"primary", "u"},

	// Settings modal
	"settings_down": {"none", "down"},
	"settings_up":   {"none", "up"},
	"settings_save": {"primary", "enter"},

	// Welcome wizard
	"welcome_down": {"none", "down"},
	"welcome_up":   {"none", "up"},
	"welcome_quit": {"primary", "q"},
}

func DefaultKeybindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Modifiers: ModifierConfig{
			Primary:   "alt",
			Secondary: "alt+shift",
		},
	}
}

// LoadKeybindings loads keybindings.toml from the data directory, writing the
// template on first run.
func LoadKeybindings(dataDir string) (*KeyBindingsConfig, error) {
	cfg := DefaultKeybindings()
	path := filepath.Join(dataDir, keybindingsFile)

	if !FileExists(path) {
		if err := writeTemplate(dataDir, path, GenerateKeybindingsTemplate()); err != nil {
			return nil, fmt.Errorf("failed to create keybindings: %w", err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse keybindings: %w", err)
	}
	if cfg.Modifiers.Primary == "" {
		cfg.Modifiers.Primary = "alt"
	}
	if cfg.Modifiers.Secondary == "" {
		cfg.Modifiers.Secondary = "alt+shift"
	}
	return cfg, nil
}

func GenerateKeybindingsTemplate() string {
	return `# a2ui Keybindings Configuration
# Location: <data_directory>/keybindings.toml

[modifiers]
primary = "alt"          # Options: alt, ctrl, meta, super
secondary = "alt+shift"

# For tmux users (Alt may conflict):
#   primary = "ctrl"
#   secondary = "ctrl+shift"

[actions]
# Override individual actions, for example:
#   quit = "ctrl+shift+q"
#   copy_schema = "ctrl+y"
`
}

func (kb *KeyBindingsConfig) Primary() string {
	if kb.Modifiers.Primary == "" {
		return "alt"
	}
	return kb.Modifiers.Primary
}

func (kb *KeyBindingsConfig) Secondary() string {
	if kb.Modifiers.Secondary == "" {
		return "alt+shift"
	}
	return kb.Modifiers.Secondary
}

func (kb *KeyBindingsConfig) PrimaryKey(key string) string {
	return kb.Primary() + "+" + key
}

// SecondaryKey builds a binding with the secondary modifier. When that
// modifier includes shift and the key is a lowercase letter, terminals report
// the uppercase letter instead: "alt+shift" + "y" becomes "alt+Y".
func (kb *KeyBindingsConfig) SecondaryKey(key string) string {
	secondary := kb.Secondary()
	if !strings.Contains(strings.ToLower(secondary), "shift") || len(key) != 1 || key[0] < 'a' || key[0] > 'z' {
		return secondary + "+" + key
	}

	var mods []string
	for _, part := range strings.Split(secondary, "+") {
		if !strings.EqualFold(part, "shift") {
			mods = append(mods, part)
		}
	}
	if len(mods) == 0 {
		return strings.ToUpper(key)
	}
	return strings.Join(mods, "+") + "+" + strings.ToUpper(key)
}

// GetActionKey returns the binding for an action: user override first, then
// the registry default. Unknown actions return "".
func (kb *KeyBindingsConfig) GetActionKey(action string) string {
	if override := kb.Actions[action]; override != "" {
		return override
	}
	def, ok := actionRegistry[action]
	if !ok {
		return ""
	}
	switch def.modifier {
	case "primary":
		return kb.PrimaryKey(def.key)
	case "secondary":
		return kb.SecondaryKey(def.key)
	default:
		return def.key
	}
}

// DisplayActionKey renders a binding for help text: "alt+Y" -> "Alt+Shift+Y".
func (kb *KeyBindingsConfig) DisplayActionKey(action string) string {
	key := kb.GetActionKey(action)
	if key == "" {
		return ""
	}

	parts := strings.Split(key, "+")
	hasShift := false
	for _, p := range parts {
		if strings.EqualFold(p, "shift") {
			hasShift = true
		}
	}

	var out []string
	for i, part := range parts {
		if part == "" {
			continue
		}
		if len(part) == 1 && part[0] >= 'A' && part[0] <= 'Z' && !hasShift && i > 0 {
			out = append(out, "Shift")
		}
		out = append(out, strings.ToUpper(part[:1])+part[1:])
	}
	return strings.Join(out, "+")
}

// Validate returns (isValid, warningMessage)
func (kb *KeyBindingsConfig) Validate() (bool, string) {
	primary := kb.Primary()
	secondary := kb.Secondary()

	if primary == "shift" || secondary == "shift" {
		return false, "Shift alone conflicts with typing"
	}
	if strings.Contains(primary, "ctrl") || strings.Contains(secondary, "ctrl") {
		return true, "Warning: Ctrl may conflict with terminal shortcuts (Ctrl+C, Ctrl+Z, Ctrl+D)"
	}
	return true, ""
}

// Matches reports whether a key string from the terminal triggers action.
// The terminal reports the space bar as " ".
func (kb *KeyBindingsConfig) Matches(key, action string) bool {
	if key == " " {
		key = "space"
	}
	return key != "" && key == kb.GetActionKey(action)
}
