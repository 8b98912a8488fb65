package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"a2ui/config"
	"a2ui/ollama"
)

// modelPicker is a scrollable model list with a fuzzy filter.
type modelPicker struct {
	models   []ollama.ModelInfo
	filtered []ollama.ModelInfo
	selected int

	filterMode bool
	filter     textinput.Model
}

func newModelPicker() modelPicker {
	filter := textinput.New()
	filter.Placeholder = "Filter models..."
	filter.Prompt = "/ "
	filter.CharLimit = 100
	return modelPicker{filter: filter}
}

// catalogModels turns a provider's curated list into picker entries.
func catalogModels(info config.ProviderInfo) []ollama.ModelInfo {
	out := make([]ollama.ModelInfo, len(info.Models))
	for i, name := range info.Models {
		out[i] = ollama.ModelInfo{Name: name, Provider: info.ID, InternalName: name}
	}
	return out
}

// SetModels replaces the list and selects current when present.
func (p *modelPicker) SetModels(models []ollama.ModelInfo, current string) {
	p.models = models
	p.filtered = models
	p.filterMode = false
	p.filter.SetValue("")
	p.filter.Blur()
	p.selected = 0
	if i, _ := FindModelByName(models, current); i >= 0 {
		p.selected = i
	}
}

func (p *modelPicker) list() []ollama.ModelInfo {
	if p.filterMode {
		return p.filtered
	}
	return p.models
}

// Selected returns the internal name of the highlighted model.
func (p *modelPicker) Selected() (string, bool) {
	list := p.list()
	if p.selected < 0 || p.selected >= len(list) {
		return "", false
	}
	return list[p.selected].InternalName, true
}

func (p *modelPicker) Move(delta int) {
	list := p.list()
	if len(list) == 0 {
		return
	}
	p.selected = (p.selected + delta + len(list)) % len(list)
}

func (p *modelPicker) StartFilter() tea.Cmd {
	p.filterMode = true
	p.filter.SetValue("")
	p.filtered = p.models
	p.selected = 0
	return p.filter.Focus()
}

func (p *modelPicker) StopFilter() {
	p.filterMode = false
	p.filter.Blur()
	p.selected = 0
}

// UpdateFilter forwards a key to the filter input and refilters.
func (p *modelPicker) UpdateFilter(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.applyFilter()
	return cmd
}

func (p *modelPicker) applyFilter() {
	value := p.filter.Value()
	if value == "" {
		p.filtered = p.models
	} else {
		targets := make([]string, len(p.models))
		for i, m := range p.models {
			targets[i] = m.InternalName
		}
		matches := fuzzy.Find(value, targets)
		p.filtered = make([]ollama.ModelInfo, len(matches))
		for i, match := range matches {
			p.filtered[i] = p.models[match.Index]
		}
	}
	if p.selected >= len(p.filtered) {
		p.selected = max(len(p.filtered)-1, 0)
	}
}

// View renders at most maxLines entries around the selection.
func (p *modelPicker) View(current string, width, maxLines int) string {
	var lines []string
	if p.filterMode {
		lines = append(lines, p.filter.View())
	} else if len(p.models) > 0 {
		lines = append(lines, DimStyle.Render(fmt.Sprintf("%d models", len(p.models))))
	}

	list := p.list()
	if len(list) == 0 {
		empty := "No models available"
		if p.filterMode {
			empty = "No matches found"
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(dimColor).Italic(true).Render(empty))
		return strings.Join(lines, "\n")
	}

	start, end := 0, len(list)
	if maxLines > 0 && len(list) > maxLines {
		switch {
		case p.selected < maxLines/2:
			end = maxLines
		case p.selected >= len(list)-maxLines/2:
			start = len(list) - maxLines
		default:
			start = p.selected - maxLines/2
			end = start + maxLines
		}
	}

	for i := start; i < end; i++ {
		m := list[i]
		indicator := "  "
		if i == p.selected {
			indicator = "▶ "
		}
		line := indicator + m.Name
		if m.Size > 0 {
			line += DimStyle.Render(" " + formatSize(m.Size))
		}
		if IsCurrentModel(m, current) {
			line += DimStyle.Render(" (current)")
		}
		line = truncate(line, width)
		if i == p.selected {
			line = SelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// IsCurrentModel matches either the display name or the internal name, which
// differ for prefixed providers (OpenRouter).
func IsCurrentModel(model ollama.ModelInfo, currentModel string) bool {
	return model.InternalName == currentModel || model.Name == currentModel
}

// FindModelByName returns the index of the current model, or -1.
func FindModelByName(models []ollama.ModelInfo, modelName string) (int, *ollama.ModelInfo) {
	for i, model := range models {
		if IsCurrentModel(model, modelName) {
			return i, &models[i]
		}
	}
	return -1, nil
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
