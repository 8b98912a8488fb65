package model

import (
	"a2ui/ollama"
	"a2ui/schema"
)

// TurnMsg carries the result of Start or HandleInteraction.
type TurnMsg struct {
	Turn schema.Turn
	Err  error
	// Interaction is nil for the opening turn.
	Interaction *schema.Interaction
}

type ModelsListMsg struct {
	ProviderID string
	Models     []ollama.ModelInfo
	Err        error
}

type ProviderPingMsg struct {
	ProviderID string
	Err        error
}

type SettingsSavedMsg struct {
	Err error
}

type ClipboardMsg struct {
	What string
	Err  error
}

type FlashTickMsg struct{}
