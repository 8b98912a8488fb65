package ui

import "a2ui/model"

type turnMsg = model.TurnMsg
type modelsListMsg = model.ModelsListMsg
type providerPingMsg = model.ProviderPingMsg
type settingsSavedMsg = model.SettingsSavedMsg
type clipboardMsg = model.ClipboardMsg
type flashTickMsg = model.FlashTickMsg

// markdownRenderedMsg carries chatbot text rendered off the update loop.
// Turn guards against a slow render landing after a newer reply.
type markdownRenderedMsg struct {
	Turn     int
	Rendered string
}
