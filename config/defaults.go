package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/a2ui",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Ollama: OllamaConfig{
			Host: "http://localhost:11434",
		},
		Security: SecurityConfig{Method: EncryptionNone},
		Web: WebConfig{
			Addr:             "127.0.0.1:8080",
			SessionCacheSize: 128,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# a2ui System Configuration
# Location: ~/.config/a2ui/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the settings database, user config and debug log live
data_directory = "~/.local/share/a2ui"
`
}

func GenerateUserConfigTemplate() string {
	return `# a2ui User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[ollama]
# Ollama server URL
host = "http://localhost:11434"

# Replace the built-in agent system prompt (optional)
# system_prompt = ""

# Per-provider endpoint overrides (optional)
# [base_urls]
# openai = "https://api.openai.com/v1"

# Per-provider response token caps (optional)
# [max_tokens]
# anthropic = 4096

[security]
# How API keys are stored in the settings database: "none" or "ssh_key"
method = "none"
# Unset: the first of ~/.ssh/a2ui_ed25519 and ~/.ssh/id_ed25519, or a new
# ~/.ssh/a2ui_ed25519 made with ssh-keygen
# ssh_key_path = "~/.ssh/a2ui_ed25519"

[web]
# Listen address for "a2ui serve"
addr = "127.0.0.1:8080"
# Number of websocket sessions kept for resume
session_cache_size = 128
`
}
