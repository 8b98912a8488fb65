package config

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"encoding/pem"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

type memKV map[string]string

func (m memKV) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memKV) Set(key, value string) error {
	m[key] = value
	return nil
}

func ids(providers []ProviderInfo) []string {
	var out []string
	for _, p := range providers {
		out = append(out, p.ID)
	}
	return out
}

func TestAvailableProviders(t *testing.T) {
	tests := []struct {
		name       string
		enabled    map[string]bool
		production bool
		want       []string
	}{
		{
			name: "no flags enables everything",
			want: []string{"ollama", "openai", "anthropic", "gemini", "huggingface", "openrouter"},
		},
		{
			name:       "production hides ollama",
			production: true,
			want:       []string{"openai", "anthropic", "gemini", "huggingface", "openrouter"},
		},
		{
			name:    "only flagged providers",
			enabled: map[string]bool{"gemini": true, "openai": false, "ollama": true},
			want:    []string{"ollama", "gemini"},
		},
		{
			name:       "flagged dev provider still hidden in production",
			enabled:    map[string]bool{"ollama": true},
			production: true,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Enabled: tt.enabled, Production: tt.production}
			got := ids(cfg.AvailableProviders())
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("AvailableProviders() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnabledFromEnv(t *testing.T) {
	t.Setenv("A2UI_OPENAI_ENABLED", "true")
	t.Setenv("A2UI_GEMINI_ENABLED", "1")
	t.Setenv("A2UI_ANTHROPIC_ENABLED", "yes")

	enabled := enabledFromEnv()
	if !enabled["openai"] || !enabled["gemini"] {
		t.Errorf("expected openai and gemini enabled, got %v", enabled)
	}
	if enabled["anthropic"] {
		t.Error("only \"true\" and \"1\" enable a provider")
	}
	if _, ok := enabled["ollama"]; ok {
		t.Error("unset variables must not appear in the map")
	}
}

func TestLoad(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("A2UI_CONFIG_DIR", t.TempDir())
	t.Setenv("A2UI_DATA_DIR", dataDir)
	t.Setenv("A2UI_ENV", "production")
	t.Setenv("A2UI_OLLAMA_HOST", "http://gpu-box:11434")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DataDir() != filepath.Clean(dataDir) {
		t.Errorf("DataDir() = %q, want %q", cfg.DataDir(), dataDir)
	}
	if !cfg.Production {
		t.Error("expected production mode")
	}
	if cfg.OllamaURL() != "http://gpu-box:11434" {
		t.Errorf("OllamaURL() = %q", cfg.OllamaURL())
	}
	if cfg.WebAddr != "127.0.0.1:8080" || cfg.SessionCacheSize != 128 {
		t.Errorf("unexpected web defaults: %q %d", cfg.WebAddr, cfg.SessionCacheSize)
	}
	if !FileExists(filepath.Join(dataDir, userConfigFile)) {
		t.Error("user config template was not written")
	}
}

func TestUserConfigOverrides(t *testing.T) {
	dataDir := t.TempDir()
	user := DefaultUserConfig()
	user.BaseURLs = map[string]string{"openai": "http://proxy/v1"}
	user.MaxTokens = map[string]int64{"anthropic": 1000}
	if err := SaveUserConfig(user, dataDir); err != nil {
		t.Fatalf("SaveUserConfig: %v", err)
	}

	loaded, err := LoadUserConfig(dataDir)
	if err != nil {
		t.Fatalf("LoadUserConfig: %v", err)
	}
	cfg := &Config{}
	cfg.applyUserConfig(loaded)

	if got := cfg.BaseURL("openai"); got != "http://proxy/v1" {
		t.Errorf("BaseURL(openai) = %q", got)
	}
	if got := cfg.BaseURL("openrouter"); got != "https://openrouter.ai/api/v1" {
		t.Errorf("BaseURL(openrouter) = %q", got)
	}
	if got := cfg.MaxTokensFor("anthropic"); got != 1000 {
		t.Errorf("MaxTokensFor(anthropic) = %d", got)
	}
	if got := cfg.MaxTokensFor("huggingface"); got != 2048 {
		t.Errorf("MaxTokensFor(huggingface) = %d", got)
	}
}

func TestSettingsStoreLoad(t *testing.T) {
	tests := []struct {
		name         string
		cfg          *Config
		stored       string
		wantProvider string
		wantModel    string
		wantKey      string
	}{
		{
			name:         "nothing stored",
			cfg:          &Config{},
			wantProvider: "ollama",
		},
		{
			name:         "stored choice is kept",
			cfg:          &Config{},
			stored:       `{"providerId":"gemini","model":"gemini-2.0-flash-lite","apiKeys":{"gemini":"g-key"},"setupComplete":true}`,
			wantProvider: "gemini",
			wantModel:    "gemini-2.0-flash-lite",
			wantKey:      "g-key",
		},
		{
			name:         "unavailable provider falls back",
			cfg:          &Config{Enabled: map[string]bool{"openai": true}},
			stored:       `{"providerId":"gemini","model":"gemini-2.0-flash-lite","apiKeys":{"gemini":"g-key"}}`,
			wantProvider: "openai",
		},
		{
			name:         "unreadable blob is ignored",
			cfg:          &Config{Production: true},
			stored:       `{not json`,
			wantProvider: "openai",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := memKV{}
			if tt.stored != "" {
				kv[SettingsKey] = tt.stored
			}
			store, err := NewSettingsStore(kv, tt.cfg)
			if err != nil {
				t.Fatalf("NewSettingsStore: %v", err)
			}
			s, err := store.Load(tt.cfg)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if s.ProviderID != tt.wantProvider {
				t.Errorf("ProviderID = %q, want %q", s.ProviderID, tt.wantProvider)
			}
			if s.Model != tt.wantModel {
				t.Errorf("Model = %q, want %q", s.Model, tt.wantModel)
			}
			if got := s.APIKey(s.ProviderID); got != tt.wantKey {
				t.Errorf("APIKey = %q, want %q", got, tt.wantKey)
			}
			if len(s.APIKeys) != len(Providers) {
				t.Errorf("expected a key slot for every provider, got %d", len(s.APIKeys))
			}
		})
	}
}

func TestSettingsStoreSaveRoundTrip(t *testing.T) {
	cfg := &Config{}
	kv := memKV{}
	store, err := NewSettingsStore(kv, cfg)
	if err != nil {
		t.Fatalf("NewSettingsStore: %v", err)
	}

	in := DefaultProviderSettings(cfg)
	in.ProviderID = ProviderAnthropic
	in.SetAPIKey(ProviderAnthropic, "sk-ant")
	in.SetupComplete = true
	if err := store.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.ProviderID != ProviderAnthropic || out.APIKey(ProviderAnthropic) != "sk-ant" || !out.SetupComplete {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if out.EffectiveModel() != "claude-sonnet-4-20250514" {
		t.Errorf("EffectiveModel() = %q", out.EffectiveModel())
	}
}

func writeTestKey(t *testing.T) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	block, err := ssh.MarshalPrivateKey(priv, "test")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "id_ed25519")
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSettingsStoreSealsKeys(t *testing.T) {
	cfg := &Config{Security: SecurityConfig{Method: EncryptionSSHKey, SSHKeyPath: writeTestKey(t)}}
	kv := memKV{}
	store, err := NewSettingsStore(kv, cfg)
	if err != nil {
		t.Fatalf("NewSettingsStore: %v", err)
	}

	in := DefaultProviderSettings(cfg)
	in.ProviderID = ProviderOpenAI
	in.SetAPIKey(ProviderOpenAI, "sk-secret")
	if err := store.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if strings.Contains(kv[SettingsKey], "sk-secret") {
		t.Fatal("API key stored in plaintext")
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(kv[SettingsKey]), &raw); err != nil {
		t.Fatalf("blob is not JSON: %v", err)
	}
	if raw["sealedKeys"] == "" {
		t.Error("expected sealedKeys")
	}

	out, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.APIKey(ProviderOpenAI) != "sk-secret" {
		t.Errorf("APIKey after unseal = %q", out.APIKey(ProviderOpenAI))
	}

	plain, _ := NewSettingsStore(kv, &Config{})
	if _, err := plain.Load(&Config{}); err == nil {
		t.Error("expected error loading sealed keys without ssh_key security")
	}
}

func TestNeedsSetup(t *testing.T) {
	complete := func(provider, key string) *ProviderSettings {
		s := &ProviderSettings{ProviderID: provider, SetupComplete: true}
		if key != "" {
			s.SetAPIKey(provider, key)
		}
		return s
	}

	tests := []struct {
		name     string
		cfg      *Config
		settings *ProviderSettings
		want     bool
	}{
		{"nil settings", &Config{}, nil, true},
		{"setup not finished", &Config{}, &ProviderSettings{ProviderID: "ollama"}, true},
		{"local provider needs no key", &Config{}, complete("ollama", ""), false},
		{"cloud provider without key", &Config{}, complete("openai", ""), true},
		{"cloud provider with key", &Config{}, complete("openai", "sk"), false},
		{"nothing available", &Config{Enabled: map[string]bool{"openai": false}}, complete("openai", "sk"), true},
		{"unknown provider", &Config{}, complete("nope", "x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsSetup(tt.cfg, tt.settings); got != tt.want {
				t.Errorf("NeedsSetup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeybindings(t *testing.T) {
	kb := DefaultKeybindings()
	kb.Actions = map[string]string{"quit": "ctrl+shift+q"}

	tests := []struct {
		action  string
		key     string
		display string
	}{
		{"settings", "alt+s", "Alt+S"},
		{"copy_values", "alt+Y", "Alt+Shift+Y"},
		{"quit", "ctrl+shift+q", "Ctrl+Shift+Q"},
		{"focus_next", "tab", "Tab"},
		{"missing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			if got := kb.GetActionKey(tt.action); got != tt.key {
				t.Errorf("GetActionKey(%q) = %q, want %q", tt.action, got, tt.key)
			}
			if got := kb.DisplayActionKey(tt.action); got != tt.display {
				t.Errorf("DisplayActionKey(%q) = %q, want %q", tt.action, got, tt.display)
			}
		})
	}

	if !kb.Matches(" ", "option_toggle") {
		t.Error("space bar should match option_toggle")
	}
	if kb.Matches("", "missing") {
		t.Error("empty key must not match")
	}

	if ok, _ := (&KeyBindingsConfig{Modifiers: ModifierConfig{Primary: "shift"}}).Validate(); ok {
		t.Error("shift alone should be rejected")
	}
}

func TestFindSSHKeys(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	keys, err := FindSSHKeys()
	if err != nil || len(keys) != 0 {
		t.Fatalf("FindSSHKeys without ~/.ssh = %v, %v", keys, err)
	}

	sshDir := filepath.Join(home, ".ssh")
	if err := os.MkdirAll(sshDir, 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"id_ed25519", keyBaseName} {
		data, err := os.ReadFile(writeTestKey(t))
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(sshDir, name), data, 0600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(sshDir, "id_ed25519.pub"), []byte("ssh-ed25519 AAAA"), 0644); err != nil {
		t.Fatal(err)
	}

	keys, err = FindSSHKeys()
	if err != nil {
		t.Fatalf("FindSSHKeys: %v", err)
	}
	want := []string{DefaultKeyPath(), filepath.Join(sshDir, "id_ed25519")}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("FindSSHKeys = %v, want %v", keys, want)
	}
}

func TestSettingsStoreResolvesSSHKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("A2UI_SSH_PASSPHRASE", "")

	sshDir := filepath.Join(home, ".ssh")
	if err := os.MkdirAll(sshDir, 0700); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(writeTestKey(t))
	if err != nil {
		t.Fatal(err)
	}
	keyPath := filepath.Join(sshDir, "id_ed25519")
	if err := os.WriteFile(keyPath, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Security: SecurityConfig{Method: EncryptionSSHKey}}
	store, err := NewSettingsStore(memKV{}, cfg)
	if err != nil {
		t.Fatalf("NewSettingsStore: %v", err)
	}
	if cfg.Security.SSHKeyPath != keyPath {
		t.Errorf("SSHKeyPath = %q, want %q", cfg.Security.SSHKeyPath, keyPath)
	}

	in := DefaultProviderSettings(cfg)
	in.SetAPIKey(ProviderOpenAI, "sk-secret")
	if err := store.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.APIKey(ProviderOpenAI) != "sk-secret" {
		t.Errorf("APIKey after unseal = %q", out.APIKey(ProviderOpenAI))
	}
}

func TestResolveSSHKeyCreatesKey(t *testing.T) {
	if _, err := exec.LookPath("ssh-keygen"); err != nil {
		t.Skip("ssh-keygen not installed")
	}
	t.Setenv("HOME", t.TempDir())

	keyPath, err := ResolveSSHKey("")
	if err != nil {
		t.Fatalf("ResolveSSHKey: %v", err)
	}
	if keyPath != DefaultKeyPath() {
		t.Errorf("keyPath = %q, want %q", keyPath, DefaultKeyPath())
	}
	if _, err := LoadSSHPrivateKey(keyPath); err != nil {
		t.Errorf("created key does not load: %v", err)
	}

	again, err := CreateKey("")
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	if again == keyPath || !strings.HasPrefix(filepath.Base(again), keyBaseName+"_") {
		t.Errorf("second key = %q, want a dated suffix", again)
	}
}
