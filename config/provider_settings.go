package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
)

// SettingsKey is the key under which the provider settings blob is stored.
const SettingsKey = "a2ui-provider-settings"

// ProviderSettings is the user's backend choice. It is persisted as a single
// JSON blob in the key/value store.
type ProviderSettings struct {
	ProviderID    string            `json:"providerId"`
	Model         string            `json:"model,omitempty"`
	APIKeys       map[string]string `json:"apiKeys"`
	SetupComplete bool              `json:"setupComplete"`
}

// storedSettings is the on-disk form. With ssh_key security the API keys are
// sealed into SealedKeys and APIKeys is left empty.
type storedSettings struct {
	ProviderSettings
	SealedKeys string `json:"sealedKeys,omitempty"`
}

// KeyValueStore is the persistence the settings blob needs.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// APIKey returns the stored key for a provider.
func (p *ProviderSettings) APIKey(providerID string) string {
	return p.APIKeys[providerID]
}

// SetAPIKey stores a key for a provider.
func (p *ProviderSettings) SetAPIKey(providerID, key string) {
	if p.APIKeys == nil {
		p.APIKeys = make(map[string]string)
	}
	p.APIKeys[providerID] = key
}

// EffectiveModel returns the chosen model or the provider's default.
func (p *ProviderSettings) EffectiveModel() string {
	if p.Model != "" {
		return p.Model
	}
	if info, ok := GetProviderInfo(p.ProviderID); ok {
		return info.DefaultModel
	}
	return ""
}

// DefaultProviderSettings picks the first available provider.
func DefaultProviderSettings(cfg *Config) *ProviderSettings {
	s := &ProviderSettings{
		ProviderID: ProviderOllama,
		APIKeys:    make(map[string]string),
	}
	if available := cfg.AvailableProviders(); len(available) > 0 {
		s.ProviderID = available[0].ID
	}
	for _, p := range Providers {
		s.APIKeys[p.ID] = ""
	}
	return s
}

// NeedsSetup reports whether the setup wizard must run: setup was never
// completed, no provider is available, or the chosen provider lacks a key.
func NeedsSetup(cfg *Config, s *ProviderSettings) bool {
	if s == nil || !s.SetupComplete {
		return true
	}
	if len(cfg.AvailableProviders()) == 0 {
		return true
	}
	info, ok := GetProviderInfo(s.ProviderID)
	if !ok {
		return true
	}
	return info.RequiresAPIKey && s.APIKey(s.ProviderID) == ""
}

// SettingsStore loads and saves ProviderSettings, sealing API keys when the
// security method asks for it.
type SettingsStore struct {
	kv  KeyValueStore
	enc *EncryptionManager
}

// NewSettingsStore prepares the store. For ssh_key security the SSH key is
// loaded now; an encrypted key reads its passphrase from A2UI_SSH_PASSPHRASE.
// Without ssh_key_path the key comes from ResolveSSHKey and the chosen path
// is written back to cfg.
func NewSettingsStore(kv KeyValueStore, cfg *Config) (*SettingsStore, error) {
	s := &SettingsStore{kv: kv}
	if cfg.Security.Method != EncryptionSSHKey {
		return s, nil
	}

	passphrase := os.Getenv("A2UI_SSH_PASSPHRASE")
	if cfg.Security.SSHKeyPath == "" {
		keyPath, err := ResolveSSHKey(passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to find an SSH key: %w", err)
		}
		if Debug && DebugLog != nil {
			DebugLog.Printf("[Settings] Using SSH key %s", keyPath)
		}
		cfg.Security.SSHKeyPath = keyPath
	}

	enc := NewEncryptionManager(EncryptionSSHKey, ExpandPath(cfg.Security.SSHKeyPath))
	enc.SetPassphrase(passphrase)
	if err := enc.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize encryption: %w", err)
	}
	s.enc = enc
	return s, nil
}

// Load returns the stored settings merged over the defaults. A blob that no
// longer parses is ignored. A stored provider that is no longer available is
// replaced by the default one.
func (s *SettingsStore) Load(cfg *Config) (*ProviderSettings, error) {
	defaults := DefaultProviderSettings(cfg)

	raw, ok, err := s.kv.Get(SettingsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok {
		return defaults, nil
	}

	var stored storedSettings
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		if Debug {
			DebugLog.Printf("[Settings] Ignoring unreadable settings blob: %v", err)
		}
		return defaults, nil
	}

	keys := stored.APIKeys
	if stored.SealedKeys != "" {
		keys, err = s.unseal(stored.SealedKeys)
		if err != nil {
			return nil, err
		}
	}

	merged := &ProviderSettings{
		ProviderID:    stored.ProviderID,
		Model:         stored.Model,
		APIKeys:       defaults.APIKeys,
		SetupComplete: stored.SetupComplete,
	}
	for id, key := range keys {
		merged.APIKeys[id] = key
	}
	if !cfg.IsProviderAvailable(merged.ProviderID) {
		merged.ProviderID = defaults.ProviderID
		merged.Model = ""
	}
	return merged, nil
}

// Save writes the settings blob.
func (s *SettingsStore) Save(settings *ProviderSettings) error {
	stored := storedSettings{ProviderSettings: *settings}
	if s.enc != nil {
		sealed, err := s.seal(settings.APIKeys)
		if err != nil {
			return err
		}
		stored.APIKeys = nil
		stored.SealedKeys = sealed
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := s.kv.Set(SettingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	if Debug {
		DebugLog.Printf("[Settings] Saved settings (provider=%s, model=%s, sealed=%v)",
			settings.ProviderID, settings.Model, s.enc != nil)
	}
	return nil
}

func (s *SettingsStore) seal(keys map[string]string) (string, error) {
	plain, err := json.Marshal(keys)
	if err != nil {
		return "", fmt.Errorf("failed to serialize API keys: %w", err)
	}
	sealed, err := s.enc.Encrypt(plain)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt API keys: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *SettingsStore) unseal(sealed string) (map[string]string, error) {
	if s.enc == nil {
		return nil, fmt.Errorf("settings hold encrypted API keys but security method is not ssh_key")
	}
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode API keys: %w", err)
	}
	plain, err := s.enc.Decrypt(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt API keys: %w", err)
	}
	var keys map[string]string
	if err := json.Unmarshal(plain, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse decrypted API keys: %w", err)
	}
	return keys, nil
}
