package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type OllamaConfig struct {
	Host string `toml:"host"`
}

type SecurityConfig struct {
	Method     EncryptionMethod `toml:"method"`
	SSHKeyPath string           `toml:"ssh_key_path,omitempty"`
}

type WebConfig struct {
	Addr             string `toml:"addr"`
	SessionCacheSize int    `toml:"session_cache_size"`
}

type UserConfig struct {
	Ollama       OllamaConfig      `toml:"ollama"`
	BaseURLs     map[string]string `toml:"base_urls,omitempty"`
	MaxTokens    map[string]int64  `toml:"max_tokens,omitempty"`
	SystemPrompt string            `toml:"system_prompt,omitempty"`
	Security     SecurityConfig    `toml:"security"`
	Web          WebConfig         `toml:"web"`
}

// Config is the resolved runtime configuration: defaults, then TOML files,
// then environment overrides.
type Config struct {
	DataDirectory    string
	OllamaHost       string
	BaseURLs         map[string]string
	MaxTokens        map[string]int64
	SystemPrompt     string
	Security         SecurityConfig
	WebAddr          string
	SessionCacheSize int

	// Production hides dev-only providers.
	Production bool
	// Enabled is the set of provider ids switched on by A2UI_<ID>_ENABLED.
	// A nil map means no flag was set and every provider is enabled.
	Enabled map[string]bool
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) OllamaURL() string {
	return c.OllamaHost
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// BaseURL returns the configured endpoint override for a provider, or the
// catalog default.
func (c *Config) BaseURL(providerID string) string {
	if providerID == ProviderOllama {
		return c.OllamaHost
	}
	if u := c.BaseURLs[providerID]; u != "" {
		return u
	}
	if info, ok := GetProviderInfo(providerID); ok {
		return info.BaseURL
	}
	return ""
}

// MaxTokensFor returns the response token cap for a provider.
func (c *Config) MaxTokensFor(providerID string) int64 {
	if n := c.MaxTokens[providerID]; n > 0 {
		return n
	}
	if info, ok := GetProviderInfo(providerID); ok {
		return info.MaxTokens
	}
	return 0
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("A2UI_OLLAMA_HOST"); host != "" {
		c.OllamaHost = host
	}
	if dataDir := os.Getenv("A2UI_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if addr := os.Getenv("A2UI_WEB_ADDR"); addr != "" {
		c.WebAddr = addr
	}
	c.Production = strings.EqualFold(os.Getenv("A2UI_ENV"), "production")
	c.Enabled = enabledFromEnv()
}

// enabledFromEnv reads A2UI_<ID>_ENABLED for every catalog provider.
func enabledFromEnv() map[string]bool {
	var enabled map[string]bool
	for _, p := range Providers {
		v, ok := os.LookupEnv(providerEnvVar(p.ID))
		if !ok {
			continue
		}
		if enabled == nil {
			enabled = make(map[string]bool)
		}
		enabled[p.ID] = v == "true" || v == "1"
	}
	return enabled
}

func providerEnvVar(id string) string {
	return "A2UI_" + strings.ToUpper(id) + "_ENABLED"
}

func CheckDebug() bool {
	debug := os.Getenv("A2UI_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: the log can contain raw model replies
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (A2UI_DEBUG=%s) ===", os.Getenv("A2UI_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// Load resolves the configuration. A .env file in the working directory is
// read first so that its variables behave like real environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDirectory:    DefaultSystemConfig().DataDirectory,
		OllamaHost:       "http://localhost:11434",
		WebAddr:          "127.0.0.1:8080",
		SessionCacheSize: 128,
		Security:         SecurityConfig{Method: EncryptionNone},
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory
	if dataDir := os.Getenv("A2UI_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	userCfg, err := LoadUserConfig(cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyUserConfig(u *UserConfig) {
	if u.Ollama.Host != "" {
		c.OllamaHost = u.Ollama.Host
	}
	c.BaseURLs = u.BaseURLs
	c.MaxTokens = u.MaxTokens
	c.SystemPrompt = u.SystemPrompt
	if u.Security.Method != "" {
		c.Security = u.Security
	}
	if u.Web.Addr != "" {
		c.WebAddr = u.Web.Addr
	}
	if u.Web.SessionCacheSize > 0 {
		c.SessionCacheSize = u.Web.SessionCacheSize
	}
}
