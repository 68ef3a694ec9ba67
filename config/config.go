package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type OllamaConfig struct {
	Host         string `toml:"host"`
	DefaultModel string `toml:"default_model"`
}

type OpenAIConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	// ModelMarkers are model-name substrings routed to the hosted provider.
	ModelMarkers []string `toml:"model_markers"`
}

type ChatConfig struct {
	// Reinforcement message cadence: appended once a conversation holds
	// more than ReinforceAfter messages and the count is divisible by
	// ReinforceEvery. Set reinforce_every = 0 to disable.
	ReinforceAfter int `toml:"reinforce_after"`
	ReinforceEvery int `toml:"reinforce_every"`
}

type UserConfig struct {
	DataDirectory string       `toml:"data_directory"`
	Ollama        OllamaConfig `toml:"ollama"`
	OpenAI        OpenAIConfig `toml:"openai"`
	Chat          ChatConfig   `toml:"chat"`
}

// Config is the resolved runtime configuration after defaults, the
// settings file and environment overrides have been applied.
type Config struct {
	DataDirectory  string
	OllamaHost     string
	DefaultModel   string
	OpenAIBaseURL  string
	OpenAIAPIKey   string
	ModelMarkers   []string
	ReinforceAfter int
	ReinforceEvery int
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("TILECHAT_OLLAMA_HOST"); host != "" {
		c.OllamaHost = host
	}
	if model := os.Getenv("TILECHAT_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if dataDir := os.Getenv("TILECHAT_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.OpenAIAPIKey = key
	}
}

func CheckDebug() bool {
	debug := os.Getenv("TILECHAT_DEBUG")
	return debug == "true" || debug == "1"
}

// InitDebugLog opens the debug log under the data directory when
// TILECHAT_DEBUG is set. DebugLog stays nil otherwise; callers guard
// every use with a nil check.
func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - the log echoes conversation fragments
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (TILECHAT_DEBUG=%s) ===", os.Getenv("TILECHAT_DEBUG"))
}

// Load reads the settings file, writing a default template on first run,
// and applies environment overrides.
func Load() (*Config, error) {
	user := DefaultUserConfig()
	settingsPath := GetSettingsFilePath()

	if FileExists(settingsPath) {
		if _, err := toml.DecodeFile(settingsPath, user); err != nil {
			return nil, fmt.Errorf("failed to parse settings: %w", err)
		}
	} else {
		if err := writeDefaultSettings(settingsPath); err != nil {
			return nil, fmt.Errorf("failed to create settings: %w", err)
		}
	}

	cfg := &Config{
		DataDirectory:  user.DataDirectory,
		OllamaHost:     user.Ollama.Host,
		DefaultModel:   user.Ollama.DefaultModel,
		OpenAIBaseURL:  user.OpenAI.BaseURL,
		OpenAIAPIKey:   user.OpenAI.APIKey,
		ModelMarkers:   user.OpenAI.ModelMarkers,
		ReinforceAfter: user.Chat.ReinforceAfter,
		ReinforceEvery: user.Chat.ReinforceEvery,
	}
	cfg.applyEnvOverrides()

	if err := EnsureDir(cfg.DataDir()); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func writeDefaultSettings(settingsPath string) error {
	if err := EnsureDir(filepath.Dir(settingsPath)); err != nil {
		return err
	}
	// 0600 - the file may hold an API key
	return os.WriteFile(settingsPath, []byte(GenerateSettingsTemplate()), 0600)
}
