package config

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DataDirectory: "~/.local/share/tilechat",
		Ollama: OllamaConfig{
			Host:         "http://localhost:11434",
			DefaultModel: "qwen2.5:32b",
		},
		OpenAI: OpenAIConfig{
			BaseURL:      "https://api.openai.com/v1",
			ModelMarkers: []string{"gpt"},
		},
		Chat: ChatConfig{
			ReinforceAfter: 10,
			ReinforceEvery: 5,
		},
	}
}

func GenerateSettingsTemplate() string {
	return `# tilechat configuration
# Location: ~/.config/tilechat/settings.toml
# This file uses TOML format: https://toml.io

# Directory where notes and the debug log are stored
data_directory = "~/.local/share/tilechat"

[ollama]
# Ollama server URL
host = "http://localhost:11434"

# Default model to use for new conversations
default_model = "qwen2.5:32b"

[openai]
# OpenAI-compatible completions endpoint
base_url = "https://api.openai.com/v1"

# API key (OPENAI_API_KEY overrides this when set)
api_key = ""

# Model-name substrings routed to the hosted provider
model_markers = ["gpt"]

[chat]
# Tool-call formatting reminders: appended once a conversation holds more
# than reinforce_after messages and the count divides by reinforce_every.
# Set reinforce_every = 0 to disable.
reinforce_after = 10
reinforce_every = 5
`
}
