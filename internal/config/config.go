// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port         int `mapstructure:"port"`
	SyncInterval int `mapstructure:"sync_interval"`
	Database     struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Storage struct {
		UploadDir    string `mapstructure:"upload_dir"`
		ExtractedDir string `mapstructure:"extracted_dir"`
		QuestionsDir string `mapstructure:"questions_dir"`
	} `mapstructure:"storage"`
	LLM struct {
		Provider     string  `mapstructure:"provider"` // "ollama", "openai" or "anthropic"
		Model        string  `mapstructure:"model"`
		OllamaURL    string  `mapstructure:"ollama_url"`
		OpenAIKey    string  `mapstructure:"openai_key"`
		AnthropicKey string  `mapstructure:"anthropic_key"`
		Temperature  float64 `mapstructure:"temperature"`
		MaxTokens    int     `mapstructure:"max_tokens"`
	} `mapstructure:"llm"`
	Generation struct {
		QuestionsPerChunk int `mapstructure:"questions_per_chunk"`
		MaxChunkSize      int `mapstructure:"max_chunk_size"`
		ChunkOverlap      int `mapstructure:"chunk_overlap"`
	} `mapstructure:"generation"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or "yaml"
	viper.AddConfigPath(".")      // looking for config in the current directory

	// --- Environment Variable Overrides ---
	// This tells Viper to look for environment variables with a "QBANK_" prefix.
	// e.g., QBANK_DATABASE_PATH will override the `database.path` key.
	viper.SetEnvPrefix("QBANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 8080)
	viper.SetDefault("sync_interval", 60)
	viper.SetDefault("database.path", "./qbank.db")
	viper.SetDefault("storage.upload_dir", "./uploads")
	viper.SetDefault("storage.extracted_dir", "./extracted_text")
	viper.SetDefault("storage.questions_dir", "./generated_questions")
	viper.SetDefault("llm.provider", "ollama")
	viper.SetDefault("llm.model", "llama3")
	viper.SetDefault("llm.ollama_url", "http://localhost:11434")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.max_tokens", 2048)
	viper.SetDefault("generation.questions_per_chunk", 5)
	viper.SetDefault("generation.max_chunk_size", 2000)
	viper.SetDefault("generation.chunk_overlap", 200)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
