package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the assistant
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Index   IndexConfig   `mapstructure:"index"`
	Corpus  CorpusConfig  `mapstructure:"corpus"`
	Session SessionConfig `mapstructure:"session"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug       bool          `mapstructure:"debug"`
	LogLevel    string        `mapstructure:"log_level"`
	TurnTimeout time.Duration `mapstructure:"turn_timeout"`
}

// ServerConfig contains HTTP transport settings
type ServerConfig struct {
	Address      string `mapstructure:"address"`
	MessageLimit int    `mapstructure:"message_limit"`
}

func (s ServerConfig) Validate() error {
	if s.MessageLimit < 0 {
		return fmt.Errorf("server.message_limit cannot be negative")
	}
	return nil
}

// LLMConfig contains the LLM provider configuration
type LLMConfig struct {
	Type            string        `mapstructure:"type"` // openai
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	CompletionModel string        `mapstructure:"completion_model"`
	EmbeddingModel  string        `mapstructure:"embedding_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

func (l LLMConfig) Validate() error {
	if strings.TrimSpace(l.Type) == "" {
		return fmt.Errorf("llm.type is required")
	}
	if strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("llm.api_key is required (or PROPCHAT_LLM_API_KEY)")
	}
	return nil
}

// IndexConfig selects the vector index backend
type IndexConfig struct {
	Type   string       `mapstructure:"type"` // memory, qdrant
	Qdrant QdrantConfig `mapstructure:"qdrant"`
}

// QdrantConfig contains Qdrant connection settings
type QdrantConfig struct {
	URL                string        `mapstructure:"url"`
	APIKey             string        `mapstructure:"api_key"`
	PropertyCollection string        `mapstructure:"property_collection"`
	FAQCollection      string        `mapstructure:"faq_collection"`
	Dimension          int           `mapstructure:"dimension"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

func (i IndexConfig) Validate() error {
	switch i.Type {
	case "memory":
		return nil
	case "qdrant":
		if strings.TrimSpace(i.Qdrant.URL) == "" {
			return fmt.Errorf("index.qdrant.url required when index.type is qdrant")
		}
		if i.Qdrant.Dimension <= 0 {
			return fmt.Errorf("index.qdrant.dimension must be > 0")
		}
		return nil
	default:
		return fmt.Errorf("unsupported index.type: %s", i.Type)
	}
}

// CorpusConfig points at the ingestion sources
type CorpusConfig struct {
	PropertiesCSV string   `mapstructure:"properties_csv"`
	LocationsCSV  string   `mapstructure:"locations_csv"`
	AmenitiesCSV  string   `mapstructure:"amenities_csv"`
	FAQFiles      []string `mapstructure:"faq_files"`
}

func (c CorpusConfig) Validate() error {
	if strings.TrimSpace(c.PropertiesCSV) == "" {
		return fmt.Errorf("corpus.properties_csv is required")
	}
	return nil
}

// SessionConfig selects the conversation state backend
type SessionConfig struct {
	Type  string      `mapstructure:"type"` // inmemory, redis
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (s SessionConfig) Validate() error {
	switch s.Type {
	case "inmemory":
		return nil
	case "redis":
		if strings.TrimSpace(s.Redis.Host) == "" {
			return fmt.Errorf("session.redis.host required when session.type is redis")
		}
		if strings.TrimSpace(s.Redis.Port) == "" {
			return fmt.Errorf("session.redis.port required when session.type is redis")
		}
		return nil
	default:
		return fmt.Errorf("unsupported session.type: %s", s.Type)
	}
}

// LoadConfig loads config from file
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.SetDefault("general.turn_timeout", 60*time.Second)
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.message_limit", 1600)
	viper.SetDefault("llm.type", "openai")
	viper.SetDefault("llm.completion_model", "gpt-4o-mini")
	viper.SetDefault("llm.embedding_model", "text-embedding-3-small")
	viper.SetDefault("llm.temperature", 0.4)
	viper.SetDefault("llm.max_tokens", 2048)
	viper.SetDefault("llm.timeout", 30*time.Second)
	viper.SetDefault("index.type", "memory")
	viper.SetDefault("index.qdrant.property_collection", "properties")
	viper.SetDefault("index.qdrant.faq_collection", "faqs")
	viper.SetDefault("session.type", "inmemory")

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("PROPCHAT")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Server.Validate(); err != nil {
		panic(err)
	}
	if err := config.LLM.Validate(); err != nil {
		panic(err)
	}
	if err := config.Index.Validate(); err != nil {
		panic(err)
	}
	if err := config.Corpus.Validate(); err != nil {
		panic(err)
	}
	if err := config.Session.Validate(); err != nil {
		panic(err)
	}
	return &config
}
