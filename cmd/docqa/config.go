package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/gemini"
	"github.com/fwojciec/docqa/langchaingo"
	"gopkg.in/yaml.v3"
)

// Providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = langchaingo.ProviderOpenAI
	ProviderOllama = langchaingo.ProviderOllama
)

// Defaults.
const (
	DefaultTopK             = 5
	DefaultMaxContextTokens = 8000
	DefaultConcurrency      = 4
	DefaultFetchTimeout     = 30 * time.Second
)

// Config holds the settings shared by all commands.
type Config struct {
	Provider         string `yaml:"provider"`
	EmbeddingModel   string `yaml:"embedding_model"`
	EmbeddingDim     int    `yaml:"embedding_dimension"`
	AnswerModel      string `yaml:"answer_model"`
	BaseURL          string `yaml:"base_url"`
	GeminiAPIKey     string `yaml:"-"`
	OpenAIAPIKey     string `yaml:"-"`
	DBPath           string `yaml:"db"`
	CacheDir         string `yaml:"cache_dir"`
	MinParagraphLen  int    `yaml:"min_paragraph_len"`
	TopK             int    `yaml:"top_k"`
	MaxContextTokens int    `yaml:"max_context_tokens"`
	Concurrency      int    `yaml:"concurrency"`

	Fetch struct {
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"fetch"`
}

// LoadConfig reads the YAML config at path, then applies environment
// overrides and defaults. An empty path tries $DOCQA_CONFIG and then
// ~/.docqa/config.yaml; a missing default file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv("DOCQA_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = filepath.Join(docqaDir(), "config.yaml")
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, docqa.WrapError(docqa.EINVALID, err, "cannot parse config file %s", path)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case errors.Is(err, os.ErrNotExist):
		return nil, docqa.Errorf(docqa.ENOTFOUND, "config file not found: %s", path)
	default:
		return nil, err
	}

	mergeWithEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func mergeWithEnv(cfg *Config) {
	if v := os.Getenv("DOCQA_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("DOCQA_EMBED_MODEL"); v != "" {
		cfg.EmbeddingModel = v
	}
	if v := os.Getenv("DOCQA_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DOCQA_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" && cfg.BaseURL == "" {
		cfg.BaseURL = v
	}
}

func applyDefaults(cfg *Config) {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = ProviderGemini
	}
	if cfg.Provider == ProviderGemini {
		if cfg.EmbeddingModel == "" {
			cfg.EmbeddingModel = gemini.DefaultEmbeddingModel
		}
		if cfg.AnswerModel == "" {
			cfg.AnswerModel = gemini.DefaultModel
		}
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(docqaDir(), "docqa.db")
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(docqaDir(), "cache")
	}
	if cfg.MinParagraphLen == 0 {
		cfg.MinParagraphLen = docqa.DefaultMinParagraphLen
	}
	if cfg.TopK == 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.MaxContextTokens == 0 {
		cfg.MaxContextTokens = DefaultMaxContextTokens
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = DefaultFetchTimeout
	}
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOllama:
	default:
		return docqa.Errorf(docqa.EINVALID, "unknown provider %q (want gemini, openai or ollama)", c.Provider)
	}
	if c.MinParagraphLen < 1 {
		return docqa.Errorf(docqa.EINVALID, "min_paragraph_len must be positive")
	}
	if c.TopK < 1 {
		return docqa.Errorf(docqa.EINVALID, "top_k must be positive")
	}
	if c.EmbeddingDim < 0 {
		return docqa.Errorf(docqa.EINVALID, "embedding_dimension must not be negative")
	}
	return nil
}

func docqaDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docqa"
	}
	return filepath.Join(home, ".docqa")
}
