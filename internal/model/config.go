package model

import "time"

// Config holds the complete veridex configuration.
type Config struct {
	Corpus      CorpusConfig      `yaml:"corpus" mapstructure:"corpus"`
	Chunking    ChunkingConfig    `yaml:"chunking" mapstructure:"chunking"`
	Embedding   EmbeddingConfig   `yaml:"embedding" mapstructure:"embedding"`
	Index       IndexConfig       `yaml:"index" mapstructure:"index"`
	Retrieval   RetrievalConfig   `yaml:"retrieval" mapstructure:"retrieval"`
	Claim       ClaimConfig       `yaml:"claim" mapstructure:"claim"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// CorpusConfig locates the press-release dataset.
type CorpusConfig struct {
	CSVPath string `yaml:"csv_path" mapstructure:"csv_path"`
}

// ChunkingConfig controls how documents are split before embedding.
type ChunkingConfig struct {
	MaxChars         int `yaml:"max_chars" mapstructure:"max_chars"`                 // Max chunk length in characters
	OverlapSentences int `yaml:"overlap_sentences" mapstructure:"overlap_sentences"` // Sentences repeated between adjacent chunks
}

// EmbeddingConfig configures the embedding capability.
type EmbeddingConfig struct {
	Model         string        `yaml:"model" mapstructure:"model"`
	APIKey        string        `yaml:"-" mapstructure:"-"` // From OPENAI_API_KEY, never persisted
	BaseURL       string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	BatchSize     int           `yaml:"batch_size" mapstructure:"batch_size"`
	MaxInputChars int           `yaml:"max_input_chars" mapstructure:"max_input_chars"`
	RatePerSecond float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int           `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// IndexConfig locates the persisted similarity index.
type IndexConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// RetrievalConfig holds the top-K and relevance cutoff. These are tunable
// parameters, not hard-coded assumptions; the defaults come from the corpus
// this tool was calibrated against.
type RetrievalConfig struct {
	TopK          int     `yaml:"top_k" mapstructure:"top_k"`
	MinSimilarity float64 `yaml:"min_similarity" mapstructure:"min_similarity"`
}

// ClaimConfig selects the claim normalization strategy.
type ClaimConfig struct {
	Strategy string `yaml:"strategy" mapstructure:"strategy"` // "heuristic" or "assisted"
}

// LLMConfig configures the reasoning capability.
type LLMConfig struct {
	Provider    string        `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model       string        `yaml:"model" mapstructure:"model"`
	APIKey      string        `yaml:"-" mapstructure:"-"` // From OPENAI_API_KEY, never persisted
	BaseURL     string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32       `yaml:"temperature" mapstructure:"temperature"`
	Seed        int           `yaml:"seed,omitempty" mapstructure:"seed"` // Fixed seed for reproducible test runs; 0 disables
}

// CacheConfig controls the embedding cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig bounds index-build parallelism.
type ConcurrencyConfig struct {
	EmbedWorkers int `yaml:"embed_workers" mapstructure:"embed_workers"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	JSON    bool `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns sensible defaults, calibrated against the 2003
// press-release corpus the original system shipped with.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			CSVPath: "data/processed/press_release_2003.csv",
		},
		Chunking: ChunkingConfig{
			MaxChars:         1500,
			OverlapSentences: 2,
		},
		Embedding: EmbeddingConfig{
			Model:         "text-embedding-3-small",
			Timeout:       30 * time.Second,
			BatchSize:     32,
			MaxInputChars: 8000,
			RatePerSecond: 5,
			RateBurst:     10,
		},
		Index: IndexConfig{
			Path: "data/vector_db/index.veridex",
		},
		Retrieval: RetrievalConfig{
			TopK:          8,
			MinSimilarity: 0.6,
		},
		Claim: ClaimConfig{
			Strategy: "heuristic",
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Timeout:     30 * time.Second,
			MaxTokens:   800,
			Temperature: 0.1,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "data/cache",
			TTL:     720 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			EmbedWorkers: 4,
		},
		Output: OutputConfig{},
	}
}
