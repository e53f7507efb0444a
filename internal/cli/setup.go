package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/veridex/veridex/internal/cache"
	"github.com/veridex/veridex/internal/claim"
	"github.com/veridex/veridex/internal/embed"
	"github.com/veridex/veridex/internal/index"
	"github.com/veridex/veridex/internal/llm"
	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/pipeline"
	"github.com/veridex/veridex/internal/retrieve"
	"github.com/veridex/veridex/internal/verdict"
)

// loadConfig builds the effective configuration: defaults, then config
// file and VERIDEX_* environment, then API keys from the environment.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	cfg.Embedding.APIKey = apiKey
	cfg.LLM.APIKey = apiKey
	cfg.Output.Verbose = verbose

	return cfg, nil
}

// newEmbedder builds the configured embedder, wrapped in the layered
// embedding cache when caching is enabled.
func newEmbedder(cfg *model.Config, log zerolog.Logger) (embed.Embedder, error) {
	embedder, err := embed.NewOpenAIEmbedder(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled {
		return embedder, nil
	}

	memory := cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	disk := cache.NewDiskCache(cfg.Cache.Dir, cfg.Cache.TTL)
	layered := cache.NewLayeredCache(memory, disk, cfg.Cache.TTL)
	return embed.NewCachedEmbedder(embedder, layered, log), nil
}

// newPipeline loads the persisted index and wires the full check pipeline.
// Loading fails if the index was built with a different embedding model
// than the one configured.
func newPipeline(cfg *model.Config, log zerolog.Logger) (*pipeline.Pipeline, error) {
	embedder, err := newEmbedder(cfg, log)
	if err != nil {
		return nil, err
	}

	ix, err := index.Load(cfg.Index.Path, embedder.Model())
	if err != nil {
		return nil, fmt.Errorf("load index (run 'veridex build' first?): %w", err)
	}

	reasoner, err := llm.NewReasoner(cfg.LLM)
	if err != nil {
		return nil, err
	}

	normalizer, err := claim.NewNormalizer(cfg.Claim.Strategy, reasoner, log)
	if err != nil {
		return nil, err
	}

	return pipeline.New(
		normalizer,
		embedder,
		retrieve.New(ix, log),
		verdict.New(reasoner, log),
		cfg.Retrieval,
		log,
	), nil
}
