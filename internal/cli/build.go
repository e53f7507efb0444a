package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridex/veridex/internal/chunk"
	"github.com/veridex/veridex/internal/corpus"
	"github.com/veridex/veridex/internal/pipeline"
)

var (
	buildCorpusPath string
	buildIndexPath  string
	buildTimeout    time.Duration
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the similarity index from the press-release corpus",
	Long: `Build reads the press-release CSV, splits every release into
overlapping chunks, embeds them in parallel batches and writes the
similarity index to disk.

The index records the embedding-model identity; 'veridex check' refuses
an index built with a different model. Rebuild after any corpus or
model change — there is no incremental update.

Example:
  veridex build --corpus data/processed/press_release_2003.csv`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildCorpusPath, "corpus", "", "press-release CSV path (default from config)")
	buildCmd.Flags().StringVar(&buildIndexPath, "out", "", "index output path (default from config)")
	buildCmd.Flags().DurationVar(&buildTimeout, "timeout", 30*time.Minute, "overall build timeout")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if buildCorpusPath != "" {
		cfg.Corpus.CSVPath = buildCorpusPath
	}
	if buildIndexPath != "" {
		cfg.Index.Path = buildIndexPath
	}

	log := newLogger()

	docs, err := corpus.LoadCSV(cfg.Corpus.CSVPath)
	if err != nil {
		return err
	}
	log.Info().Int("documents", len(docs)).Str("path", cfg.Corpus.CSVPath).Msg("corpus loaded")

	embedder, err := newEmbedder(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	chunker := chunk.New(cfg.Chunking.MaxChars, cfg.Chunking.OverlapSentences)
	builder := pipeline.NewBuilder(chunker, embedder, cfg, log)

	ix, err := builder.Build(ctx, docs)
	if err != nil {
		return err
	}

	if err := ix.Save(cfg.Index.Path); err != nil {
		return err
	}

	fmt.Printf("✓ Indexed %d chunks (%d documents, dimension %d, model %s)\n",
		ix.Len(), len(docs), ix.Dimension(), ix.Model())
	fmt.Printf("✓ Wrote index: %s\n", cfg.Index.Path)
	return nil
}
