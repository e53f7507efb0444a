package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/worker"
)

var (
	checkTimeout  time.Duration
	checkJSON     bool
	checkFile     string
	checkWorkers  int
	checkTopK     int
	checkMinSim   float64
	checkStrategy string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [claim]",
	Short: "Verify a claim against the indexed press-release corpus",
	Long: `Check verifies a natural-language factual claim:
- Normalizes the input to a single checkable statement
- Embeds it and retrieves the most similar corpus passages
- Asks the language model for a structured verdict with evidence

With no argument, claims are read interactively from stdin.
With --file, claims are read one per line and checked concurrently.

Example:
  veridex check "Inflation fell to 5% in 2003"
  veridex check --file claims.txt --workers 4
  veridex check --json "Ministry of Steel approved the SAIL upgradation"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the verdict as JSON")
	checkCmd.Flags().StringVar(&checkFile, "file", "", "file with one claim per line")
	checkCmd.Flags().IntVar(&checkWorkers, "workers", 4, "concurrent checks in --file mode")
	checkCmd.Flags().IntVar(&checkTopK, "top-k", 0, "override retrieval top-K")
	checkCmd.Flags().Float64Var(&checkMinSim, "min-similarity", 0, "override minimum similarity cutoff")
	checkCmd.Flags().StringVar(&checkStrategy, "strategy", "", "claim normalization strategy (heuristic, assisted)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkTopK > 0 {
		cfg.Retrieval.TopK = checkTopK
	}
	if checkMinSim > 0 {
		cfg.Retrieval.MinSimilarity = checkMinSim
	}
	if checkStrategy != "" {
		cfg.Claim.Strategy = checkStrategy
	}
	cfg.Output.JSON = checkJSON

	log := newLogger()
	p, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	switch {
	case checkFile != "":
		return runBatch(ctx, p, cfg)
	case len(args) == 1:
		return checkOne(ctx, p, cfg, args[0])
	default:
		return runInteractive(ctx, p, cfg)
	}
}

func checkOne(ctx context.Context, checker worker.Checker, cfg *model.Config, raw string) error {
	v, err := checker.Check(ctx, raw)
	if err != nil {
		var extractErr *model.ClaimExtractionError
		if errors.As(err, &extractErr) {
			fmt.Fprintf(os.Stderr, "Cannot check this input: %s\n", extractErr.Reason)
			return err
		}
		return err
	}
	return renderVerdict(v, cfg.Output.JSON)
}

func runBatch(ctx context.Context, checker worker.Checker, cfg *model.Config) error {
	processor := worker.NewBatchProcessor(checker, checkWorkers)
	results, err := processor.ProcessFile(ctx, checkFile)
	if err != nil {
		return err
	}

	failures := 0
	for _, r := range results {
		fmt.Printf("── %s\n", r.Claim)
		if r.Error != nil {
			failures++
			fmt.Printf("   error: %v\n\n", r.Error)
			continue
		}
		if err := renderVerdict(r.Verdict, cfg.Output.JSON); err != nil {
			return err
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d claims failed", failures, len(results))
	}
	return nil
}

func runInteractive(ctx context.Context, checker worker.Checker, cfg *model.Config) error {
	fmt.Println("Enter claims to verify (empty line or Ctrl-D to quit):")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		if err := checkOne(ctx, checker, cfg, line); err != nil {
			var extractErr *model.ClaimExtractionError
			if !errors.As(err, &extractErr) {
				return err
			}
			// Extraction failures were already explained; keep the loop going.
		}
	}
	return scanner.Err()
}

func renderVerdict(v model.Verdict, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Verdict:    %s\n", v.Label)
	fmt.Printf("Confidence: %.2f\n", v.Confidence)
	fmt.Printf("Claim:      %s\n", v.Claim)
	fmt.Printf("Reasoning:  %s\n", v.Reasoning)
	if len(v.Entities) > 0 {
		fmt.Printf("Entities:   %s\n", strings.Join(v.Entities, ", "))
	}
	if len(v.Evidence) > 0 {
		fmt.Println("Evidence:")
		for _, ev := range v.Evidence {
			title := ev.Meta.Title
			if title == "" {
				title = ev.Meta.ID
			}
			fmt.Printf("  - [%.3f] %s (%s)\n", ev.Similarity, title, ev.Chunk.ID)
		}
	}
	fmt.Println()
	return nil
}
