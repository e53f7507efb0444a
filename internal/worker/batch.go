package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/veridex/veridex/internal/model"
)

// Checker is the pipeline entry point seen by the batch processor.
type Checker interface {
	Check(ctx context.Context, rawClaim string) (model.Verdict, error)
}

// CheckJob verifies one claim.
type CheckJob struct {
	Line    int // Position in the input file, for stable output ordering
	Claim   string
	Checker Checker
}

// Execute runs the claim through the pipeline.
func (j *CheckJob) Execute(ctx context.Context) Result {
	verdict, err := j.Checker.Check(ctx, j.Claim)
	return &CheckResult{Line: j.Line, Claim: j.Claim, Verdict: verdict, Error: err}
}

// CheckResult is the outcome for one claim.
type CheckResult struct {
	Line    int
	Claim   string
	Verdict model.Verdict
	Error   error
}

// Err returns the job error, if any.
func (r *CheckResult) Err() error { return r.Error }

// BatchProcessor checks multiple claims concurrently.
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a batch processor over the given checker.
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{checker: checker, concurrency: concurrency}
}

// ProcessClaims checks claims concurrently and returns one result per
// claim, ordered by position in the input. Claims dropped by cancellation
// still get a result carrying the context error, so every slot is non-nil.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*CheckResult {
	if len(claims) == 0 {
		return nil
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	for i, claim := range claims {
		pool.Submit(&CheckJob{Line: i, Claim: claim, Checker: b.checker})
	}

	results := pool.Wait()
	ordered := make([]*CheckResult, len(claims))
	for _, r := range results {
		cr := r.(*CheckResult)
		ordered[cr.Line] = cr
	}
	for i, r := range ordered {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = errors.New("claim was not processed")
			}
			ordered[i] = &CheckResult{Line: i, Claim: claims[i], Error: err}
		}
	}
	return ordered
}

// ProcessFile reads claims (one per line, # comments skipped) and checks
// them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*CheckResult, error) {
	claims, err := ReadClaimsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}
	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads one claim per line, skipping blanks and
// comments and deduplicating repeats.
func ReadClaimsFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
