// ABOUTME: Test runner for advisory benchmarks - executes scenarios and collects results
// ABOUTME: Builds an isolated in-memory advisor per scenario and scores the final reply

package ragas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/harper/agri-advisor/internal/app"
	"github.com/harper/agri-advisor/internal/config"
	"github.com/harper/agri-advisor/internal/core"
	"github.com/harper/agri-advisor/internal/models"
)

// BenchmarkRunner executes advisory benchmark tests
type BenchmarkRunner struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *MetricsCalculator
	out     io.Writer
	verbose bool
}

// NewBenchmarkRunner creates a runner; each scenario gets its own in-memory store built from cfg
func NewBenchmarkRunner(cfg *config.Config, logger *zap.Logger, verbose bool) *BenchmarkRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	isolated := *cfg
	isolated.KnowledgeBackend = config.BackendMemory

	return &BenchmarkRunner{
		cfg:     &isolated,
		logger:  logger,
		metrics: NewMetricsCalculator(),
		out:     os.Stdout,
		verbose: verbose,
	}
}

// SetOutput redirects progress output
func (r *BenchmarkRunner) SetOutput(w io.Writer) {
	r.out = w
}

// RunTest executes a single benchmark test
func (r *BenchmarkRunner) RunTest(ctx context.Context, scenario TestScenario) (TestResult, error) {
	if r.verbose {
		fmt.Fprintf(r.out, "\n========================================\n")
		fmt.Fprintf(r.out, "RUNNING: %s\n", scenario.Name)
		fmt.Fprintf(r.out, "========================================\n")
		fmt.Fprintf(r.out, "Description: %s\n\n", scenario.Description)
	}
	if len(scenario.Turns) == 0 {
		return TestResult{}, fmt.Errorf("scenario %s has no turns", scenario.ID)
	}

	a, err := app.New(ctx, r.cfg, r.logger)
	if err != nil {
		return TestResult{}, fmt.Errorf("failed to create test advisor: %w", err)
	}
	defer func() { _ = a.Close() }()

	if err := r.setupTest(ctx, a, scenario); err != nil {
		return TestResult{}, fmt.Errorf("setup failed: %w", err)
	}

	var final models.AdvisoryResponse
	var finalReq models.AdvisoryContext
	for _, turn := range scenario.Turns {
		if r.verbose {
			fmt.Fprintf(r.out, "[Turn %d] User: %s\n", turn.TurnNumber, turn.Message)
		}

		req := models.AdvisoryContext{
			RawMessage:      turn.Message,
			Location:        turn.Location,
			CropType:        turn.CropType,
			DetectedDisease: turn.DetectedDisease,
		}
		resp, err := a.Aggregator.Respond(ctx, req)
		if err != nil {
			return TestResult{}, fmt.Errorf("turn %d failed: %w", turn.TurnNumber, err)
		}

		if r.verbose {
			preview := []rune(resp.Text)
			if len(preview) > 150 {
				preview = append(preview[:150], []rune("...")...)
			}
			fmt.Fprintf(r.out, "[Turn %d] Advisor (%s): %s\n", turn.TurnNumber, resp.Metadata.Intent, string(preview))
		}
		final, finalReq = resp, req
	}

	retrieved, err := r.retrieveContext(ctx, a, core.RetrievalQuery(finalReq), final.Metadata.RetrievalCount)
	if err != nil {
		return TestResult{}, fmt.Errorf("context retrieval failed: %w", err)
	}

	result := r.metrics.EvaluateTest(scenario, final.Text, final.Metadata.Intent, retrieved)

	if r.verbose {
		fmt.Fprintf(r.out, "\nFaithfulness: %.2f  Context Recall: %.2f  Intent: %t  -> %s\n",
			result.FaithfulnessScore, result.ContextRecallScore, result.IntentCorrect, result.Status)
	}
	return result, nil
}

// setupTest ingests the scenario's passages
func (r *BenchmarkRunner) setupTest(ctx context.Context, a *app.App, scenario TestScenario) error {
	if scenario.Setup == nil {
		return nil
	}
	// Seed first: a non-empty store is never bootstrapped
	if _, err := a.Store.Bootstrap(ctx); err != nil {
		return err
	}
	for _, doc := range scenario.Setup.Documents {
		if _, err := a.Store.Ingest(ctx, doc.Text, doc.Source, doc.ID); err != nil {
			return err
		}
	}
	return nil
}

// retrieveContext repeats the final turn's retrieval; conversational turns retrieve nothing
func (r *BenchmarkRunner) retrieveContext(ctx context.Context, a *app.App, query string, count int) ([]string, error) {
	if count == 0 {
		return nil, nil
	}
	return a.Store.Query(ctx, query, a.Config.RetrievalTopK)
}

// RunAllTests runs every scenario, recording failures as FAIL results
func (r *BenchmarkRunner) RunAllTests(ctx context.Context) []TestResult {
	scenarios := AllScenarios()
	results := make([]TestResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := r.RunTest(ctx, scenario)
		if err != nil {
			r.logger.Error("benchmark scenario failed", zap.String("scenario", scenario.ID), zap.Error(err))
			result = TestResult{
				TestID:       scenario.ID,
				TestName:     scenario.Name,
				Status:       "FAIL",
				ErrorMessage: err.Error(),
			}
		}
		results = append(results, result)
	}
	return results
}

// Summary is the exported benchmark report
type Summary struct {
	Timestamp  string       `json:"timestamp"`
	Embedder   string       `json:"embedder"`
	TotalTests int          `json:"total_tests"`
	Passed     int          `json:"passed"`
	Failed     int          `json:"failed"`
	Results    []TestResult `json:"results"`
}

// Summarize counts passes and failures
func (r *BenchmarkRunner) Summarize(results []TestResult) Summary {
	summary := Summary{
		Timestamp:  time.Now().Format(time.RFC3339),
		Embedder:   r.cfg.ResolvedProvider(),
		TotalTests: len(results),
		Results:    results,
	}
	for _, result := range results {
		if result.Status == "PASS" {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	return summary
}

// ExportResults writes the summary of results as JSON to outputPath
func (r *BenchmarkRunner) ExportResults(results []TestResult, outputPath string) error {
	jsonData, err := json.MarshalIndent(r.Summarize(results), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	fmt.Fprintf(r.out, "✓ Results exported to: %s\n", outputPath)
	return nil
}
