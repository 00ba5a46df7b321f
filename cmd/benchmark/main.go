// ABOUTME: Command-line benchmark runner for advisory scenarios
// ABOUTME: Executes RAGAS-style benchmarks and outputs JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/harper/agri-advisor/benchmarks/ragas"
	"github.com/harper/agri-advisor/internal/config"
	"github.com/harper/agri-advisor/internal/logging"
)

func main() {
	testID := flag.String("test", "", "Run specific test (greeting, thanks, recall, weather). If empty, runs all tests.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (continuing anyway): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.ResolvedProvider() == config.ProviderHash {
		log.Println("No embedding API key set - scoring with offline hash embeddings")
	}

	logger, err := logging.New(*verbose, false)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	fmt.Println("========================================")
	fmt.Println("Agri Advisor RAGAS Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	ctx := context.Background()
	runner := ragas.NewBenchmarkRunner(cfg, logger, *verbose)

	var results []ragas.TestResult
	if *testID == "" {
		fmt.Println("Running all benchmark scenarios...")
		results = runner.RunAllTests(ctx)
	} else {
		scenario, ok := ragas.ScenarioByID(*testID)
		if !ok {
			log.Fatalf("Unknown test ID: %s (valid options: greeting, thanks, recall, weather)", *testID)
		}

		fmt.Printf("Running test: %s\n\n", scenario.Name)
		result, err := runner.RunTest(ctx, scenario)
		if err != nil {
			log.Fatalf("Test failed: %v", err)
		}
		results = []ragas.TestResult{result}
	}

	summary := runner.Summarize(results)

	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")
	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.TestID, result.TestName)
		fmt.Printf("  Faithfulness: %.2f\n", result.FaithfulnessScore)
		fmt.Printf("  Context Recall: %.2f\n", result.ContextRecallScore)
		fmt.Printf("  Intent Correct: %t\n", result.IntentCorrect)
		fmt.Printf("  Overall: %.2f\n", result.OverallScore)
		fmt.Printf("  Status: %s\n", result.Status)
		if result.ErrorMessage != "" {
			fmt.Printf("  Error: %s\n", result.ErrorMessage)
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Total Tests: %d\n", summary.TotalTests)
	fmt.Printf("Passed: %d\n", summary.Passed)
	fmt.Printf("Failed: %d\n", summary.Failed)
	fmt.Println("========================================")

	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
}
