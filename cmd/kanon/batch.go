package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"kanon/internal/batch"
	"kanon/internal/config"
)

var (
	batchWorkers int
	batchAlgo    string
	batchNoCache bool
	batchFormat  string
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Digest every supported document under a directory",
	Long: `Walk a directory tree and digest every .json, .yaml, .yml and .toml
file over its canonical form. Files are processed concurrently; results
are reported in path order. Per-file failures are reported and do not
abort the run.

Examples:
  kanon batch ./configs
  kanon batch --workers 8 --algo sha3-256 --format json ./manifests`,
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Worker count (default from config)")
	batchCmd.Flags().StringVar(&batchAlgo, "algo", "", "Digest algorithm (default from config)")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "Bypass the digest cache")
	batchCmd.Flags().StringVar(&batchFormat, "format", "human", "Output format: json or human")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) {
	logger := newLogger(batchFormat)
	root := args[0]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	workers := cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}
	algo := cfg.Digest.Algo
	if batchAlgo != "" {
		algo = batchAlgo
	}

	cache := openCache(cfg, batchNoCache, logger)
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := &batch.Runner{
		Workers: workers,
		Algo:    algo,
		Limits:  limitsFromConfig(cfg),
		Cache:   cache,
		Logger:  logger,
	}
	results, err := runner.Run(ctx, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, r := range results {
		if r.Err != "" {
			failed++
		}
	}

	if batchFormat == "json" {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	} else {
		for _, r := range results {
			switch {
			case r.Err != "":
				fmt.Printf("FAIL  %s  (%s)\n", r.Path, r.Err)
			case r.Cached:
				fmt.Printf("%s  %s  (cached)\n", r.Digest, r.Path)
			default:
				fmt.Printf("%s  %s\n", r.Digest, r.Path)
			}
		}
		fmt.Printf("\n%d files, %d failed\n", len(results), failed)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
