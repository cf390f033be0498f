package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kanon/internal/config"
	"kanon/internal/store"
)

var cacheFormat string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the digest cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show digest cache statistics",
	Args:  cobra.NoArgs,
	Run:   runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached digests",
	Args:  cobra.NoArgs,
	Run:   runCacheClear,
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&cacheFormat, "format", "human", "Output format: json or human")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCacheOrExit() *store.Store {
	logger := newLogger(cacheFormat)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cache, err := store.Open(cfg.Cache.Dir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cache
}

func runCacheStats(cmd *cobra.Command, args []string) {
	cache := openCacheOrExit()
	defer func() { _ = cache.Close() }()

	stats, err := cache.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cacheFormat == "json" {
		out, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(out))
	} else {
		fmt.Printf("Entries: %d\n", stats.Entries)
		fmt.Printf("Database: %s\n", stats.DBPath)
	}
}

func runCacheClear(cmd *cobra.Command, args []string) {
	cache := openCacheOrExit()
	defer func() { _ = cache.Close() }()

	if err := cache.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Digest cache cleared.")
}
