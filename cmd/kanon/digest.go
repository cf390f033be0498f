package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kanon/internal/batch"
	"kanon/internal/config"
	"kanon/internal/logging"
	"kanon/internal/store"
)

var (
	digestAlgo    string
	digestNoCache bool
	digestFormat  string
)

var digestCmd = &cobra.Command{
	Use:   "digest <file>...",
	Short: "Compute content digests of canonicalized documents",
	Long: `Compute the content digest of one or more documents over their
canonical form. Documents that are equal as mappings — in any format,
with keys in any order — get the same digest.

Examples:
  kanon digest config.json
  kanon digest --algo blake2b-256 a.yaml b.toml
  kanon digest --no-cache config.json`,
	Args: cobra.MinimumNArgs(1),
	Run:  runDigest,
}

func init() {
	digestCmd.Flags().StringVar(&digestAlgo, "algo", "", "Digest algorithm: sha256, sha3-256 or blake2b-256 (default from config)")
	digestCmd.Flags().BoolVar(&digestNoCache, "no-cache", false, "Bypass the digest cache")
	digestCmd.Flags().StringVar(&digestFormat, "format", "human", "Output format: json or human")

	rootCmd.AddCommand(digestCmd)
}

type digestLine struct {
	Path   string `json:"path"`
	Digest string `json:"digest,omitempty"`
	Cached bool   `json:"cached"`
	Err    string `json:"error,omitempty"`
}

func runDigest(cmd *cobra.Command, args []string) {
	logger := newLogger(digestFormat)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	algo := cfg.Digest.Algo
	if digestAlgo != "" {
		algo = digestAlgo
	}

	cache := openCache(cfg, digestNoCache, logger)
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	lines := make([]digestLine, 0, len(args))
	failed := false
	for _, path := range args {
		d, cached, err := batch.DigestFile(path, algo, limitsFromConfig(cfg), cache)
		if err != nil {
			failed = true
			lines = append(lines, digestLine{Path: path, Err: err.Error()})
			continue
		}
		lines = append(lines, digestLine{Path: path, Digest: d.Digest, Cached: cached})
	}

	if digestFormat == "json" {
		out, err := json.MarshalIndent(lines, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	} else {
		for _, l := range lines {
			if l.Err != "" {
				fmt.Fprintf(os.Stderr, "Error: %s: %s\n", l.Path, l.Err)
				continue
			}
			fmt.Printf("%s  %s\n", l.Digest, l.Path)
		}
	}

	if failed {
		os.Exit(1)
	}
}

func limitsFromConfig(cfg *config.Config) batch.Limits {
	return batch.Limits{
		MaxDepth: cfg.Limits.MaxDepth,
		MaxBytes: cfg.Limits.MaxDocumentBytes,
	}
}

// openCache opens the digest cache unless disabled by flag or config.
func openCache(cfg *config.Config, noCache bool, logger *logging.Logger) *store.Store {
	if noCache || !cfg.Cache.Enabled {
		return nil
	}
	cache, err := store.Open(cfg.Cache.Dir, logger)
	if err != nil {
		// A broken cache degrades to uncached operation.
		logger.Warn("Digest cache unavailable", map[string]any{"error": err.Error()})
		return nil
	}
	return cache
}
