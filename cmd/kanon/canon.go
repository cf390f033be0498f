package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kanon/internal/adapter"
	"kanon/internal/canon"
	"kanon/internal/config"
	"kanon/internal/encode"
)

var (
	canonForm     string
	canonIndent   bool
	canonOutput   string
	canonCompress bool
	canonFormat   string
)

var canonCmd = &cobra.Command{
	Use:   "canon <file>",
	Short: "Canonicalize a document",
	Long: `Canonicalize a JSON, YAML or TOML document and print the result.

Forms:
  entries  canonical sequence form: [{"k":key,"v":value},...] (default)
  object   plain JSON with keys in canonical order
  jcs      RFC 8785 canonical JSON
  cbor     RFC 8949 canonical CBOR (binary)

Examples:
  # Canonical sequence form on stdout
  kanon canon config.json

  # Sorted-key JSON, indented
  kanon canon config.yaml --form object --indent

  # Canonical CBOR, zstd-compressed, to a file
  kanon canon data.toml --form cbor --compress --output data.cbor.zst`,
	Args: cobra.ExactArgs(1),
	Run:  runCanon,
}

func init() {
	canonCmd.Flags().StringVar(&canonForm, "form", "entries", "Output form: entries, object, jcs or cbor")
	canonCmd.Flags().BoolVar(&canonIndent, "indent", false, "Indent output (object form only)")
	canonCmd.Flags().StringVar(&canonOutput, "output", "", "Output path (default: stdout)")
	canonCmd.Flags().BoolVar(&canonCompress, "compress", false, "zstd-compress the output")
	canonCmd.Flags().StringVar(&canonFormat, "format", "human", "Log format: json or human")

	rootCmd.AddCommand(canonCmd)
}

func runCanon(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger(canonFormat)
	path := args[0]

	cv, err := loadCanonical(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var out []byte
	switch canonForm {
	case "entries":
		out, err = encode.Entries(cv)
	case "object":
		if canonIndent {
			out, err = encode.ObjectIndent(cv, "  ")
		} else {
			out, err = encode.Object(cv)
		}
	case "jcs":
		out, err = encode.JCS(cv)
	case "cbor":
		out, err = encode.CBOR(cv)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown form %q\n", canonForm)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if canonCompress {
		out = encode.Compress(out)
	}

	if canonOutput != "" {
		if err := os.WriteFile(canonOutput, out, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		_, _ = os.Stdout.Write(out)
		if canonForm != "cbor" && !canonCompress {
			fmt.Println()
		}
	}

	logger.Debug("Canonicalized document", map[string]any{
		"path":       path,
		"form":       canonForm,
		"bytes":      len(out),
		"durationMs": time.Since(start).Milliseconds(),
	})
}

// loadCanonical reads, parses and canonicalizes one document, honoring
// the configured depth and size limits.
func loadCanonical(path string) (canon.Value, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, err
	}
	return loadCanonicalLimited(path, cfg.Limits.MaxDepth, cfg.Limits.MaxDocumentBytes)
}

func loadCanonicalLimited(path string, maxDepth, maxBytes int) (canon.Value, error) {
	format, err := adapter.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := adapter.ParseLimited(data, format, maxBytes)
	if err != nil {
		return nil, err
	}
	return canon.CanonicalizeWithLimit(v, maxDepth)
}
