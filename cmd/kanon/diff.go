package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kanon/internal/encode"
)

var diffFormat string

var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Compare two documents by canonical form",
	Long: `Compare two documents after canonicalization. Key order never
affects the result, and the two sides may use different formats.

Exit status is 0 when the documents are canonically equal, 1 otherwise.

Examples:
  kanon diff deploy.json deploy.yaml
  kanon diff --format json old.toml new.toml`,
	Args: cobra.ExactArgs(2),
	Run:  runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffFormat, "format", "human", "Output format: json or human")

	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) {
	pathA, pathB := args[0], args[1]

	encA, err := loadEntries(pathA)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", pathA, err)
		os.Exit(1)
	}
	encB, err := loadEntries(pathB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", pathB, err)
		os.Exit(1)
	}

	equal := bytes.Equal(encA, encB)

	if diffFormat == "json" {
		out, _ := json.Marshal(map[string]any{
			"a":     pathA,
			"b":     pathB,
			"equal": equal,
		})
		fmt.Println(string(out))
	} else if equal {
		fmt.Printf("%s and %s are canonically equal\n", pathA, pathB)
	} else {
		fmt.Printf("%s and %s differ\n", pathA, pathB)
	}

	if !equal {
		os.Exit(1)
	}
}

func loadEntries(path string) ([]byte, error) {
	cv, err := loadCanonical(path)
	if err != nil {
		return nil, err
	}
	return encode.Entries(cv)
}
