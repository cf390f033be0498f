package main

import (
	"github.com/spf13/cobra"

	"kanon/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "kanon",
	Short: "kanon - canonical document toolkit",
	Long: `kanon canonicalizes structured documents (JSON, YAML, TOML) into a
deterministic, order-independent form: object keys are sorted at every
nesting level, so documents that are equal as mappings produce byte-identical
output and identical content digests regardless of source key order.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("kanon version {{.Version}}\n")
}
