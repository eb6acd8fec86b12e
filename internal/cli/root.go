package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fundvaultd",
	Short: "fundvaultd - oracle-priced contribution vault daemon",
	Long: `fundvaultd runs a single contribution vault: it accepts native-unit
contributions valued against a price oracle, enforces a minimum
reference-currency value, tracks per-funder balances and lets the owner
withdraw the whole held balance in one atomic operation.

The vault is served over HTTP JSON-RPC with an optional WebSocket event
stream, and persists its state through a pluggable key-value backend.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output to console after startup")
}
