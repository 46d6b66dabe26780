package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "browsertest",
	Short: "Run wasm tests in a real browser and capture their screenshots.",
	Long: `browsertest loads a page running Go tests compiled to WebAssembly,
streams the page's test transcript to the terminal and answers the
screenshot requests the tests make while they run.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
