package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdul-hamid-achik/browsertest/packages/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <directory>",
	Short: "Serve a directory with the harness page",
	Long: `Serve a directory with the harness page at /, for running tests
in a browser by hand. Screenshot requests are not answered in this mode.

Examples:
  browsertest serve ./web --wasm tests.wasm
  browsertest serve ./web --wasm tests.wasm --port 9000`,
	Args: cobra.ExactArgs(1),
	RunE: serveCommand,
}

var (
	serveWasmFlag string
	servePortFlag int
)

func init() {
	serveCmd.Flags().StringVar(&serveWasmFlag, "wasm", getEnvString("BROWSERTEST_WASM", ""), "WebAssembly module the page loads (env: BROWSERTEST_WASM)")
	serveCmd.Flags().IntVarP(&servePortFlag, "port", "p", getEnvInt("BROWSERTEST_PORT", 8000), "Port to listen on (env: BROWSERTEST_PORT)")
}

func serveCommand(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", args[0], err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", args[0])
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.NewServer(args[0], server.WithPort(servePortFlag), server.WithWasm(serveWasmFlag))
	if err := srv.Start(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at %s (press Ctrl+C to stop)\n", args[0], srv.URL())
	<-ctx.Done()
	return nil
}
