// Package cmd implements the browsertest CLI commands using Cobra.
//
// Available commands:
//   - run: Load a test page in a browser, stream its transcript and answer screenshot requests
//   - serve: Serve a directory with the harness page only
//   - version: Show browsertest version information
package cmd
