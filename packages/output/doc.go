// Package output provides formatters for emitting test output.
//
// Supported formatters:
//   - Browser: appends to the page's #output element
//   - Console: human-readable colored terminal output
//
// Each formatter implements the Formatter interface. Errors, panics and
// rejected values are normalized with StringifyError so that engines which
// already embed "name: message" in their stack traces are not printed twice.
package output
