// Package page abstracts the handful of DOM operations the reporter needs.
//
// The reporter only ever looks elements up by id and reads or replaces their
// text content. Two documents are provided:
//   - MemoryDocument: an in-process document, safe for concurrent use
//   - JSDocument: the browser's global document (js/wasm builds only)
package page
