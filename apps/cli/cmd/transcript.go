package cmd

import (
	"strings"

	"github.com/abdul-hamid-achik/browsertest/packages/output"
)

// transcriptTail forwards the complete lines of a growing transcript that
// have not been printed yet.
type transcriptTail struct {
	text    string
	printed int
	// flushed is set when the last printed line had no newline yet.
	flushed bool
}

func (t *transcriptTail) feed(text string, f output.Formatter) {
	if len(text) < t.printed || !strings.HasPrefix(text, t.text[:t.printed]) {
		// The page reloaded and started a new transcript.
		t.printed = 0
		t.flushed = false
	}
	t.text = text

	for {
		rest := t.text[t.printed:]
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			return
		}
		if !(t.flushed && nl == 0) {
			f.Writeln(rest[:nl])
		}
		t.flushed = false
		t.printed += nl + 1
	}
}

// flush prints a trailing partial line, if any.
func (t *transcriptTail) flush(f output.Formatter) {
	if rest := t.text[t.printed:]; rest != "" {
		f.Writeln(rest)
		t.printed = len(t.text)
		t.flushed = true
	}
}

// done reports whether the line holding marker has been completed.
func (t *transcriptTail) done(marker string) bool {
	i := strings.Index(t.text, marker)
	return i >= 0 && strings.Contains(t.text[i:], "\n")
}

// transcriptFailed reports whether any test in the transcript failed.
func transcriptFailed(text string) bool {
	return strings.Contains(text, "FAIL")
}
