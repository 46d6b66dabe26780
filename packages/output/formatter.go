package output

import (
	"fmt"
	"strings"
)

// Formatter is implemented by every output target.
type Formatter interface {
	// Writeln appends line followed by a newline.
	Writeln(line string)
	// StringifyError renders an arbitrary error, panic or rejection value.
	// It never panics and never returns "" for a non-nil value.
	StringifyError(v any) string
}

// ReportPass writes the success line for a test.
func ReportPass(f Formatter, name string) {
	f.Writeln(fmt.Sprintf("test %s ... ok", name))
}

// ReportFailure writes the failure line for a test followed by the
// rendered error, one line at a time.
func ReportFailure(f Formatter, name string, v any) {
	f.Writeln(fmt.Sprintf("test %s ... FAIL", name))
	for _, line := range strings.Split(f.StringifyError(v), "\n") {
		f.Writeln(line)
	}
}
