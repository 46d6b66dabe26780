package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ConsoleFormatter writes output lines to a terminal.
type ConsoleFormatter struct {
	writer  io.Writer
	prefix  string
	noColor bool

	pass *color.Color
	fail *color.Color
	skip *color.Color
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
		pass:   color.New(color.FgGreen),
		fail:   color.New(color.FgRed),
		skip:   color.New(color.FgYellow),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		f.pass.DisableColor()
		f.fail.DisableColor()
		f.skip.DisableColor()
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// WithPrefix prepends prefix to every line written.
func WithPrefix(prefix string) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.prefix = prefix
	}
}

func (f *ConsoleFormatter) Writeln(line string) {
	switch {
	case strings.HasSuffix(line, " ... ok"):
		line = f.pass.Sprint(line)
	case strings.Contains(line, "FAIL"):
		line = f.fail.Sprint(line)
	case strings.HasSuffix(line, " ... ignored"):
		line = f.skip.Sprint(line)
	}
	fmt.Fprintf(f.writer, "%s%s\n", f.prefix, line)
}

func (f *ConsoleFormatter) StringifyError(v any) string {
	return StringifyError(v)
}
