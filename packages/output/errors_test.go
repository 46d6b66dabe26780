package output

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestErrorDescriptor_String(t *testing.T) {
	t.Run("no stack returns header", func(t *testing.T) {
		d := ErrorDescriptor{Name: "TypeError", Message: "x is not a function"}
		assert.Equal(t, "TypeError: x is not a function", d.String())
	})

	t.Run("stack embedding header is returned verbatim", func(t *testing.T) {
		stack := "TypeError: x is not a function\n    at foo (a.js:1:1)"
		d := ErrorDescriptor{Name: "TypeError", Message: "x is not a function", Stack: strPtr(stack)}
		assert.Equal(t, stack, d.String())
	})

	t.Run("stack without header gets header prepended", func(t *testing.T) {
		d := ErrorDescriptor{Name: "TypeError", Message: "x is not a function", Stack: strPtr("    at foo (a.js:1:1)")}
		assert.Equal(t, "TypeError: x is not a function\n    at foo (a.js:1:1)", d.String())
	})

	t.Run("header in the middle of the stack still counts", func(t *testing.T) {
		stack := "Uncaught (in promise) RangeError: bad\n    at bar (b.js:2:2)"
		d := ErrorDescriptor{Name: "RangeError", Message: "bad", Stack: strPtr(stack)}
		assert.Equal(t, stack, d.String())
	})

	t.Run("empty stack is still a stack", func(t *testing.T) {
		d := ErrorDescriptor{Name: "Error", Message: "m", Stack: strPtr("")}
		assert.Equal(t, "Error: m\n", d.String())
	})
}

type namedErr struct{}

func (namedErr) Error() string     { return "x is not a function" }
func (namedErr) ErrorName() string { return "TypeError" }

type stackErr struct {
	stack string
}

func (e *stackErr) Error() string     { return "boom" }
func (e *stackErr) ErrorName() string { return "RangeError" }
func (e *stackErr) Stack() string     { return e.stack }

type panickyErr struct{}

func (panickyErr) Error() string { panic("no message for you") }

type PublicErr struct{}

func (*PublicErr) Error() string { return "public" }

type stringer struct{}

func (stringer) String() string { return "stringified" }

func TestDescribe(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, "Error: nil", StringifyError(nil))
	})

	t.Run("descriptor passes through", func(t *testing.T) {
		d := ErrorDescriptor{Name: "N", Message: "M"}
		assert.Equal(t, d, Describe(d))
		assert.Equal(t, d, Describe(&d))
	})

	t.Run("plain error uses Error name", func(t *testing.T) {
		d := Describe(fmt.Errorf("wrapped: %w", os.ErrNotExist))
		assert.Equal(t, "Error", d.Name)
		assert.Equal(t, "wrapped: file does not exist", d.Message)
		assert.Nil(t, d.Stack)
	})

	t.Run("exported error type supplies name", func(t *testing.T) {
		_, err := os.Open("/definitely/not/here")
		require.Error(t, err)
		var pathErr *fs.PathError
		require.ErrorAs(t, err, &pathErr)
		assert.Equal(t, "PathError", Describe(err).Name)
		assert.Equal(t, "PublicErr", Describe(&PublicErr{}).Name)
	})

	t.Run("named error", func(t *testing.T) {
		assert.Equal(t, "TypeError: x is not a function", StringifyError(namedErr{}))
	})

	t.Run("Stack method supplies stack", func(t *testing.T) {
		err := &stackErr{stack: "RangeError: boom\n    at x (y.js:1:1)"}
		assert.Equal(t, err.stack, StringifyError(err))

		err = &stackErr{stack: "    at x (y.js:1:1)"}
		assert.Equal(t, "RangeError: boom\n    at x (y.js:1:1)", StringifyError(err))
	})

	t.Run("pkg/errors stack trace", func(t *testing.T) {
		err := errors.New("kaput")
		d := Describe(err)
		require.NotNil(t, d.Stack)
		assert.Contains(t, *d.Stack, "TestDescribe")
		out := StringifyError(err)
		assert.True(t, strings.HasPrefix(out, "Error: kaput\n"), out)
	})

	t.Run("strings and stringers", func(t *testing.T) {
		assert.Equal(t, "Error: something broke", StringifyError("something broke"))
		assert.Equal(t, "Error: stringified", StringifyError(stringer{}))
		assert.Equal(t, "Error: 42", StringifyError(42))
	})

	t.Run("panicking Error method degrades", func(t *testing.T) {
		var out string
		assert.NotPanics(t, func() { out = StringifyError(panickyErr{}) })
		assert.Contains(t, out, "no message for you")
		assert.NotEmpty(t, out)
	})

	t.Run("typed nil pointer error", func(t *testing.T) {
		var e *stackErr
		var out string
		assert.NotPanics(t, func() { out = StringifyError(e) })
		assert.NotEmpty(t, out)
	})

	t.Run("idempotent", func(t *testing.T) {
		err := &stackErr{stack: "    at x (y.js:1:1)"}
		assert.Equal(t, StringifyError(err), StringifyError(err))
	})
}
