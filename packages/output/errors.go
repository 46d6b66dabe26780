package output

import (
	stderrors "errors"
	"fmt"
	"go/token"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

const defaultErrorName = "Error"

// ErrorDescriptor is the name/message/stack view of a thrown or rejected value.
// Stack is nil when the value carries no stack trace.
type ErrorDescriptor struct {
	Name    string
	Message string
	Stack   *string
}

// Header returns "name: message".
func (d ErrorDescriptor) Header() string {
	return d.Name + ": " + d.Message
}

// String renders the descriptor. A stack that already contains the header is
// returned as is; otherwise the header is prepended to it.
func (d ErrorDescriptor) String() string {
	header := d.Header()
	if d.Stack == nil {
		return header
	}
	stack := *d.Stack
	if strings.Contains(stack, header) {
		return stack
	}
	return header + "\n" + stack
}

// StringifyError renders v with the descriptor algorithm.
func StringifyError(v any) string {
	return Describe(v).String()
}

type namedError interface {
	ErrorName() string
}

type stackCarrier interface {
	Stack() string
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Describe coerces v into an ErrorDescriptor. It never panics: a value whose
// Error or String method panics is described by its type name.
func Describe(v any) (d ErrorDescriptor) {
	defer func() {
		if r := recover(); r != nil {
			d = ErrorDescriptor{
				Name:    typeName(v),
				Message: fmt.Sprintf("<panic while formatting: %v>", r),
			}
		}
	}()

	switch val := v.(type) {
	case nil:
		return ErrorDescriptor{Name: defaultErrorName, Message: "nil"}
	case ErrorDescriptor:
		return val
	case *ErrorDescriptor:
		if val == nil {
			return ErrorDescriptor{Name: defaultErrorName, Message: "nil"}
		}
		return *val
	}

	if hd, ok := describeHostValue(v); ok {
		return hd
	}

	switch val := v.(type) {
	case error:
		return describeError(val)
	case string:
		return ErrorDescriptor{Name: defaultErrorName, Message: val}
	case fmt.Stringer:
		return ErrorDescriptor{Name: defaultErrorName, Message: val.String()}
	}
	return ErrorDescriptor{Name: defaultErrorName, Message: fmt.Sprint(v)}
}

func describeError(err error) ErrorDescriptor {
	d := ErrorDescriptor{Name: errorName(err), Message: err.Error()}

	var carrier stackCarrier
	var tracer stackTracer
	switch {
	case stderrors.As(err, &carrier):
		stack := carrier.Stack()
		d.Stack = &stack
	case stderrors.As(err, &tracer):
		stack := strings.TrimPrefix(fmt.Sprintf("%+v", tracer.StackTrace()), "\n")
		d.Stack = &stack
	}
	return d
}

func errorName(err error) string {
	if named, ok := err.(namedError); ok {
		if name := named.ErrorName(); name != "" {
			return name
		}
	}
	return typeName(err)
}

// typeName returns the exported dynamic type name of v, or "Error".
func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return defaultErrorName
	}
	if name := t.Name(); name != "" && token.IsExported(name) {
		return name
	}
	return defaultErrorName
}
