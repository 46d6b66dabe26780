//go:build js && wasm

package output

import "syscall/js"

// describeHostValue reads name, message and stack off a JavaScript value.
func describeHostValue(v any) (ErrorDescriptor, bool) {
	var val js.Value
	switch x := v.(type) {
	case js.Value:
		val = x
	case js.Error:
		val = x.Value
	default:
		return ErrorDescriptor{}, false
	}

	if val.Type() != js.TypeObject && val.Type() != js.TypeFunction {
		return ErrorDescriptor{Name: defaultErrorName, Message: jsString(val)}, true
	}

	d := ErrorDescriptor{Name: defaultErrorName, Message: jsString(val)}
	if name := val.Get("name"); name.Type() == js.TypeString {
		d.Name = name.String()
	}
	if message := val.Get("message"); message.Type() == js.TypeString {
		d.Message = message.String()
	}
	if stack := val.Get("stack"); stack.Type() == js.TypeString {
		s := stack.String()
		d.Stack = &s
	}
	return d, true
}

func jsString(val js.Value) string {
	if val.Type() == js.TypeString {
		return val.String()
	}
	return js.Global().Call("String", val).String()
}
