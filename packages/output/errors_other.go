//go:build !(js && wasm)

package output

func describeHostValue(any) (ErrorDescriptor, bool) {
	return ErrorDescriptor{}, false
}
