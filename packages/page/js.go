//go:build js && wasm

package page

import "syscall/js"

type jsDocument struct {
	document js.Value
}

type jsElement struct {
	value js.Value
}

// JSDocument returns the browser's global document.
func JSDocument() Document {
	return jsDocument{document: js.Global().Get("document")}
}

func (d jsDocument) ElementByID(id string) (Element, bool) {
	el := d.document.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, false
	}
	return jsElement{value: el}, true
}

func (e jsElement) TextContent() string {
	text := e.value.Get("textContent")
	if text.Type() != js.TypeString {
		return ""
	}
	return text.String()
}

func (e jsElement) SetTextContent(text string) {
	e.value.Set("textContent", text)
}
