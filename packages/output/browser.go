package output

import "github.com/abdul-hamid-achik/browsertest/packages/page"

// Browser routes all output to the page's #output element. The element's
// text is the transcript: it is cleared once here and only appended to after.
type Browser struct {
	pre page.Element
}

// NewBrowser clears the #output element of doc and returns a formatter
// writing to it. It panics with *page.MissingElementError if the element is
// absent, since the page was not built from the harness template.
func NewBrowser(doc page.Document) *Browser {
	pre := page.MustElement(doc, page.OutputID)
	pre.SetTextContent("")
	return &Browser{pre: pre}
}

// Writeln appends line and a newline to the transcript.
func (b *Browser) Writeln(line string) {
	b.pre.SetTextContent(b.pre.TextContent() + line + "\n")
}

// StringifyError implements Formatter.
func (b *Browser) StringifyError(v any) string {
	return StringifyError(v)
}
