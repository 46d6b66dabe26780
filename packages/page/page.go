package page

import "fmt"

const (
	// OutputID is the id of the element holding the test transcript.
	OutputID = "output"
	// ScreenshotID is the id of the element used as the screenshot request channel.
	ScreenshotID = "__wbgtest_screenshot"
)

// Element is a page element whose text content can be read and replaced.
type Element interface {
	TextContent() string
	SetTextContent(text string)
}

// Document looks elements up by id.
type Document interface {
	ElementByID(id string) (Element, bool)
}

// MissingElementError reports that a required element is not on the page.
// It is raised as a panic: the host page does not match the harness template.
type MissingElementError struct {
	ID string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("page has no element with id %q", e.ID)
}

// MustElement returns the element with the given id or panics with a
// *MissingElementError.
func MustElement(doc Document, id string) Element {
	el, ok := doc.ElementByID(id)
	if !ok {
		panic(&MissingElementError{ID: id})
	}
	return el
}
