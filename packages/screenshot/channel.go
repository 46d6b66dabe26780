package screenshot

import (
	"context"
	"errors"
	"time"

	"github.com/abdul-hamid-achik/browsertest/packages/page"
	"golang.org/x/time/rate"
)

// PollInterval is the fixed delay between acknowledgement checks.
const PollInterval = 50 * time.Millisecond

var (
	// ErrPending is returned when a request is sent while another one has not
	// been acknowledged yet.
	ErrPending = errors.New("screenshot: a request is already pending")
	// ErrEmptyPath is returned for a request without a path.
	ErrEmptyPath = errors.New("screenshot: path must not be empty")
)

// State is the observable state of the channel.
type State int

const (
	Empty State = iota
	Pending
)

func (s State) String() string {
	if s == Pending {
		return "pending"
	}
	return "empty"
}

// Request asks for a screenshot to be saved at Path, relative to the project root.
type Request struct {
	Path string
}

// Channel is the request mailbox shared with the external observer.
type Channel struct {
	el page.Element
}

// OpenChannel returns the channel of doc, or a *page.MissingElementError.
func OpenChannel(doc page.Document) (*Channel, error) {
	el, ok := doc.ElementByID(page.ScreenshotID)
	if !ok {
		return nil, &page.MissingElementError{ID: page.ScreenshotID}
	}
	return &Channel{el: el}, nil
}

// MustOpenChannel is like OpenChannel but panics if the element is missing.
func MustOpenChannel(doc page.Document) *Channel {
	return &Channel{el: page.MustElement(doc, page.ScreenshotID)}
}

// State reports whether a request is pending and, if so, which one.
func (c *Channel) State() (State, Request) {
	text := c.el.TextContent()
	if text == "" {
		return Empty, Request{}
	}
	return Pending, Request{Path: text}
}

// Acknowledged reports whether the channel is empty.
func (c *Channel) Acknowledged() bool {
	return c.el.TextContent() == ""
}

// Send writes the request path into the channel.
func (c *Channel) Send(req Request) error {
	if req.Path == "" {
		return ErrEmptyPath
	}
	if !c.Acknowledged() {
		return ErrPending
	}
	c.el.SetTextContent(req.Path)
	return nil
}

// Await blocks until the observer clears the channel. The first check happens
// one PollInterval after the call, then once per interval with no backoff.
// If ctx has a deadline that falls between two checks, Await makes a final
// check when the deadline passes and only then gives up.
func (c *Channel) Await(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(PollInterval), 1)
	limiter.Allow()
	for {
		if err := limiter.Wait(ctx); err != nil {
			// Wait refuses early when the next token lands past the deadline.
			<-ctx.Done()
			if c.Acknowledged() {
				return nil
			}
			return ctx.Err()
		}
		if c.Acknowledged() {
			return nil
		}
	}
}
