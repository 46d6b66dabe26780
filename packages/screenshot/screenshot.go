package screenshot

import (
	"context"

	"github.com/abdul-hamid-achik/browsertest/packages/page"
)

// Screenshot requests a screenshot saved at path and blocks until the
// observer acknowledges it. There is no timeout: if nothing ever clears the
// channel, Screenshot never returns.
//
// It panics if the page has no #__wbgtest_screenshot element (the test is not
// running under the capturing harness), if path is empty, or if a previous
// request is still pending.
func Screenshot(doc page.Document, path string) {
	ch := MustOpenChannel(doc)
	if err := ch.Send(Request{Path: path}); err != nil {
		panic(err)
	}
	_ = ch.Await(context.Background())
}

// ScreenshotContext is Screenshot with cancellation. On cancellation the
// request is left in the channel, since clearing it could race with the
// observer reading the path; the caller must not send another request until
// the channel is empty.
//
// A missing channel element still panics.
func ScreenshotContext(ctx context.Context, doc page.Document, path string) error {
	ch := MustOpenChannel(doc)
	if err := ch.Send(Request{Path: path}); err != nil {
		return err
	}
	return ch.Await(ctx)
}
