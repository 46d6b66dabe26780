package observer

import "context"

// Capturer produces an image of the page.
type Capturer interface {
	Capture(ctx context.Context) ([]byte, error)
}

// CapturerFunc adapts a function to Capturer.
type CapturerFunc func(ctx context.Context) ([]byte, error)

func (f CapturerFunc) Capture(ctx context.Context) ([]byte, error) {
	return f(ctx)
}
