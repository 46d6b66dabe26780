package observer

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/abdul-hamid-achik/browsertest/packages/page"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// DefaultInterval is how often the channel is checked for a request.
const DefaultInterval = 20 * time.Millisecond

// ErrOutsideRoot is returned for request paths that leave the project root.
var ErrOutsideRoot = errors.New("screenshot path escapes the project root")

// Logger receives diagnostic messages.
type Logger interface {
	Printf(format string, args ...any)
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...any) {}

// Capture describes one saved screenshot.
type Capture struct {
	ID       uuid.UUID
	Path     string // as requested by the page
	File     string // where the image was written
	Size     int
	Started  time.Time
	Duration time.Duration
}

// Observer answers screenshot requests on a single page.
type Observer struct {
	doc       page.Document
	capturer  Capturer
	root      string
	interval  time.Duration
	logger    Logger
	onCapture func(*Capture)
	runID     uuid.UUID
	stats     *Stats

	mu       sync.Mutex
	captures []*Capture
	errs     []error
}

// Option is a functional option for Observer
type Option func(*Observer)

// WithRoot sets the directory request paths are resolved against.
func WithRoot(root string) Option {
	return func(o *Observer) {
		o.root = root
	}
}

// WithInterval sets how often Run checks the channel.
func WithInterval(d time.Duration) Option {
	return func(o *Observer) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) Option {
	return func(o *Observer) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOnCapture registers a callback invoked after each saved screenshot.
func WithOnCapture(fn func(*Capture)) Option {
	return func(o *Observer) {
		o.onCapture = fn
	}
}

// New creates an observer for doc that captures images with capturer.
func New(doc page.Document, capturer Capturer, opts ...Option) *Observer {
	o := &Observer{
		doc:      doc,
		capturer: capturer,
		root:     ".",
		interval: DefaultInterval,
		logger:   nullLogger{},
		runID:    uuid.New(),
		stats:    NewStats(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Step handles at most one pending request. It returns nil, nil when there is
// nothing to do. Once a request has been seen the channel is always cleared,
// even on failure, so the test does not wait forever on a request that
// cannot be served; the failure is returned instead.
func (o *Observer) Step(ctx context.Context) (*Capture, error) {
	el, ok := o.doc.ElementByID(page.ScreenshotID)
	if !ok {
		return nil, nil
	}
	path := el.TextContent()
	if path == "" {
		return nil, nil
	}
	defer el.SetTextContent("")

	dest, err := o.resolve(path)
	if err != nil {
		return nil, o.fail(err)
	}

	started := time.Now()
	data, err := o.capturer.Capture(ctx)
	if err != nil {
		return nil, o.fail(errors.Wrapf(err, "capturing %s", path))
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, o.fail(errors.Wrapf(err, "creating directory for %s", path))
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return nil, o.fail(errors.Wrapf(err, "writing %s", path))
	}

	c := &Capture{
		ID:       uuid.New(),
		Path:     path,
		File:     dest,
		Size:     len(data),
		Started:  started,
		Duration: time.Since(started),
	}
	o.stats.Record(c.Duration)

	o.mu.Lock()
	o.captures = append(o.captures, c)
	o.mu.Unlock()

	o.logger.Printf("saved screenshot %s (%d bytes, %v)", dest, c.Size, c.Duration)
	if o.onCapture != nil {
		o.onCapture(c)
	}
	return c, nil
}

// Run calls Step every interval until ctx is done. Step failures are logged
// and collected in Errors; they do not stop the observer.
func (o *Observer) Run(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(o.interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		if _, err := o.Step(ctx); err != nil {
			o.logger.Printf("screenshot request failed: %v", err)
		}
	}
}

// Captures returns the screenshots saved so far.
func (o *Observer) Captures() []*Capture {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*Capture(nil), o.captures...)
}

// Errors returns the failures seen by Step so far.
func (o *Observer) Errors() []error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]error(nil), o.errs...)
}

// Stats returns the capture latency statistics.
func (o *Observer) Stats() *Stats {
	return o.stats
}

func (o *Observer) fail(err error) error {
	o.mu.Lock()
	o.errs = append(o.errs, err)
	o.mu.Unlock()
	return err
}

// resolve maps a request path onto the filesystem below root.
func (o *Observer) resolve(path string) (string, error) {
	local := filepath.FromSlash(path)
	if !filepath.IsLocal(local) {
		return "", errors.Wrapf(ErrOutsideRoot, "%q", path)
	}
	return filepath.Join(o.root, local), nil
}
