package cmd

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/browsertest/packages/core/config"
	"github.com/abdul-hamid-achik/browsertest/packages/page"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transcriptConfig(timeout time.Duration) *config.Config {
	return &config.Config{
		Timeout:    int(timeout.Milliseconds()),
		DoneMarker: "test result: ",
	}
}

func TestFollowTranscript_StopsAtDoneMarker(t *testing.T) {
	doc := page.NewMemoryDocument(page.OutputID)
	doc.SetText(page.OutputID, "running 1 test\n")

	go func() {
		time.Sleep(2 * transcriptPollInterval)
		doc.SetText(page.OutputID, "running 1 test\ntest a ... ok\ntest result: ok. 1 pass")
		time.Sleep(2 * transcriptPollInterval)
		doc.SetText(page.OutputID, "running 1 test\ntest a ... ok\ntest result: ok. 1 passed\n")
	}()

	f := &recordingFormatter{}
	text, err := followTranscript(context.Background(), doc, transcriptConfig(5*time.Second), f)

	require.NoError(t, err)
	assert.Equal(t, "running 1 test\ntest a ... ok\ntest result: ok. 1 passed\n", text)
	assert.Equal(t, []string{"running 1 test", "test a ... ok", "test result: ok. 1 passed"}, f.lines)
}

func TestFollowTranscript_TimeoutFlushesPartialLine(t *testing.T) {
	doc := page.NewMemoryDocument(page.OutputID)
	doc.SetText(page.OutputID, "test a ... ok\ntest b ... ")

	f := &recordingFormatter{}
	start := time.Now()
	text, err := followTranscript(context.Background(), doc, transcriptConfig(3*transcriptPollInterval), f)

	assert.True(t, errors.Is(err, errTimeout))
	assert.GreaterOrEqual(t, time.Since(start), 3*transcriptPollInterval)
	assert.Equal(t, "test a ... ok\ntest b ... ", text)
	assert.Equal(t, []string{"test a ... ok", "test b ... "}, f.lines)
}

func TestFollowTranscript_WaitsForOutputElement(t *testing.T) {
	doc := page.NewMemoryDocument()

	go func() {
		time.Sleep(2 * transcriptPollInterval)
		doc.Add(page.OutputID)
		doc.SetText(page.OutputID, "test result: ok. 0 passed\n")
	}()

	_, err := followTranscript(context.Background(), doc, transcriptConfig(5*time.Second), &recordingFormatter{})
	assert.NoError(t, err)
}

func TestFollowTranscript_Cancelled(t *testing.T) {
	doc := page.NewMemoryDocument(page.OutputID)
	doc.SetText(page.OutputID, "running 1 test\n")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(2 * transcriptPollInterval)
		cancel()
	}()

	f := &recordingFormatter{}
	text, err := followTranscript(ctx, doc, transcriptConfig(5*time.Second), f)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "running 1 test\n", text)
	assert.Equal(t, []string{"running 1 test"}, f.lines)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name   string
		failed bool
		err    error
		want   int
	}{
		{"passed", false, nil, ExitSuccess},
		{"failed", true, nil, ExitTestFailure},
		{"timeout", false, errTimeout, ExitTimeout},
		{"wrapped timeout", false, errors.Join(errors.New("run"), errTimeout), ExitTimeout},
		{"browser error", false, errors.New("launch failed"), ExitBrowserError},
		{"error beats failure", true, errors.New("navigate failed"), ExitBrowserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.failed, tt.err))
		})
	}
}

func TestFlagConfig_PortZero(t *testing.T) {
	t.Setenv("BROWSERTEST_PORT", "")
	saved := portFlag
	t.Cleanup(func() { portFlag = saved })

	c := &cobra.Command{}
	c.Flags().IntVar(&portFlag, "port", 8000, "")
	require.NoError(t, c.Flags().Set("port", "0"))

	overrides, err := flagConfig(c)
	require.NoError(t, err)

	merged := config.DefaultConfig().Merge(overrides)
	assert.Equal(t, 0, merged.GetPort())
}

func TestFlagConfig_PortUnset(t *testing.T) {
	t.Setenv("BROWSERTEST_PORT", "")

	overrides, err := flagConfig(&cobra.Command{})
	require.NoError(t, err)

	assert.Nil(t, overrides.Port)
	assert.Equal(t, 8000, config.DefaultConfig().Merge(overrides).GetPort())
}

func TestSerialRunner_CollapsesTriggersDuringRun(t *testing.T) {
	var runs, active, maxActive int32
	release := make(chan struct{})
	started := make(chan struct{}, 4)

	r := &serialRunner{run: func() {
		n := atomic.AddInt32(&active, 1)
		for {
			m := atomic.LoadInt32(&maxActive)
			if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
				break
			}
		}
		atomic.AddInt32(&runs, 1)
		started <- struct{}{}
		<-release
		atomic.AddInt32(&active, -1)
	}}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.trigger()
	}()
	<-started

	// Both of these arrive while the first run is still going.
	r.trigger()
	r.trigger()

	release <- struct{}{}
	<-started
	release <- struct{}{}
	wg.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&runs), "queued triggers collapse into one rerun")
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive), "runs never overlap")
}
