package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, false, "Building 2 decoder(s)...")
	s.Start()
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Building 2 decoder(s)...") {
		t.Errorf("spinner output %q lacks its message", got)
	}
	if !strings.HasPrefix(got, "\r") || !strings.HasSuffix(got, "\r") {
		t.Errorf("spinner output %q should redraw and clear in place", got)
	}
}

func TestSpinnerQuiet(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, true, "Building 1 decoder(s)...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if got := out.String(); got != "" {
		t.Errorf("quiet spinner wrote %q", got)
	}
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerTo(ctx, &syncBuffer{}, true, "Building...")
	s.Start()

	if s.Cancelled() {
		t.Fatal("Cancelled before the context ended")
	}
	cancel()
	s.Stop()
	if !s.Cancelled() {
		t.Error("Cancelled = false after the context ended")
	}
}

func TestSpinnerStopIsNotCancellation(t *testing.T) {
	s := newSpinnerTo(context.Background(), &syncBuffer{}, true, "Building...")
	s.Start()
	s.Stop()
	s.Stop()
	if s.Cancelled() {
		t.Error("Stop reported as cancellation")
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var out syncBuffer
	s := newSpinnerTo(ctx, &out, false, "Building...")
	s.Start()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner goroutine still running after its context ended")
	}
	if !s.Cancelled() {
		t.Error("Cancelled = false after timeout")
	}
}
