package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("working")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	// Stop cancels the internal context.
	if !s.Cancelled() {
		t.Error("stopped spinner should report cancellation")
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "working")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("spinner should report cancellation after context cancel")
	}
}

func TestSpinnerDoubleStop(t *testing.T) {
	s := newSpinner("working")
	s.Start()
	s.Stop()
	s.Stop() // must not panic
}
