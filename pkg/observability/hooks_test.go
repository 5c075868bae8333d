package observability

import (
	"context"
	"testing"
	"time"
)

// countingLayoutHooks counts events for assertions.
type countingLayoutHooks struct {
	NoopLayoutHooks
	analyzeStarts int
	applies       int
}

func (h *countingLayoutHooks) OnAnalyzeStart(ctx context.Context, n int) {
	h.analyzeStarts++
}

func (h *countingLayoutHooks) OnApplyComplete(ctx context.Context, total, failed int, d time.Duration) {
	h.applies++
}

func TestSetLayoutHooks(t *testing.T) {
	defer Reset()

	hooks := &countingLayoutHooks{}
	SetLayoutHooks(hooks)

	Layout().OnAnalyzeStart(context.Background(), 3)
	Layout().OnApplyComplete(context.Background(), 5, 1, time.Millisecond)

	if hooks.analyzeStarts != 1 {
		t.Errorf("analyzeStarts = %d, want 1", hooks.analyzeStarts)
	}
	if hooks.applies != 1 {
		t.Errorf("applies = %d, want 1", hooks.applies)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	defer Reset()

	hooks := &countingLayoutHooks{}
	SetLayoutHooks(hooks)
	SetLayoutHooks(nil)

	Layout().OnAnalyzeStart(context.Background(), 1)
	if hooks.analyzeStarts != 1 {
		t.Error("nil registration must not replace existing hooks")
	}
}

func TestResetRestoresNoops(t *testing.T) {
	hooks := &countingLayoutHooks{}
	SetLayoutHooks(hooks)
	Reset()

	Layout().OnAnalyzeStart(context.Background(), 1)
	if hooks.analyzeStarts != 0 {
		t.Error("Reset must restore no-op hooks")
	}

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should be NoopLayoutHooks after Reset")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should be NoopCacheHooks after Reset")
	}
}
