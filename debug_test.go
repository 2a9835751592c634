package chanmix

import (
	"fmt"
	"strings"
	"testing"
)

// ---- Debug mode tests ------------------------------------------------------

func expectDebugPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic mentioning %q, got none", substr)
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, substr) {
			t.Errorf("panic message should mention %q, got: %s", substr, msg)
		}
	}()
	fn()
}

func debugAnimator() *Animator {
	cfg := DefaultConfig()
	cfg.Debug = true
	return NewAnimator(testData(), cfg)
}

func TestDebugMode_ValidLayoutDoesNotPanic(t *testing.T) {
	a := debugAnimator()
	a.Play(3, "idle")
	a.Play(1, "walk")
	for range 5 {
		a.Play(1, "run", WithBlend(1))
		a.Play(1, "walk", WithBlend(1))
	}
	a.SetBackgroundAnimation(2, 4, "idle", 0)
	debugCheckLayout(a.alloc)
}

func TestDebugMode_ShiftedSlotPanics(t *testing.T) {
	a := debugAnimator()
	a.Play(0, "idle")
	a.Play(1, "walk")
	a.alloc.channels[1].primary.index = 0

	expectDebugPanic(t, "primary slot", func() { debugCheckLayout(a.alloc) })
}

func TestDebugMode_StaleTrackIndexPanics(t *testing.T) {
	a := debugAnimator()
	a.Play(0, "idle")
	a.state.Track(a.alloc.channels[0].primary.index).TrackIndex = 7

	expectDebugPanic(t, "reports track index", func() { debugCheckLayout(a.alloc) })
}

func TestDebugMode_UnsortedChannelsPanics(t *testing.T) {
	a := debugAnimator()
	a.Play(0, "idle")
	a.Play(1, "walk")
	a.alloc.channels[0], a.alloc.channels[1] = a.alloc.channels[1], a.alloc.channels[0]

	expectDebugPanic(t, "listed after", func() { debugCheckLayout(a.alloc) })
}

func TestDebugMode_TrackCountMismatchPanics(t *testing.T) {
	a := debugAnimator()
	a.Play(0, "idle")
	a.state.Grow(a.state.Len() + 2)

	expectDebugPanic(t, "track state has", func() { debugCheckLayout(a.alloc) })
}
