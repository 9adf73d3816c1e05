package presenter

import (
	"strings"
	"testing"
	"time"

	"github.com/shahbajlive/deck/internal/deck"
)

var (
	waveSlide  = deck.Slide{ID: "wave", BackgroundAnimation: &deck.BackgroundAnimation{Type: "wave"}}
	plainSlide = deck.Slide{ID: "plain"}
)

func TestBackgroundArm(t *testing.T) {
	t.Parallel()

	b := NewBackground(NewManualScheduler(), 0, nil)
	if b.State() != BackgroundIdle || !b.Token().IsZero() {
		t.Fatal("new driver should be idle")
	}
	if b.SettleDelay() != DefaultSettleDelay {
		t.Errorf("SettleDelay() = %v, want %v", b.SettleDelay(), DefaultSettleDelay)
	}

	tok := b.Arm(waveSlide)
	if tok.IsZero() {
		t.Fatal("arming onto an animated slide should produce a token")
	}
	if !strings.HasPrefix(tok.ID, "wave#") {
		t.Errorf("token should be derived from the slide id, got %q", tok.ID)
	}
	if b.State() != BackgroundArmed || b.Type() != "wave" {
		t.Errorf("State() = %v type %q, want armed wave", b.State(), b.Type())
	}

	again := b.Arm(waveSlide)
	if again == tok {
		t.Error("re-arming the same slide must produce a distinct token")
	}

	if idle := b.Arm(plainSlide); !idle.IsZero() {
		t.Errorf("arming onto a plain slide should go idle, got %v", idle)
	}
	if b.State() != BackgroundIdle {
		t.Errorf("State() = %v, want idle", b.State())
	}
}

func TestBackgroundCompleteSettles(t *testing.T) {
	t.Parallel()

	s := NewManualScheduler()
	b := NewBackground(s, 0, nil)
	tok := b.Arm(waveSlide)

	if !b.Complete(tok) {
		t.Fatal("completing the live token should schedule a clear")
	}
	if b.Complete(tok) {
		t.Error("a duplicate completion should not reschedule")
	}
	if s.Pending() != 1 {
		t.Errorf("expected exactly one pending clear, got %d", s.Pending())
	}

	s.Advance(899 * time.Millisecond)
	if b.Token() != tok {
		t.Fatal("token must survive until the settle delay elapses")
	}
	s.Advance(time.Millisecond)
	if !b.Token().IsZero() {
		t.Errorf("token should clear after 900ms, got %v", b.Token())
	}
}

func TestBackgroundStaleCompletionIgnored(t *testing.T) {
	t.Parallel()

	s := NewManualScheduler()
	b := NewBackground(s, 0, nil)
	old := b.Arm(waveSlide)
	current := b.Arm(waveSlide)

	if b.Complete(old) {
		t.Error("completion for a superseded token must be ignored")
	}
	if b.Complete(Token{}) {
		t.Error("completion for the idle token must be ignored")
	}
	s.Advance(5 * time.Second)
	if b.Token() != current {
		t.Errorf("stale completion cleared the live token: %v", b.Token())
	}
}

func TestBackgroundSupersededClearCannotClearNewToken(t *testing.T) {
	t.Parallel()

	s := NewManualScheduler()
	b := NewBackground(s, 0, nil)
	first := b.Arm(waveSlide)
	b.Complete(first)

	s.Advance(500 * time.Millisecond)
	second := b.Arm(waveSlide)
	if s.Pending() != 0 {
		t.Errorf("arming must cancel the superseded clear, %d pending", s.Pending())
	}

	s.Advance(time.Second)
	if b.Token() != second {
		t.Errorf("Token() = %v, want %v", b.Token(), second)
	}
}

func TestBackgroundSettleGuardsByIdentity(t *testing.T) {
	t.Parallel()

	// A scheduler that ignores cancellation still must not clear a newer token.
	s := &leakyScheduler{}
	b := NewBackground(s, 0, nil)
	first := b.Arm(waveSlide)
	b.Complete(first)
	second := b.Arm(waveSlide)

	s.fireAll()
	if b.Token() != second {
		t.Errorf("settle for %v cleared %v", first, b.Token())
	}
}

func TestBackgroundClose(t *testing.T) {
	t.Parallel()

	s := NewManualScheduler()
	b := NewBackground(s, 0, nil)
	tok := b.Arm(waveSlide)
	b.Complete(tok)
	b.Close()
	b.Close()

	if s.Pending() != 0 {
		t.Errorf("Close should cancel the pending clear, %d pending", s.Pending())
	}
	if got := b.Arm(waveSlide); !got.IsZero() {
		t.Error("Arm after Close should be a no-op")
	}
	if b.Complete(tok) {
		t.Error("Complete after Close should be a no-op")
	}
}

func TestTokenJSON(t *testing.T) {
	t.Parallel()

	data, _ := Token{}.MarshalJSON()
	if string(data) != "null" {
		t.Errorf("idle token JSON = %s, want null", data)
	}
	data, _ = Token{ID: "a#1"}.MarshalJSON()
	if string(data) != `"a#1"` {
		t.Errorf("token JSON = %s", data)
	}
}

type leakyScheduler struct {
	fns []func()
}

func (l *leakyScheduler) AfterFunc(_ time.Duration, fn func()) func() {
	l.fns = append(l.fns, fn)
	return func() {}
}

func (l *leakyScheduler) fireAll() {
	for _, fn := range l.fns {
		fn()
	}
	l.fns = nil
}
