package presenter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shahbajlive/deck/internal/deck"
)

// DefaultSettleDelay is the grace period between a background animation
// reporting completion and its token being cleared.
const DefaultSettleDelay = 900 * time.Millisecond

// Token identifies one background animation instance. The zero Token means
// no animation is pending or playing.
type Token struct {
	ID string
}

// IsZero reports whether the token is the idle token.
func (t Token) IsZero() bool { return t.ID == "" }

func (t Token) String() string {
	if t.IsZero() {
		return "<idle>"
	}
	return t.ID
}

// MarshalJSON encodes the idle token as null.
func (t Token) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.ID)
}

// BackgroundState is idle or armed.
type BackgroundState int

const (
	BackgroundIdle BackgroundState = iota
	BackgroundArmed
)

func (s BackgroundState) String() string {
	if s == BackgroundArmed {
		return "armed"
	}
	return "idle"
}

// Background arms a fresh token whenever navigation lands on a slide that
// declares a background animation, and clears it a settle delay after the
// renderer reports that exact token complete.
type Background struct {
	sched  Scheduler
	settle time.Duration
	logger *slog.Logger

	seq   uint64
	token Token
	kind  string

	clearing    Token
	cancelClear func()
	closed      bool
}

// NewBackground creates an idle driver. A non-positive settle uses
// DefaultSettleDelay.
func NewBackground(sched Scheduler, settle time.Duration, logger *slog.Logger) *Background {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Background{sched: sched, settle: settle, logger: logger}
}

// Arm reacts to a completed navigation onto slide. It returns the live token,
// which is zero when the slide has no background animation.
func (b *Background) Arm(slide deck.Slide) Token {
	if b.closed {
		return Token{}
	}
	b.stopClear()

	if !slide.HasBackground() {
		if !b.token.IsZero() {
			b.logger.Debug("background animation dropped", "token", b.token.ID, "slide", slide.ID)
		}
		b.token, b.kind = Token{}, ""
		return b.token
	}

	b.seq++
	prev := b.token
	b.token = Token{ID: fmt.Sprintf("%s#%d", slide.ID, b.seq)}
	b.kind = slide.BackgroundAnimation.Type
	b.logger.Debug("background animation armed",
		"token", b.token.ID,
		"replaces", prev.String(),
		"type", b.kind,
	)
	return b.token
}

// Complete is the renderer's signal that the animation for tok finished. The
// token is cleared after the settle delay unless it is superseded first.
// Signals for tokens that are no longer live are ignored.
func (b *Background) Complete(tok Token) bool {
	if b.closed || tok.IsZero() || tok != b.token {
		b.logger.Debug("stale background completion ignored", "token", tok.String(), "live", b.token.String())
		return false
	}
	if b.clearing == tok {
		return false
	}
	b.stopClear()
	b.clearing = tok
	b.cancelClear = b.sched.AfterFunc(b.settle, func() { b.settleToken(tok) })
	return true
}

func (b *Background) settleToken(tok Token) {
	if b.closed || b.token != tok {
		return
	}
	b.logger.Debug("background animation settled", "token", tok.ID)
	b.token, b.kind = Token{}, ""
	b.clearing, b.cancelClear = Token{}, nil
}

func (b *Background) stopClear() {
	if b.cancelClear != nil {
		b.cancelClear()
	}
	b.clearing, b.cancelClear = Token{}, nil
}

// Token returns the live token.
func (b *Background) Token() Token { return b.token }

// Type returns the animation type of the live token.
func (b *Background) Type() string { return b.kind }

// State reports idle or armed.
func (b *Background) State() BackgroundState {
	if b.token.IsZero() {
		return BackgroundIdle
	}
	return BackgroundArmed
}

// SettleDelay returns the configured settle delay.
func (b *Background) SettleDelay() time.Duration { return b.settle }

// Close cancels any pending clear. The driver ignores all later calls.
func (b *Background) Close() {
	if b.closed {
		return
	}
	b.stopClear()
	b.closed = true
}
