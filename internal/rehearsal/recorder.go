package rehearsal

import (
	"context"
	"time"

	"github.com/shahbajlive/deck/internal/presenter"
)

// Recorder turns presenter frames into views. A view ends when a frame shows
// a different slide index or the recorder is closed.
type Recorder struct {
	store   *Store
	session int64
	now     func() time.Time

	active  bool
	current View
}

// NewRecorder starts a session for the section.
func NewRecorder(ctx context.Context, store *Store, deckID, sectionID string, now func() time.Time) (*Recorder, error) {
	if now == nil {
		now = time.Now
	}
	id, err := store.Start(ctx, deckID, sectionID, now())
	if err != nil {
		return nil, err
	}
	return &Recorder{store: store, session: id, now: now}, nil
}

// Session returns the session id.
func (r *Recorder) Session() int64 { return r.session }

// Observe records the end of the previous view when f shows a new slide.
func (r *Recorder) Observe(ctx context.Context, f presenter.Frame) error {
	if f.Empty() {
		return nil
	}
	if r.active && r.current.Index == f.Index {
		return nil
	}
	if err := r.flush(ctx); err != nil {
		return err
	}
	r.active = true
	r.current = View{
		SlideID:   f.Slide.ID,
		Index:     f.Index,
		Direction: f.Direction.String(),
		EnteredAt: r.now(),
	}
	return nil
}

func (r *Recorder) flush(ctx context.Context) error {
	if !r.active {
		return nil
	}
	r.active = false
	v := r.current
	v.Duration = r.now().Sub(v.EnteredAt)
	return r.store.Record(ctx, r.session, v)
}

// Close records the last view and finishes the session.
func (r *Recorder) Close(ctx context.Context) error {
	if err := r.flush(ctx); err != nil {
		return err
	}
	return r.store.Finish(ctx, r.session, r.now())
}

// Tracker follows frames across sections, starting a new session whenever
// the mounted section changes. Errors are reported to onErr and never stop
// the presentation.
type Tracker struct {
	store  *Store
	deckID string
	now    func() time.Time
	onErr  func(error)

	section string
	rec     *Recorder
}

// NewTracker creates a tracker for deckID.
func NewTracker(store *Store, deckID string, now func() time.Time, onErr func(error)) *Tracker {
	if onErr == nil {
		onErr = func(error) {}
	}
	return &Tracker{store: store, deckID: deckID, now: now, onErr: onErr}
}

// Frame feeds one presenter frame. An unmounted frame finishes the open
// session, so time spent outside a section is never counted.
func (t *Tracker) Frame(f presenter.Frame) {
	ctx := context.Background()
	if f.Unmounted() {
		t.closeRecorder(ctx)
		t.section = ""
		return
	}
	if t.rec == nil || f.SectionID != t.section {
		t.closeRecorder(ctx)
		rec, err := NewRecorder(ctx, t.store, t.deckID, f.SectionID, t.now)
		if err != nil {
			t.onErr(err)
			return
		}
		t.rec = rec
		t.section = f.SectionID
	}
	if err := t.rec.Observe(ctx, f); err != nil {
		t.onErr(err)
	}
}

func (t *Tracker) closeRecorder(ctx context.Context) {
	if t.rec == nil {
		return
	}
	if err := t.rec.Close(ctx); err != nil {
		t.onErr(err)
	}
	t.rec = nil
}

// Close finishes the open session.
func (t *Tracker) Close() {
	t.closeRecorder(context.Background())
}
