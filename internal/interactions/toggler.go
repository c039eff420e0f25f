package interactions

import (
	"context"
	"sync"

	"github.com/gatherly/gatherly/internal/api"
	"github.com/gatherly/gatherly/internal/log"
)

// flags tracks the in-flight state of the two interaction kinds for one
// event
type flags struct {
	like bool
	save bool
}

// Toggler calls the like/save endpoints and tracks in-flight state keyed
// by event id. Concurrent toggles on the same event are allowed and will
// race; the last response to resolve determines the final locally-rendered
// flag. The loading map only brackets each request, it does not serialize
// them.
type Toggler struct {
	mu      sync.Mutex
	client  *api.Client
	logger  *log.Logger
	loading map[int]flags

	// gen invalidates callbacks from calls issued before the owning view
	// was torn down
	gen uint64
}

// NewToggler creates a toggler over the given API client
func NewToggler(client *api.Client) *Toggler {
	return &Toggler{
		client:  client,
		logger:  log.DefaultLogger().With("component", "interactions"),
		loading: make(map[int]flags),
	}
}

// ToggleLike flips the like flag for event on the server. The input event
// is never mutated: on success a shallow copy with IsLiked set from the
// server response is returned and, when the call is still current, passed
// to onUpdate so the owning collection can apply it. On failure the event
// is unchanged and the error is returned.
func (t *Toggler) ToggleLike(ctx context.Context, event api.Event, onUpdate func(api.Event)) (*api.Event, error) {
	gen := t.markLoading(event.ID, true)
	defer t.clearLoading(event.ID, true)

	resp, err := t.client.ToggleLike(ctx, event.ID)
	if err != nil {
		t.logger.WithError(err).Debug("like toggle failed", "event_id", event.ID)
		return nil, err
	}

	updated := event
	updated.IsLiked = resp.Liked

	if onUpdate != nil && t.currentGen() == gen {
		onUpdate(updated)
	}
	return &updated, nil
}

// ToggleSave is the save counterpart of ToggleLike
func (t *Toggler) ToggleSave(ctx context.Context, event api.Event, onUpdate func(api.Event)) (*api.Event, error) {
	gen := t.markLoading(event.ID, false)
	defer t.clearLoading(event.ID, false)

	resp, err := t.client.ToggleSave(ctx, event.ID)
	if err != nil {
		t.logger.WithError(err).Debug("save toggle failed", "event_id", event.ID)
		return nil, err
	}

	updated := event
	updated.IsSaved = resp.Saved

	if onUpdate != nil && t.currentGen() == gen {
		onUpdate(updated)
	}
	return &updated, nil
}

// IsLikeLoading reports whether a like toggle is in flight for the event.
// Unknown ids are simply not loading.
func (t *Toggler) IsLikeLoading(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading[id].like
}

// IsSaveLoading reports whether a save toggle is in flight for the event
func (t *Toggler) IsSaveLoading(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading[id].save
}

// Invalidate drops the callbacks of all calls currently in flight. The
// owning view calls this on teardown so a late-resolving response is
// ignored rather than applied.
func (t *Toggler) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
}

func (t *Toggler) markLoading(id int, like bool) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	f := t.loading[id]
	if like {
		f.like = true
	} else {
		f.save = true
	}
	t.loading[id] = f
	return t.gen
}

func (t *Toggler) clearLoading(id int, like bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f := t.loading[id]
	if like {
		f.like = false
	} else {
		f.save = false
	}
	if !f.like && !f.save {
		delete(t.loading, id)
	} else {
		t.loading[id] = f
	}
}

func (t *Toggler) currentGen() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}
