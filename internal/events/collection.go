package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/gatherly/gatherly/internal/api"
	"github.com/gatherly/gatherly/internal/apierr"
	"github.com/gatherly/gatherly/internal/log"
)

// Collection holds an ephemeral, ordered copy of a server-owned event
// list. Mutations after a successful call are minimal and local — prepend
// on create, replace-by-id on update, filter-out on delete — rather than
// refetching the whole list. Errors are translated into one
// human-readable string kept as collection state.
type Collection struct {
	mu     sync.RWMutex
	client *api.Client
	source func(ctx context.Context) ([]api.Event, error)
	logger *log.Logger

	events  []api.Event
	loading bool
	errMsg  string
}

// NewCollection creates a collection over the public event listing
func NewCollection(client *api.Client) *Collection {
	return newCollection(client, "events", client.ListEvents)
}

// NewLikedCollection creates a collection over the viewing user's liked
// events
func NewLikedCollection(client *api.Client) *Collection {
	return newCollection(client, "liked-events", client.LikedEvents)
}

// NewSavedCollection creates a collection over the viewing user's saved
// events
func NewSavedCollection(client *api.Client) *Collection {
	return newCollection(client, "saved-events", client.SavedEvents)
}

// NewMyCollection creates a collection over the events the viewing user
// created
func NewMyCollection(client *api.Client) *Collection {
	return newCollection(client, "my-events", client.MyEvents)
}

func newCollection(client *api.Client, name string, source func(ctx context.Context) ([]api.Event, error)) *Collection {
	return &Collection{
		client: client,
		source: source,
		logger: log.DefaultLogger().With("component", name),
	}
}

// Fetch replaces the local copy with the server's current list
func (c *Collection) Fetch(ctx context.Context) {
	c.setLoading(true)
	defer c.setLoading(false)

	events, err := c.source(ctx)
	if err != nil {
		c.setError(fmt.Sprintf("failed to fetch events: %s", errText(err)))
		return
	}

	c.mu.Lock()
	c.events = events
	c.errMsg = ""
	c.mu.Unlock()
}

// Create creates an event and prepends it to the local copy on success
func (c *Collection) Create(ctx context.Context, data api.CreateEventData) (*api.Event, error) {
	event, err := c.client.CreateEvent(ctx, data)
	if err != nil {
		c.setError(fmt.Sprintf("failed to create event: %s", errText(err)))
		return nil, err
	}

	c.mu.Lock()
	c.events = append([]api.Event{*event}, c.events...)
	c.errMsg = ""
	c.mu.Unlock()
	return event, nil
}

// Update updates an event and replaces it by id in the local copy on
// success
func (c *Collection) Update(ctx context.Context, id int, data api.UpdateEventData) (*api.Event, error) {
	event, err := c.client.UpdateEvent(ctx, id, data)
	if err != nil {
		c.setError(fmt.Sprintf("failed to update event: %s", errText(err)))
		return nil, err
	}

	c.ApplyUpdate(*event)
	return event, nil
}

// Delete deletes an event and filters it out of the local copy on success
func (c *Collection) Delete(ctx context.Context, id int) bool {
	if err := c.client.DeleteEvent(ctx, id); err != nil {
		c.setError(fmt.Sprintf("failed to delete event: %s", errText(err)))
		return false
	}

	c.RemoveLocal(id)
	return true
}

// ApplyUpdate replaces the matching event in the local copy. Interaction
// callbacks use this to push the server's like/save state into the list.
func (c *Collection) ApplyUpdate(event api.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.events {
		if c.events[i].ID == event.ID {
			c.events[i] = event
			break
		}
	}
	c.errMsg = ""
}

// RemoveLocal drops the event with the given id from the local copy
// without a server call. Liked/saved listings use this when an event is
// untoggled.
func (c *Collection) RemoveLocal(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.events[:0]
	for _, ev := range c.events {
		if ev.ID != id {
			kept = append(kept, ev)
		}
	}
	c.events = kept
}

// Events returns a copy of the local list
func (c *Collection) Events() []api.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]api.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Get returns the event with the given id from the local copy
func (c *Collection) Get(id int) (api.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, ev := range c.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return api.Event{}, false
}

// Len returns the size of the local list
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}

// Loading reports whether a fetch is in progress
func (c *Collection) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the display message of the last failed call, empty after a
// success
func (c *Collection) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

func (c *Collection) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	if v {
		c.errMsg = ""
	}
	c.mu.Unlock()
}

func (c *Collection) setError(msg string) {
	c.logger.Warn(msg)
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

// Detail fetches one event at a time. It keeps no cache: every Fetch hits
// the server, and a new Detail starts empty.
type Detail struct {
	mu     sync.RWMutex
	client *api.Client

	event   *api.Event
	loading bool
	errMsg  string
}

// NewDetail creates a single-event fetcher
func NewDetail(client *api.Client) *Detail {
	return &Detail{client: client}
}

// Fetch loads the event with the given id, replacing whatever was shown
// before
func (d *Detail) Fetch(ctx context.Context, id int) {
	d.mu.Lock()
	d.loading = true
	d.errMsg = ""
	d.mu.Unlock()

	event, err := d.client.GetEvent(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		d.errMsg = fmt.Sprintf("failed to fetch event: %s", errText(err))
		return
	}
	d.event = event
}

// Event returns the loaded event, or nil
func (d *Detail) Event() *api.Event {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.event
}

// ApplyUpdate replaces the loaded event when the ids match
func (d *Detail) ApplyUpdate(event api.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.event != nil && d.event.ID == event.ID {
		d.event = &event
	}
}

// Loading reports whether a fetch is in progress
func (d *Detail) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

// Err returns the display message of the last failed fetch
func (d *Detail) Err() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.errMsg
}

func errText(err error) string {
	if apiErr := apierr.FromError(err); apiErr != nil {
		return apiErr.Flatten()
	}
	return err.Error()
}
