package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListEvents retrieves all browsable events
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	return c.fetchEventList(ctx, "/events/")
}

// GetEvent retrieves a single event by id
func (c *Client) GetEvent(ctx context.Context, id int) (*Event, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/events/%d/", id), nil)
	if err != nil {
		return nil, err
	}

	var event Event
	if err := parseResponse(resp, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// CreateEvent creates a new event. With an attached image the request is
// sent as multipart form data; without one it is plain JSON.
func (c *Client) CreateEvent(ctx context.Context, data CreateEventData) (*Event, error) {
	var resp *http.Response
	var err error

	if data.Image != nil {
		fields := map[string]string{
			"title":       data.Title,
			"description": data.Description,
			"date":        data.Date,
			"location":    data.Location,
			"pricing":     data.Pricing,
			"category":    data.Category,
			"event_type":  data.EventType,
			"language":    data.Language,
			"age_group":   data.AgeGroup,
		}
		resp, err = c.doMultipart(ctx, http.MethodPost, "/events/", fields, "image", data.Image)
	} else {
		resp, err = c.doRequest(ctx, http.MethodPost, "/events/", data)
	}
	if err != nil {
		return nil, err
	}

	var event Event
	if err := parseResponse(resp, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// UpdateEvent replaces an event. Only fields set on data are sent; an
// attached image switches the request to multipart.
func (c *Client) UpdateEvent(ctx context.Context, id int, data UpdateEventData) (*Event, error) {
	path := fmt.Sprintf("/events/%d/", id)

	var resp *http.Response
	var err error

	if data.Image != nil {
		fields := make(map[string]string)
		set := func(name string, v *string) {
			if v != nil {
				fields[name] = *v
			}
		}
		set("title", data.Title)
		set("description", data.Description)
		set("date", data.Date)
		set("location", data.Location)
		set("pricing", data.Pricing)
		set("category", data.Category)
		set("event_type", data.EventType)
		set("language", data.Language)
		set("age_group", data.AgeGroup)

		resp, err = c.doMultipart(ctx, http.MethodPut, path, fields, "image", data.Image)
	} else {
		resp, err = c.doRequest(ctx, http.MethodPut, path, data)
	}
	if err != nil {
		return nil, err
	}

	var event Event
	if err := parseResponse(resp, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// DeleteEvent removes an event by id
func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/events/%d/", id), nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// ToggleLike flips the viewing user's like on an event and reports the
// resulting state
func (c *Client) ToggleLike(ctx context.Context, id int) (*InteractionResponse, error) {
	return c.toggleInteraction(ctx, fmt.Sprintf("/events/%d/like/", id))
}

// ToggleSave flips the viewing user's save on an event and reports the
// resulting state
func (c *Client) ToggleSave(ctx context.Context, id int) (*InteractionResponse, error) {
	return c.toggleInteraction(ctx, fmt.Sprintf("/events/%d/save/", id))
}

func (c *Client) toggleInteraction(ctx context.Context, path string) (*InteractionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}

	var result InteractionResponse
	if err := parseResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// LikedEvents retrieves the events the viewing user has liked
func (c *Client) LikedEvents(ctx context.Context) ([]Event, error) {
	return c.fetchEventList(ctx, "/events/liked/")
}

// SavedEvents retrieves the events the viewing user has saved
func (c *Client) SavedEvents(ctx context.Context) ([]Event, error) {
	return c.fetchEventList(ctx, "/events/saved/")
}

// MyEvents retrieves the events the viewing user created
func (c *Client) MyEvents(ctx context.Context) ([]Event, error) {
	return c.fetchEventList(ctx, "/events/my-events/")
}

func (c *Client) fetchEventList(ctx context.Context, path string) ([]Event, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var events []Event
	if err := parseResponse(resp, &events); err != nil {
		return nil, err
	}

	return events, nil
}
