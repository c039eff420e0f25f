package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gatherly/gatherly/internal/apierr"
	"github.com/gatherly/gatherly/internal/log"
	"github.com/gatherly/gatherly/internal/token"
)

// authScheme is the token prefix the API expects in the Authorization header
const authScheme = "Token"

// Client is the Gatherly API client. It attaches the stored token to every
// request and normalizes transport and HTTP failures into *apierr.Error.
// Requests are at-most-once: the client never retries.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	tokens *token.Store
	logger *log.Logger
}

// NewClient creates a new API client reading its token from tokens
func NewClient(baseURL string, tokens *token.Store) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		logger: log.DefaultLogger().With("component", "api"),
	}
}

// Tokens returns the token store backing this client
func (c *Client) Tokens() *token.Store {
	return c.tokens
}

// doRequest performs a JSON HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed before reaching the server", "method", method, "path", path)
		return nil, apierr.Network(err)
	}

	return resp, nil
}

// doMultipart performs a multipart/form-data request with authentication.
// The JSON content type is deliberately not set so the transport can attach
// the multipart boundary.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, fileField string, file *Upload) (*http.Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if file != nil {
		part, err := w.CreateFormFile(fileField, file.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("failed to write form file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", w.FormDataContentType())
	c.setCommonHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed before reaching the server", "method", method, "path", path)
		return nil, apierr.Network(err)
	}

	return resp, nil
}

// setCommonHeaders attaches the auth token (when present) and a request ID
func (c *Client) setCommonHeaders(req *http.Request) {
	if tok, ok := c.tokens.Get(); ok {
		req.Header.Set("Authorization", authScheme+" "+tok)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
}

// parseResponse decodes the response body into target, converting non-2xx
// statuses into *apierr.Error with any server-supplied message and
// field-keyed validation errors
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return errorFromBody(resp.StatusCode, body)
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// errorFromBody builds a typed error from an error response body. The API
// reports a top-level "detail" message, field-keyed validation lists, or
// sometimes both.
func errorFromBody(status int, body []byte) *apierr.Error {
	apiErr := apierr.New(status, fmt.Sprintf("request failed with status %d", status))

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	fields := make(map[string][]string)
	for key, raw := range payload {
		if key == "detail" {
			var detail string
			if err := json.Unmarshal(raw, &detail); err == nil && detail != "" {
				apiErr.Message = detail
			}
			continue
		}

		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			fields[key] = list
			continue
		}

		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			fields[key] = []string{single}
		}
	}

	if len(fields) > 0 {
		apiErr.WithFields(fields)
	}
	return apiErr
}
