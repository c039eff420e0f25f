package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gatherly/gatherly/internal/apierr"
	"github.com/gatherly/gatherly/internal/token"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := token.NewStore(filepath.Join(t.TempDir(), "token"))
	return NewClient(server.URL, tokens), server
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Event{})
	}))

	// Anonymous: no header at all.
	if _, err := client.ListEvents(context.Background()); err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("anonymous request should carry no Authorization header, got %q", gotAuth)
	}

	// Authenticated: scheme-prefixed token.
	if err := client.Tokens().Set("tok123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := client.ListEvents(context.Background()); err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if gotAuth != "Token tok123" {
		t.Errorf("expected 'Token tok123', got %q", gotAuth)
	}
}

func TestRequestIDHeader(t *testing.T) {
	ids := make(map[string]bool)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			t.Error("X-Request-ID header missing")
		}
		ids[id] = true
		json.NewEncoder(w).Encode([]Event{})
	}))

	for i := 0; i < 3; i++ {
		if _, err := client.ListEvents(context.Background()); err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
	}
	if len(ids) != 3 {
		t.Errorf("expected 3 distinct request ids, got %d", len(ids))
	}
}

func TestLoginPersistsToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var creds LoginCredentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("failed to decode credentials: %v", err)
		}
		if creds.Email != "a@b.com" {
			t.Errorf("unexpected email: %s", creds.Email)
		}
		json.NewEncoder(w).Encode(AuthResponse{Key: "tok123"})
	}))

	resp, err := client.Login(context.Background(), LoginCredentials{Email: "a@b.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Key != "tok123" {
		t.Errorf("unexpected key: %s", resp.Key)
	}

	stored, ok := client.Tokens().Get()
	if !ok || stored != "tok123" {
		t.Errorf("token store should hold tok123, got %q (ok=%v)", stored, ok)
	}
}

func TestRegisterPersistsToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(AuthResponse{Key: "fresh"})
	}))

	if _, err := client.Register(context.Background(), RegisterData{Email: "a@b.com"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if stored, _ := client.Tokens().Get(); stored != "fresh" {
		t.Errorf("token store should hold the registration key, got %q", stored)
	}
}

func TestErrorBodyParsing(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"validation failed","email":["already in use"],"password":["too short"]}`))
	}))

	_, err := client.Login(context.Background(), LoginCredentials{})
	if err == nil {
		t.Fatal("expected an error")
	}

	apiErr := apierr.FromError(err)
	if apiErr == nil {
		t.Fatalf("expected a typed error, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.Status)
	}
	if apiErr.Message != "validation failed" {
		t.Errorf("expected server detail as message, got %q", apiErr.Message)
	}
	if len(apiErr.Fields["email"]) != 1 || apiErr.Fields["email"][0] != "already in use" {
		t.Errorf("field errors not parsed: %v", apiErr.Fields)
	}
}

func TestErrorWithoutBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListEvents(context.Background())
	apiErr := apierr.FromError(err)
	if apiErr == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", apiErr.Status)
	}
	if !strings.Contains(apiErr.Message, "500") {
		t.Errorf("generic message should mention the status: %q", apiErr.Message)
	}
}

func TestTransportFailure(t *testing.T) {
	tokens := token.NewStore(filepath.Join(t.TempDir(), "token"))
	// Nothing listens here.
	client := NewClient("http://127.0.0.1:1", tokens)

	_, err := client.ListEvents(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !apierr.IsNetwork(err) {
		t.Errorf("transport failure should be a status-0 typed error, got %v", err)
	}
}

func TestDeleteEventNoContent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method: %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeleteEvent(context.Background(), 7); err != nil {
		t.Errorf("DeleteEvent should accept 204 responses, got %v", err)
	}
}
