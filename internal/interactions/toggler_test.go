package interactions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gatherly/gatherly/internal/api"
	"github.com/gatherly/gatherly/internal/token"
)

func newTestToggler(t *testing.T, handler http.Handler) *Toggler {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := token.NewStore(filepath.Join(t.TempDir(), "token"))
	return NewToggler(api.NewClient(server.URL, tokens))
}

func likeHandler(liked bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.InteractionResponse{Message: "ok", Liked: liked})
	})
}

func TestToggleLikeReturnsCopy(t *testing.T) {
	toggler := newTestToggler(t, likeHandler(true))

	original := api.Event{ID: 5, Title: "Jazz Night", IsLiked: false}
	updated, err := toggler.ToggleLike(context.Background(), original, nil)
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}

	if original.IsLiked {
		t.Error("ToggleLike must never mutate the event passed into it")
	}
	if !updated.IsLiked {
		t.Error("the returned copy should carry the server's liked flag")
	}

	// The copy differs only in is_liked.
	check := *updated
	check.IsLiked = original.IsLiked
	if check != original {
		t.Errorf("returned event differs beyond is_liked: %+v vs %+v", updated, original)
	}
}

func TestToggleLikeInvokesCallback(t *testing.T) {
	toggler := newTestToggler(t, likeHandler(true))

	var got *api.Event
	_, err := toggler.ToggleLike(context.Background(), api.Event{ID: 5}, func(ev api.Event) {
		got = &ev
	})
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if got == nil || !got.IsLiked {
		t.Errorf("callback should receive the updated copy, got %+v", got)
	}
}

func TestToggleLikeFailure(t *testing.T) {
	toggler := newTestToggler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Authentication credentials were not provided."}`))
	}))

	called := false
	_, err := toggler.ToggleLike(context.Background(), api.Event{ID: 5}, func(api.Event) {
		called = true
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if called {
		t.Error("the callback must not fire on failure")
	}
	if toggler.IsLikeLoading(5) {
		t.Error("the loading flag must be cleared even on failure")
	}
}

func TestLoadingFlagBracketsRequest(t *testing.T) {
	requestEntered := make(chan struct{})
	releaseRequest := make(chan struct{})

	toggler := newTestToggler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(requestEntered)
		<-releaseRequest
		json.NewEncoder(w).Encode(api.InteractionResponse{Liked: true})
	}))

	if toggler.IsLikeLoading(5) {
		t.Fatal("loading must be false before the toggle is invoked")
	}
	if toggler.IsSaveLoading(5) || toggler.IsLikeLoading(99) {
		t.Fatal("unknown ids and untouched kinds default to false")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		toggler.ToggleLike(context.Background(), api.Event{ID: 5}, nil)
	}()

	<-requestEntered
	if !toggler.IsLikeLoading(5) {
		t.Error("loading must be true while the request is in flight")
	}
	if toggler.IsSaveLoading(5) {
		t.Error("a like toggle must not mark the save flag")
	}

	close(releaseRequest)
	<-done
	if toggler.IsLikeLoading(5) {
		t.Error("loading must be false after resolution")
	}
}

func TestOverlappingtogglesRace(t *testing.T) {
	// The server alternates liked true/false; two overlapping toggles on
	// the same event race, and the final flag is whichever response
	// resolved last. The race itself is asserted here, not a winner.
	var mu sync.Mutex
	liked := false
	toggler := newTestToggler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		liked = !liked
		resp := api.InteractionResponse{Liked: liked}
		mu.Unlock()
		json.NewEncoder(w).Encode(resp)
	}))

	var cbMu sync.Mutex
	var last api.Event
	onUpdate := func(ev api.Event) {
		cbMu.Lock()
		last = ev
		cbMu.Unlock()
	}

	var wg sync.WaitGroup
	results := make([]*api.Event, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ev, err := toggler.ToggleLike(context.Background(), api.Event{ID: 5}, onUpdate)
			if err != nil {
				t.Errorf("toggle %d failed: %v", i, err)
				return
			}
			results[i] = ev
		}(i)
	}
	wg.Wait()

	// Both calls completed and one of their results is the locally
	// rendered state; which one is deliberately unspecified.
	if results[0] == nil || results[1] == nil {
		t.Fatal("both toggles should resolve")
	}
	if last.ID != 5 {
		t.Error("the last-resolving callback determines the rendered event")
	}
	if toggler.IsLikeLoading(5) {
		t.Error("no loading flag may remain after both resolve")
	}
}

func TestInvalidateDropsLateCallbacks(t *testing.T) {
	requestEntered := make(chan struct{})
	releaseRequest := make(chan struct{})

	toggler := newTestToggler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(requestEntered)
		<-releaseRequest
		json.NewEncoder(w).Encode(api.InteractionResponse{Liked: true})
	}))

	called := false
	done := make(chan struct{})
	go func() {
		defer close(done)
		toggler.ToggleLike(context.Background(), api.Event{ID: 5}, func(api.Event) {
			called = true
		})
	}()

	<-requestEntered
	// The owning view is torn down while the request is still in flight.
	toggler.Invalidate()
	close(releaseRequest)
	<-done

	if called {
		t.Error("a response resolving after teardown must be ignored, not applied")
	}
}

func TestToggleSave(t *testing.T) {
	toggler := newTestToggler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.InteractionResponse{Message: "saved", Saved: true})
	}))

	original := api.Event{ID: 8, IsSaved: false}
	updated, err := toggler.ToggleSave(context.Background(), original, nil)
	if err != nil {
		t.Fatalf("ToggleSave failed: %v", err)
	}
	if original.IsSaved {
		t.Error("ToggleSave must never mutate its input")
	}
	if !updated.IsSaved {
		t.Error("the returned copy should carry the server's saved flag")
	}
}
