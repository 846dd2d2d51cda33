package itunes

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kapu/lastfm-discord-bot-go/pkg/errors"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := NewProvider(server.Client(), logger)
	provider.searchURL = server.URL + "/search"
	return provider
}

func TestFindUpscalesArtwork(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("entity"); got != "album" {
			t.Errorf("unexpected entity: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCount": 1, "results": [
			{
				"artistName": "Radiohead",
				"collectionName": "Kid A",
				"artworkUrl100": "https://img.example/kida/100x100bb.jpg"
			}
		]}`))
	})

	coverURL, attempted, err := provider.Find(context.Background(), "Radiohead", "Kid A")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if coverURL != "https://img.example/kida/600x600bb.jpg" {
		t.Fatalf("expected upscaled artwork, got %q", coverURL)
	}
	if len(attempted) != 1 || attempted[0] != "Radiohead Kid A" {
		t.Fatalf("unexpected attempted terms: %v", attempted)
	}
}

func TestFindSkipsResultsWithoutArtwork(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCount": 2, "results": [
			{"artistName": "A", "collectionName": "B", "artworkUrl100": ""},
			{"artistName": "A", "collectionName": "B", "artworkUrl100": "https://img.example/b/100x100bb.jpg"}
		]}`))
	})

	coverURL, _, err := provider.Find(context.Background(), "A", "B")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if coverURL != "https://img.example/b/600x600bb.jpg" {
		t.Fatalf("unexpected cover url: %q", coverURL)
	}
}

func TestFindNoResults(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCount": 0, "results": []}`))
	})

	_, _, err := provider.Find(context.Background(), "nobody", "nothing")
	var noMatch *errors.NoMatchError
	if !stderrors.As(err, &noMatch) {
		t.Fatalf("expected NoMatchError, got %T: %v", err, err)
	}
}

func TestFindServerError(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, _, err := provider.Find(context.Background(), "a", "b"); err == nil {
		t.Fatalf("expected error for 503 response")
	}
}

func TestUpscaleArtworkLeavesOtherURLsAlone(t *testing.T) {
	url := "https://img.example/no-token.jpg"
	if got := UpscaleArtwork(url); got != url {
		t.Fatalf("url without dimension token must pass through, got %q", got)
	}
}
