package lastfm

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
	client := NewClient("test-key", server.Client(), logger)
	client.baseURL = server.URL + "/2.0/"
	scraper := NewScraper(server.Client(), logger)
	return NewProvider(client, scraper, logger)
}

func TestProviderFindDirectHit(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"album": {
			"name": "Kid A", "artist": "Radiohead",
			"url": "https://www.last.fm/music/Radiohead/Kid+A",
			"image": [{"#text": "https://img.example/kida.jpg", "size": "extralarge"}]
		}}`))
	})

	coverURL, attempted, err := provider.Find(context.Background(), "Radiohead", "Kid A")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if coverURL != "https://img.example/kida.jpg" {
		t.Fatalf("unexpected cover url: %q", coverURL)
	}
	if len(attempted) != 1 {
		t.Fatalf("expected a single attempt, got %v", attempted)
	}
}

func TestProviderFindDiacriticFallback(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// 원 표기는 매치 없음, 다이어크리틱 제거형만 매치
		if r.URL.Query().Get("artist") == "Bjork" {
			_, _ = w.Write([]byte(`{"album": {
				"name": "Post", "artist": "Bjork",
				"url": "https://www.last.fm/music/Bjork/Post",
				"image": [{"#text": "https://img.example/post.jpg", "size": "extralarge"}]
			}}`))
			return
		}
		_, _ = w.Write([]byte(`{"error": 6, "message": "Album not found"}`))
	})

	coverURL, attempted, err := provider.Find(context.Background(), "Björk", "Post")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if coverURL != "https://img.example/post.jpg" {
		t.Fatalf("unexpected cover url: %q", coverURL)
	}
	if len(attempted) != 2 {
		t.Fatalf("expected both forms attempted, got %v", attempted)
	}
	if attempted[0] != "Björk - Post" || attempted[1] != "Bjork - Post" {
		t.Fatalf("unexpected attempted forms: %v", attempted)
	}
}

func TestProviderFindReportsAllAttempts(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": 6, "message": "Album not found"}`))
	})

	_, attempted, err := provider.Find(context.Background(), "Sigur Rós", "Ágætis byrjun")
	if err == nil {
		t.Fatalf("expected no-match error")
	}
	var noMatch *errors.NoMatchError
	if !stderrors.As(err, &noMatch) {
		t.Fatalf("expected NoMatchError, got %T: %v", err, err)
	}
	if len(attempted) != 2 || len(noMatch.Attempted) != 2 {
		t.Fatalf("expected both forms recorded: attempted=%v err=%v", attempted, noMatch.Attempted)
	}
}

func TestProviderFindScrapesPageWhenAPIImageMissing(t *testing.T) {
	var mux http.ServeMux
	server := httptest.NewServer(&mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/2.0/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"album": {
			"name": "Obscure", "artist": "Someone",
			"url": "` + server.URL + `/music/Someone/Obscure",
			"image": []
		}}`))
	})
	mux.HandleFunc("/music/Someone/Obscure", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<meta property="og:image" content="https://img.example/scraped.jpg"/>
		</head><body></body></html>`))
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient("test-key", server.Client(), logger)
	client.baseURL = server.URL + "/2.0/"
	provider := NewProvider(client, NewScraper(server.Client(), logger), logger)

	coverURL, _, err := provider.Find(context.Background(), "Someone", "Obscure")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if coverURL != "https://img.example/scraped.jpg" {
		t.Fatalf("expected scraped og:image, got %q", coverURL)
	}
}
