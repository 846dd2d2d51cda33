package registry

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	if dest != nil {
		if err := json.Unmarshal([]byte(raw), dest); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = string(raw)
	return nil
}

func (f *fakeStore) MGet(_ context.Context, keys []string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	for _, key := range keys {
		if raw, ok := f.data[key]; ok {
			result[key] = raw
		}
	}
	return result, nil
}

func (f *fakeStore) Scan(_ context.Context, pattern string, fn func(key string) error) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			if err := fn(key); err != nil {
				return err
			}
		}
	}
	return nil
}

func newTestRegistry() (*Service, *fakeStore) {
	store := newFakeStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, logger), store
}

func TestRegisterAndLookup(t *testing.T) {
	svc, _ := newTestRegistry()
	ctx := context.Background()

	if err := svc.Register(ctx, "discord-1", "lastfm-user"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, found, err := svc.Lookup(ctx, "discord-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !found {
		t.Fatalf("expected user to be found")
	}
	if user.LastfmUser != "lastfm-user" {
		t.Fatalf("unexpected mapping: %+v", user)
	}
}

func TestRegisterOverwritesExisting(t *testing.T) {
	svc, _ := newTestRegistry()
	ctx := context.Background()

	if err := svc.Register(ctx, "discord-1", "old-name"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.Register(ctx, "discord-1", "new-name"); err != nil {
		t.Fatalf("re-register failed: %v", err)
	}

	user, found, err := svc.Lookup(ctx, "discord-1")
	if err != nil || !found {
		t.Fatalf("lookup failed: found=%v err=%v", found, err)
	}
	if user.LastfmUser != "new-name" {
		t.Fatalf("expected overwrite, got %q", user.LastfmUser)
	}
}

func TestRegisterRejectsEmptyUsername(t *testing.T) {
	svc, _ := newTestRegistry()

	if err := svc.Register(context.Background(), "discord-1", "   "); err == nil {
		t.Fatalf("expected validation error for blank username")
	}
}

func TestLookupUnregisteredUser(t *testing.T) {
	svc, _ := newTestRegistry()

	_, found, err := svc.Lookup(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found {
		t.Fatalf("expected unregistered user to be not found")
	}
}

func TestAllReturnsSortedMappings(t *testing.T) {
	svc, store := newTestRegistry()
	ctx := context.Background()

	for _, pair := range [][2]string{{"b", "user-b"}, {"a", "user-a"}} {
		if err := svc.Register(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	}
	store.data["unrelated:key"] = "ignored"

	users, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("unexpected count: %d", len(users))
	}
	if users[0].DiscordID != "a" || users[1].DiscordID != "b" {
		t.Fatalf("expected sorted order, got %+v", users)
	}
}
