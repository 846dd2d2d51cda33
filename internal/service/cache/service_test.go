package cache

import (
	"context"
	"io"
	"log/slog"
	"net"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/valkey-io/valkey-go"
)

type testPayload struct {
	Name string `json:"name"`
}

func newTestCacheService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()

	mini := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(mini.Addr())
	if err != nil {
		t.Fatalf("failed to split address: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:       []string{net.JoinHostPort(host, portStr)},
		DisableCache:      true,
		ForceSingleClient: true,
	})
	if err != nil {
		t.Fatalf("failed to create valkey client: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		t.Fatalf("failed to ping miniredis: %v", err)
	}
	svc := &Service{client: client, logger: logger}

	t.Cleanup(func() {
		_ = svc.Close()
		mini.Close()
	})

	return svc, mini
}

func TestCacheServiceSetGetAndExists(t *testing.T) {
	svc, mini := newTestCacheService(t)
	ctx := context.Background()

	value := testPayload{Name: "value"}
	if err := svc.Set(ctx, "key", value, 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got testPayload
	found, err := svc.Get(ctx, "key", &got)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found || got.Name != "value" {
		t.Fatalf("unexpected value: found=%v %+v", found, got)
	}

	exists, err := svc.Exists(ctx, "key")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected key to exist")
	}

	if err := svc.SetString(ctx, "ttl-key", "v", time.Second); err != nil {
		t.Fatalf("set with ttl failed: %v", err)
	}
	mini.FastForward(2 * time.Second)

	_, found, err = svc.GetString(ctx, "ttl-key")
	if err != nil {
		t.Fatalf("get after expire failed: %v", err)
	}
	if found {
		t.Fatalf("expected key to expire")
	}
}

func TestCacheServiceGetMissingKey(t *testing.T) {
	svc, _ := newTestCacheService(t)

	_, found, err := svc.GetString(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Fatalf("expected missing key to report found=false")
	}
}

func TestCacheServiceMGetAndDel(t *testing.T) {
	svc, _ := newTestCacheService(t)
	ctx := context.Background()

	if err := svc.SetString(ctx, "a", "A", 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := svc.SetString(ctx, "b", "B", 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	values, err := svc.MGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("mget failed: %v", err)
	}
	if values["a"] != "A" || values["b"] != "B" {
		t.Fatalf("unexpected mget result: %+v", values)
	}
	if _, ok := values["missing"]; ok {
		t.Fatalf("missing key must be absent from mget result")
	}

	if err := svc.Del(ctx, "a"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	_, found, err := svc.GetString(ctx, "a")
	if err != nil {
		t.Fatalf("get after del failed: %v", err)
	}
	if found {
		t.Fatalf("expected deleted key to be missing")
	}
}

func TestCacheServiceScan(t *testing.T) {
	svc, _ := newTestCacheService(t)
	ctx := context.Background()

	for _, key := range []string{"user:1", "user:2", "other:1"} {
		if err := svc.SetString(ctx, key, "v", 0); err != nil {
			t.Fatalf("set failed: %v", err)
		}
	}

	var keys []string
	err := svc.Scan(ctx, "user:*", func(key string) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "user:1" || keys[1] != "user:2" {
		t.Fatalf("unexpected scan result: %v", keys)
	}
}
