package command

import (
	"io"
	"log/slog"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := NewRegistry(logger)

	deps := &Dependencies{Logger: logger}
	countdown := NewCountdownCommand(deps)
	reg.Register(countdown)
	reg.RegisterComponent(countdown)

	if _, ok := reg.Get("countdown"); !ok {
		t.Fatalf("expected countdown command to be registered")
	}
	if _, ok := reg.Get("missing"); ok {
		t.Fatalf("unexpected hit for unknown command")
	}

	if _, ok := reg.GetComponent("countdown:4"); !ok {
		t.Fatalf("expected component handler for countdown prefix")
	}
	if _, ok := reg.GetComponent("other:4"); ok {
		t.Fatalf("unexpected handler for unknown prefix")
	}
	// 접두사 전체 매치만 허용한다
	if _, ok := reg.GetComponent("countdownx:4"); ok {
		t.Fatalf("prefix match must be exact up to the separator")
	}
}

func TestRegistryDefinitions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := NewRegistry(logger)
	deps := &Dependencies{Logger: logger}

	reg.Register(NewCountdownCommand(deps), NewHelpCommand(reg))

	defs := reg.Definitions()
	if len(defs) != 2 {
		t.Fatalf("unexpected definition count: %d", len(defs))
	}
}
