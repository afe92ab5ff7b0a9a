package health

import (
	"context"
	"errors"
	"testing"
)

func TestRegistry_RunAll(t *testing.T) {
	r := NewRegistry()
	r.Register("ok", func(context.Context) error { return nil })
	r.Register("broken", func(context.Context) error { return errors.New("down") })

	results := r.RunAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Name != "ok" || results[0].Status != StatusHealthy {
		t.Fatalf("results[0] = %+v", results[0])
	}
	if results[1].Name != "broken" || results[1].Status != StatusUnhealthy {
		t.Fatalf("results[1] = %+v", results[1])
	}
	if results[1].Error != "down" {
		t.Fatalf("error = %q, want down", results[1].Error)
	}
	if Healthy(results) {
		t.Fatal("Healthy must be false with a failing check")
	}
}

func TestRegistry_ReplaceKeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("a", func(context.Context) error { return errors.New("old") })
	r.Register("b", func(context.Context) error { return nil })
	r.Register("a", func(context.Context) error { return nil })

	results := r.RunAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Name != "a" || results[0].Status != StatusHealthy {
		t.Fatalf("replacement not applied: %+v", results[0])
	}
	if !Healthy(results) {
		t.Fatal("expected all healthy")
	}
}

func TestHealthy_EmptyIsHealthy(t *testing.T) {
	if !Healthy(nil) {
		t.Fatal("no checks means healthy")
	}
}
