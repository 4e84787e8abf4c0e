package domain

import (
	"errors"
	"testing"
	"time"
)

func TestResolveString_Simple(t *testing.T) {
	r := NewVarResolver()
	vars := Vars{"base_url": "http://localhost:1874"}

	got, err := r.ResolveString(vars, "{{base_url}}/api/leaderboard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "http://localhost:1874/api/leaderboard" {
		t.Fatalf("unexpected resolution: %q", got)
	}
}

func TestResolveString_MissingVar(t *testing.T) {
	r := NewVarResolver()

	_, err := r.ResolveString(Vars{}, "{{base_url}}/health")
	if err == nil {
		t.Fatal("expected error for missing variable")
	}
	if !IsKind(err, KindMissingVar) {
		t.Fatalf("expected missing_variable kind, got %v", err)
	}
	if !errors.Is(err, ErrMissingVar) {
		t.Fatalf("expected ErrMissingVar in chain, got %v", err)
	}
}

func TestResolveString_Timestamp(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewVarResolver(WithNow(func() time.Time { return fixed }))

	got, err := r.ResolveString(nil, "at={{$timestamp}}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "at=1748779200" {
		t.Fatalf("unexpected timestamp resolution: %q", got)
	}
}

func TestResolveString_NoPlaceholders(t *testing.T) {
	r := NewVarResolver()
	got, err := r.ResolveString(nil, "/health")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/health" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestResolveEndpoint_HeadersAndBody(t *testing.T) {
	r := NewVarResolver()
	vars := Vars{
		"base_url": "http://localhost:1874",
		"token":    "abc",
		"user":     "root",
	}

	spec := EndpointSpec{
		Name:    "login",
		Method:  MethodPost,
		URL:     "{{base_url}}/api/v1/auth/login",
		Headers: Headers{"Authorization": "Bearer {{token}}"},
		JSONBody: map[string]any{
			"username": "{{user}}",
			"nested":   map[string]any{"keep": 42},
		},
	}

	out, err := r.ResolveEndpoint(vars, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.URL != "http://localhost:1874/api/v1/auth/login" {
		t.Fatalf("unexpected URL: %q", out.URL)
	}
	if out.Headers["Authorization"] != "Bearer abc" {
		t.Fatalf("unexpected header: %q", out.Headers["Authorization"])
	}
	if out.JSONBody["username"] != "root" {
		t.Fatalf("unexpected body username: %v", out.JSONBody["username"])
	}
	nested, ok := out.JSONBody["nested"].(map[string]any)
	if !ok || nested["keep"] != 42 {
		t.Fatalf("expected non-string values untouched, got %v", out.JSONBody["nested"])
	}
}

func TestResolveEndpoint_DoesNotMutateSpec(t *testing.T) {
	r := NewVarResolver()
	spec := EndpointSpec{
		URL:      "{{base_url}}/x",
		JSONBody: map[string]any{"u": "{{user}}"},
	}

	_, err := r.ResolveEndpoint(Vars{"base_url": "http://h", "user": "a"}, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.URL != "{{base_url}}/x" {
		t.Fatalf("input spec URL mutated: %q", spec.URL)
	}
	if spec.JSONBody["u"] != "{{user}}" {
		t.Fatalf("input spec body mutated: %v", spec.JSONBody["u"])
	}
}

func TestMerge_OverrideWins(t *testing.T) {
	base := Vars{"a": "1", "b": "2"}
	out := Merge(base, Vars{"b": "3", "c": "4"})

	if out["a"] != "1" || out["b"] != "3" || out["c"] != "4" {
		t.Fatalf("unexpected merge result: %v", out)
	}
	if base["b"] != "2" {
		t.Fatal("merge mutated base map")
	}
}
