package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestOpError_Message(t *testing.T) {
	e := &OpError{
		Op:   "config.load_profile",
		Kind: KindNotFound,
		Path: "/tmp/predprobe.yaml",
		Err:  errors.New("no such file"),
	}

	got := e.Error()
	want := "config.load_profile: not_found (path=/tmp/predprobe.yaml): no such file"
	if got != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", got, want)
	}
}

func TestOpError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	e := &OpError{Op: "x", Kind: KindExecution, Err: inner}

	if !errors.Is(e, inner) {
		t.Fatal("expected errors.Is to reach the wrapped error")
	}
}

func TestIsKind(t *testing.T) {
	e := fmt.Errorf("outer: %w", &OpError{Op: "x", Kind: KindInvalidProfile})

	if !IsKind(e, KindInvalidProfile) {
		t.Fatal("expected IsKind to match through wrapping")
	}
	if IsKind(e, KindNotFound) {
		t.Fatal("expected IsKind to reject other kinds")
	}
	if IsKind(errors.New("plain"), KindNotFound) {
		t.Fatal("expected IsKind to reject non-OpError")
	}
}
