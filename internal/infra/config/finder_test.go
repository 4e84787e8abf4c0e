package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Yumouqianxia/predprobe/internal/domain"
)

func TestFindProfile_SameDir(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, ProfileFile)
	writeFile(t, want, minimalProfile)

	got, err := NewFinder().FindProfile(tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFindProfile_WalksUp(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, ProfileFile)
	writeFile(t, want, minimalProfile)

	nested := filepath.Join(tmp, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := NewFinder().FindProfile(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFindProfile_NearestWins(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, ProfileFile), minimalProfile)

	nested := filepath.Join(tmp, "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(nested, ProfileFile)
	writeFile(t, want, minimalProfile)

	got, err := NewFinder().FindProfile(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFindProfile_FilePathStart(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, ProfileFile)
	writeFile(t, want, minimalProfile)

	other := filepath.Join(tmp, "notes.txt")
	writeFile(t, other, "x")

	got, err := NewFinder().FindProfile(other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFindProfile_NotFound(t *testing.T) {
	_, err := NewFinder().FindProfile(t.TempDir())
	if err == nil {
		t.Fatal("expected error when no profile exists")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found kind, got %v", err)
	}
}

func TestFindProfile_EmptyStart(t *testing.T) {
	_, err := NewFinder().FindProfile("")
	if err == nil {
		t.Fatal("expected error for empty start dir")
	}
	if !domain.IsKind(err, domain.KindInvalidProfile) {
		t.Fatalf("expected invalid_profile kind, got %v", err)
	}
}
