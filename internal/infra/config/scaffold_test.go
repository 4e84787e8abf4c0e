package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScaffold_CreatesLayout(t *testing.T) {
	tmp := t.TempDir()

	if err := Scaffold(tmp, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, p := range []string{
		ProfileFile,
		secretsFile,
		".gitignore",
		"reports",
		filepath.Join(".predprobe", "logs"),
	} {
		if _, err := os.Stat(filepath.Join(tmp, p)); err != nil {
			t.Fatalf("expected %s to exist: %v", p, err)
		}
	}
}

func TestScaffold_ProfileLoads(t *testing.T) {
	tmp := t.TempDir()
	if err := Scaffold(tmp, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := NewLoader(WithoutDotenv()).LoadProfile(filepath.Join(tmp, ProfileFile))
	if err != nil {
		t.Fatalf("scaffolded profile should load: %v", err)
	}
	if p.Name != "local" {
		t.Fatalf("unexpected profile name: %q", p.Name)
	}
}

func TestScaffold_KeepsExistingFiles(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ProfileFile)
	writeFile(t, path, "predprobe:\n  name: mine\n")

	if err := Scaffold(tmp, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "name: mine") {
		t.Fatal("existing profile was overwritten without force")
	}
}

func TestScaffold_ForceOverwrites(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ProfileFile)
	writeFile(t, path, "predprobe:\n  name: mine\n")

	if err := Scaffold(tmp, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "name: mine") {
		t.Fatal("force should replace the existing profile")
	}
}

func TestScaffold_GitignoreAppendsMissing(t *testing.T) {
	tmp := t.TempDir()
	gi := filepath.Join(tmp, ".gitignore")
	writeFile(t, gi, "node_modules/\nreports/\n")

	if err := Scaffold(tmp, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(gi)
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)

	if !strings.Contains(got, "node_modules/") {
		t.Fatal("existing entries must be kept")
	}
	if strings.Count(got, "reports/") != 1 {
		t.Fatalf("reports/ should not be duplicated:\n%s", got)
	}
	for _, e := range []string{"secrets.local.yaml", ".env", ".predprobe/"} {
		if !strings.Contains(got, e) {
			t.Fatalf("missing gitignore entry %q:\n%s", e, got)
		}
	}
}

func TestScaffold_GitignoreIdempotent(t *testing.T) {
	tmp := t.TempDir()

	if err := Scaffold(tmp, false); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}

	if err := Scaffold(tmp, false); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Fatalf("second scaffold changed .gitignore:\n%s\nvs\n%s", first, second)
	}
}
