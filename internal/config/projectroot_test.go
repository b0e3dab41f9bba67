package config

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v6"
)

func TestDiscoverProjectRoot_ClaudeMarker(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, "src", "app")
	nested := filepath.Join(root, "internal", "deep")
	if err := os.MkdirAll(filepath.Join(root, ".claude"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok := DiscoverProjectRoot(nested, home)
	if !ok || got != root {
		t.Fatalf("DiscoverProjectRoot() = %q, %v; want %q, true", got, ok, root)
	}
}

func TestDiscoverProjectRoot_GitWorktree(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, "src", "app")
	nested := filepath.Join(root, "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := git.PlainInit(root, false); err != nil {
		t.Fatal(err)
	}

	got, ok := DiscoverProjectRoot(nested, home)
	if !ok || got != root {
		t.Fatalf("DiscoverProjectRoot() = %q, %v; want %q, true", got, ok, root)
	}
}

func TestDiscoverProjectRoot_NearestMarkerWins(t *testing.T) {
	home := t.TempDir()
	outer := filepath.Join(home, "src", "app")
	inner := filepath.Join(outer, "tools", "cli")
	if err := os.MkdirAll(filepath.Join(inner, ".claude"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := git.PlainInit(outer, false); err != nil {
		t.Fatal(err)
	}

	got, ok := DiscoverProjectRoot(inner, home)
	if !ok || got != inner {
		t.Fatalf("DiscoverProjectRoot() = %q, %v; want the nearer %q", got, ok, inner)
	}
}

func TestDiscoverProjectRoot_StopsBeforeHome(t *testing.T) {
	home := t.TempDir()
	if err := os.MkdirAll(filepath.Join(home, ".claude"), 0o755); err != nil {
		t.Fatal(err)
	}
	work := filepath.Join(home, "scratch")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatal(err)
	}

	if got, ok := DiscoverProjectRoot(work, home); ok {
		t.Fatalf("DiscoverProjectRoot() = %q, want none: the home marker must not count", got)
	}
}

func TestDiscoverProjectRoot_NoMarkers(t *testing.T) {
	home := t.TempDir()
	work := filepath.Join(t.TempDir(), "a", "b")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatal(err)
	}

	if got, ok := DiscoverProjectRoot(work, home); ok {
		t.Fatalf("DiscoverProjectRoot() = %q, want none", got)
	}
}
