package config

import (
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v6"
)

// projectMarker is the directory that marks a project root independently of
// version control.
const projectMarker = ".claude"

// DiscoverProjectRoot walks upward from cwd looking for the nearest directory
// that either carries the project marker or is a git worktree root, whichever
// appears first on the way up. The walk stops before the home directory and
// at the filesystem root; when neither marker is found the second return is
// false.
func DiscoverProjectRoot(cwd, home string) (string, bool) {
	dir := filepath.Clean(cwd)
	home = filepath.Clean(home)
	for {
		if home != "" && dir == home {
			return "", false
		}
		if info, err := os.Stat(filepath.Join(dir, projectMarker)); err == nil && info.IsDir() {
			return dir, true
		}
		if isGitWorktreeRoot(dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func isGitWorktreeRoot(dir string) bool {
	// PlainOpen without dot-git detection only accepts dir itself as the
	// repository, which is exactly the per-directory probe the walk needs.
	_, err := git.PlainOpen(dir)
	return err == nil
}
