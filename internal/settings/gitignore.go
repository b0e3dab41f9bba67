package settings

import (
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v6"
	log "github.com/sirupsen/logrus"
)

// localSettingsPattern is the gitignore entry covering the personal project
// settings file.
const localSettingsPattern = ".claude/settings.local.json"

// EnsureLocalSettingsIgnored makes sure the project-local settings file stays
// out of version control: when root is a git worktree and .gitignore does not
// already cover it, the pattern is appended. Returns whether an entry was
// added. A root that is not a git worktree is a no-op.
func EnsureLocalSettingsIgnored(root string) (bool, error) {
	if _, err := git.PlainOpen(root); err != nil {
		return false, nil
	}

	path := filepath.Join(root, ".gitignore")
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if gitignoreCovers(string(existing)) {
		return false, nil
	}

	content := string(existing)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += localSettingsPattern + "\n"
	if err = os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	log.WithField("path", path).Debug("added local settings file to gitignore")
	return true, nil
}

func gitignoreCovers(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch line {
		case localSettingsPattern,
			"/" + localSettingsPattern,
			"settings.local.json",
			"*.local.json",
			".claude/":
			return true
		}
	}
	return false
}
