// Package shellenv covers the shell side of the configuration surface: the
// process environment snapshot consumed by the layer reader, shell profile
// detection, and the rendered export block written on the user's behalf.
package shellenv

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Snapshot captures the current process environment as a plain map. The core
// resolver only ever sees this snapshot; it never reads the environment
// ambiently, so a snapshot taken once per resolution pass keeps resolution
// pure and testable.
func Snapshot() map[string]string {
	environ := os.Environ()
	snapshot := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, found := strings.Cut(kv, "=")
		if !found || name == "" {
			continue
		}
		snapshot[name] = value
	}
	return snapshot
}

// DetectShell names the user's shell from a snapshot. Empty when unknown.
func DetectShell(snapshot map[string]string) string {
	switch base := filepath.Base(snapshot["SHELL"]); base {
	case "zsh", "bash", "fish":
		return base
	default:
		return ""
	}
}

// ProfilePath returns the profile file the export block should go into for
// the given shell, falling back to ~/.profile for unknown shells.
func ProfilePath(shell, home string) string {
	switch shell {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bashrc")
	case "fish":
		return filepath.Join(home, ".config", "fish", "config.fish")
	default:
		return filepath.Join(home, ".profile")
	}
}

const (
	blockBegin = "# --- portkey gateway (managed by portkey-setup) ---"
	blockEnd   = "# --- end portkey gateway ---"
)

// RenderExports renders values as an export block bracketed by the managed
// markers, one sorted export per line, single-quoted.
func RenderExports(values map[string]string) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(blockBegin + "\n")
	for _, name := range names {
		fmt.Fprintf(&b, "export %s=%s\n", name, singleQuote(values[name]))
	}
	b.WriteString(blockEnd + "\n")
	return b.String()
}

// AppendExports writes the export block into the profile at path, replacing
// any block from a previous run so re-running setup never stacks duplicates.
func AppendExports(path string, values map[string]string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read profile %s: %w", path, err)
	}

	content, _ := StripExports(string(existing))
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += RenderExports(values)

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	if err = os.WriteFile(path, []byte(content), profileMode(path)); err != nil {
		return fmt.Errorf("write profile %s: %w", path, err)
	}
	log.WithField("path", path).Debug("export block written to shell profile")
	return nil
}

// RemoveExports strips a previously written export block from the profile at
// path. Missing profiles and profiles without a block are no-ops.
func RemoveExports(path string) error {
	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read profile %s: %w", path, err)
	}
	content, stripped := StripExports(string(existing))
	if !stripped {
		return nil
	}
	if err = os.WriteFile(path, []byte(content), profileMode(path)); err != nil {
		return fmt.Errorf("write profile %s: %w", path, err)
	}
	return nil
}

// StripExports removes the managed export block from profile content,
// reporting whether a block was found. Content outside the markers is
// returned untouched.
func StripExports(content string) (string, bool) {
	begin := strings.Index(content, blockBegin)
	if begin < 0 {
		return content, false
	}
	rest := content[begin:]
	end := strings.Index(rest, blockEnd)
	if end < 0 {
		// Unterminated block from an interrupted run; drop through to EOF.
		return strings.TrimRight(content[:begin], "\n") + "\n", true
	}
	after := rest[end+len(blockEnd):]
	after = strings.TrimPrefix(after, "\n")
	return content[:begin] + after, true
}

// WriteEnvFile writes values as a dotenv-format file, for users who source an
// env file instead of editing their profile.
func WriteEnvFile(path string, values map[string]string) error {
	content, err := godotenv.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal env file: %w", err)
	}
	if err = os.WriteFile(path, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("write env file %s: %w", path, err)
	}
	return nil
}

func singleQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

func profileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
