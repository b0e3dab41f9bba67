package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// WriteEnvValues sets env.<name> for every entry of values in the settings
// document at path, creating the document when it does not exist. Keys
// outside the env block are preserved. Keys are written in sorted order so
// repeated runs produce identical documents.
func WriteEnvValues(path string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	doc, ok := ReadDocument(path)
	if !ok {
		doc = []byte("{}\n")
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var err error
	for _, name := range names {
		doc, err = sjson.SetBytes(doc, "env."+name, values[name])
		if err != nil {
			return fmt.Errorf("set env.%s in %s: %w", name, path, err)
		}
	}
	return writeAtomic(path, doc)
}

// RemoveEnvValues deletes env.<name> for every listed name. A missing
// document, and names the document does not define, are no-ops.
func RemoveEnvValues(path string, names []string) error {
	doc, ok := ReadDocument(path)
	if !ok {
		return nil
	}

	changed := false
	var err error
	for _, name := range names {
		if !gjson.GetBytes(doc, "env."+name).Exists() {
			continue
		}
		doc, err = sjson.DeleteBytes(doc, "env."+name)
		if err != nil {
			return fmt.Errorf("delete env.%s in %s: %w", name, path, err)
		}
		changed = true
	}
	if !changed {
		return nil
	}
	return writeAtomic(path, doc)
}

// writeAtomic replaces path via a temp file + rename. Settings documents may
// carry tokens, so they are written 0600.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	log.WithField("path", path).Debug("settings document updated")
	return nil
}
