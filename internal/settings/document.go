// Package settings reads and writes the agent CLI's JSON settings documents.
// Reads are lenient: a missing or malformed file is an absent document, never
// an error. Writes are surgical: only the env block is touched, every other
// key in the document is preserved, and the file is replaced atomically.
package settings

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// ReadDocument loads a settings document. The second return is false when the
// file does not exist, cannot be read, or is not valid JSON.
func ReadDocument(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("path", path).Debug("settings document unreadable")
		}
		return nil, false
	}
	if !gjson.ValidBytes(data) {
		log.WithField("path", path).Debug("settings document is not valid JSON, treating as absent")
		return nil, false
	}
	return data, true
}

// EnvValue looks up env.<name> in a settings document. Non-string scalars are
// rendered in their string form, matching how the agent CLI consumes them.
func EnvValue(doc []byte, name string) (string, bool) {
	result := gjson.GetBytes(doc, "env."+name)
	if !result.Exists() {
		return "", false
	}
	return result.String(), true
}
