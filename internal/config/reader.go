package config

import (
	"github.com/tidwall/gjson"
)

// DocumentReader loads a settings document from disk. The second return is
// false when the file is missing or not valid JSON; both are treated as an
// absent layer, never as an error.
type DocumentReader func(path string) ([]byte, bool)

// Reader produces per-layer values for recognized variables. Each file-backed
// layer's document is read at most once per Reader, so a resolution pass
// observes a consistent snapshot even if files change underneath it. The
// environment snapshot is injected; the reader never touches the process
// environment itself.
type Reader struct {
	locations Locations
	snapshot  map[string]string
	readDoc   DocumentReader

	docs map[Layer][]byte
	seen map[Layer]bool
}

// NewReader builds a Reader over one set of layer locations and one
// environment snapshot.
func NewReader(locations Locations, snapshot map[string]string, readDoc DocumentReader) *Reader {
	return &Reader{
		locations: locations,
		snapshot:  snapshot,
		readDoc:   readDoc,
		docs:      make(map[Layer][]byte, 4),
		seen:      make(map[Layer]bool, 4),
	}
}

// LayerValue returns the value layer defines for name, if any. A missing
// location, an unreadable or malformed document, and a document without the
// env.<name> key all report absent.
func (r *Reader) LayerValue(layer Layer, name VariableName) (string, bool) {
	if !layer.Valid() || !IsRecognized(name) {
		return "", false
	}
	if layer == LayerShellEnv {
		value, ok := r.snapshot[string(name)]
		return value, ok
	}
	doc, ok := r.document(layer)
	if !ok {
		return "", false
	}
	result := gjson.GetBytes(doc, "env."+string(name))
	if !result.Exists() {
		return "", false
	}
	return result.String(), true
}

// AllLayerValues returns every layer's value for name, keyed by layer. Absent
// layers are omitted.
func (r *Reader) AllLayerValues(name VariableName) map[Layer]string {
	values := make(map[Layer]string, len(Precedence))
	for _, layer := range Precedence {
		if value, ok := r.LayerValue(layer, name); ok {
			values[layer] = value
		}
	}
	return values
}

func (r *Reader) document(layer Layer) ([]byte, bool) {
	if r.seen[layer] {
		doc := r.docs[layer]
		return doc, doc != nil
	}
	r.seen[layer] = true
	path := r.locations.Path(layer)
	if path == "" || r.readDoc == nil {
		return nil, false
	}
	doc, ok := r.readDoc(path)
	if !ok {
		return nil, false
	}
	r.docs[layer] = doc
	return doc, true
}
