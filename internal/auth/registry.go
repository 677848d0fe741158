package auth

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-rest-pipeline/internal/crypto"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// KeyRegistry is an ordered list of label→key pairs. Keys need not be
// unique; a reverse lookup returns the first label in registry order.
//
// A registry is built once at startup and never mutated, so it is safe for
// concurrent use.
type KeyRegistry struct {
	entries []models.KeyEntry
}

// NewKeyRegistry returns a registry holding entries in the given order.
func NewKeyRegistry(entries ...models.KeyEntry) *KeyRegistry {
	return &KeyRegistry{entries: slices.Clone(entries)}
}

// Entries returns a copy of the registry entries.
func (r *KeyRegistry) Entries() []models.KeyEntry {
	if r == nil {
		return nil
	}
	return slices.Clone(r.entries)
}

func (r *KeyRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Lookup returns the label of the first entry whose key equals candidate.
// Empty candidates and empty keys never match.
func (r *KeyRegistry) Lookup(candidate string) (string, bool) {
	if r == nil || candidate == "" {
		return "", false
	}

	for _, e := range r.entries {
		if e.Key == "" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(e.Key), []byte(candidate)) == 1 {
			return e.Label, true
		}
	}
	return "", false
}

// Allow returns the registry restricted to labels, keeping registry order.
// A nil labels slice returns r itself. The session marker is not a key label
// and is never kept.
func (r *KeyRegistry) Allow(labels []string) *KeyRegistry {
	if labels == nil || r == nil {
		return r
	}

	out := &KeyRegistry{}
	for _, e := range r.entries {
		if strings.EqualFold(e.Label, models.SessionTag) {
			continue
		}
		if slices.Contains(labels, e.Label) {
			out.entries = append(out.entries, e)
		}
	}
	return out
}

// ParseRegistry decodes a JSON or YAML mapping of label to key, keeping
// document order. An empty document yields an empty registry.
func ParseRegistry(data []byte) (*KeyRegistry, error) {
	if json.Valid(data) {
		return parseJSONRegistry(data)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRegistry, err)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewKeyRegistry(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping of label to key", ErrMalformedRegistry)
	}

	entries := make([]models.KeyEntry, 0, len(root.Content)/2)
	seen := make(map[string]struct{}, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		label, key := root.Content[i], root.Content[i+1]
		if label.Kind != yaml.ScalarNode || key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: label and key must be scalars", ErrMalformedRegistry, label.Line)
		}
		if _, dup := seen[label.Value]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate label %q", ErrMalformedRegistry, label.Line, label.Value)
		}
		seen[label.Value] = struct{}{}
		entries = append(entries, models.KeyEntry{Label: label.Value, Key: key.Value})
	}

	return &KeyRegistry{entries: entries}, nil
}

// parseJSONRegistry walks the token stream so object order survives.
func parseJSONRegistry(data []byte) (*KeyRegistry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRegistry, err)
	}
	if tok == nil {
		return NewKeyRegistry(), nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected a mapping of label to key", ErrMalformedRegistry)
	}

	var entries []models.KeyEntry
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRegistry, err)
		}
		label := tok.(string)

		var key string
		if err = dec.Decode(&key); err != nil {
			return nil, fmt.Errorf("%w: key of %q must be a string: %w", ErrMalformedRegistry, label, err)
		}
		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrMalformedRegistry, label)
		}
		seen[label] = struct{}{}
		entries = append(entries, models.KeyEntry{Label: label, Key: key})
	}

	return &KeyRegistry{entries: entries}, nil
}

// LoadRegistryFile reads a registry document from path. When passphrase is
// set the file holds a blob produced by sealer.Seal and is opened first.
func LoadRegistryFile(path, passphrase string, sealer crypto.Sealer) (*KeyRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading key registry: %w", err)
	}

	if passphrase != "" {
		data, err = sealer.Open(strings.TrimSpace(string(data)), passphrase)
		if err != nil {
			return nil, fmt.Errorf("error opening sealed key registry: %w", err)
		}
	}

	return ParseRegistry(data)
}
