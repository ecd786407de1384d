// Package manifest reads and writes agent-manifest.json, the list of
// artifact names a workspace wants synced from the registry.
//
// The file is a JSON object with one array of names per artifact type:
//
//	{
//	  "agents": ["staff-engineer"],
//	  "workflows": ["release"],
//	  "skills": ["pdf-tools"],
//	  "config": []
//	}
//
// "agents" is the legacy key for personas; "personas" is accepted too.
// Missing keys are empty lists and unknown keys survive a load/save cycle
// untouched.
package manifest

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/errors"
)

// Manifest keys accepted for personas.
const (
	agentsKey   = "agents"
	personasKey = "personas"
)

// knownKeys are decoded in this order, so "agents" names precede
// "personas" names when a file carries both.
var knownKeys = []string{agentsKey, personasKey, "workflows", "skills", "config"}

// Manifest holds the requested names per artifact type.
type Manifest struct {
	lists map[artifacts.Type][]string
	// extra holds keys agentsync does not interpret.
	extra map[string]json.RawMessage
	// personaKey is the key personas were read from and are written back to.
	personaKey string
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{
		lists:      make(map[artifacts.Type][]string, len(artifacts.Types)),
		extra:      make(map[string]json.RawMessage),
		personaKey: agentsKey,
	}
}

// Parse decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}

	m := New()
	if _, ok := raw[agentsKey]; !ok {
		if _, ok := raw[personasKey]; ok {
			m.personaKey = personasKey
		}
	}

	for _, key := range knownKeys {
		value, ok := raw[key]
		if !ok {
			continue
		}
		delete(raw, key)
		if isNull(value) {
			continue
		}

		var names []string
		if err := json.Unmarshal(value, &names); err != nil {
			return nil, errors.NewParseError("json", "", "key "+key+" must be an array of strings", err)
		}
		t, _ := typeForKey(key)
		m.lists[t] = append(m.lists[t], names...)
	}

	for key, value := range raw {
		m.extra[key] = value
	}
	return m, nil
}

// Names returns the requested names for t with duplicates and blanks
// removed, keeping first occurrences in order.
func (m *Manifest) Names(t artifacts.Type) []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range m.lists[t] {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}

// Has reports whether name is requested for t.
func (m *Manifest) Has(t artifacts.Type, name string) bool {
	for _, n := range m.Names(t) {
		if n == name {
			return true
		}
	}
	return false
}

// Add appends names not yet requested for t and returns the ones added.
func (m *Manifest) Add(t artifacts.Type, names ...string) []string {
	var added []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || m.Has(t, n) {
			continue
		}
		m.lists[t] = append(m.lists[t], n)
		added = append(added, n)
	}
	return added
}

// Len returns the number of unique requested names across all types.
func (m *Manifest) Len() int {
	n := 0
	for _, t := range artifacts.Types {
		n += len(m.Names(t))
	}
	return n
}

// MarshalJSON writes every type list, as an empty array when unset, next to
// the preserved unknown keys.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.extra)+len(artifacts.Types))
	for k, v := range m.extra {
		out[k] = v
	}
	for _, t := range artifacts.Types {
		names := m.lists[t]
		if names == nil {
			names = []string{}
		}
		key := t.ManifestKey()
		if t == artifacts.Persona {
			key = m.personaKey
		}
		out[key] = names
	}
	return json.Marshal(out)
}

// Encode returns the indented document written to disk.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func typeForKey(key string) (artifacts.Type, bool) {
	switch key {
	case agentsKey, personasKey:
		return artifacts.Persona, true
	}
	for _, t := range artifacts.Types {
		if t.ManifestKey() == key {
			return t, true
		}
	}
	return "", false
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || string(bytes.TrimSpace(v)) == "null"
}
