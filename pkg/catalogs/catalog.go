// Package catalogs loads artifact documents from disk into typed catalogs.
//
// A Catalog maps a slash-separated key, relative to one type folder, to the
// document content. A Set bundles one Catalog per artifact type together with
// the names of the top-level skill directories. Iteration is always in key
// order and Sets iterate types in artifacts.Types order, so every consumer
// sees the same deterministic sequence for the same files on disk.
package catalogs

import (
	"sort"

	"github.com/agentstation/agentsync/pkg/artifacts"
)

// Entry is a single document in a catalog.
type Entry struct {
	Type    artifacts.Type `json:"type" yaml:"type"`
	Key     string         `json:"key" yaml:"key"`
	Content string         `json:"-" yaml:"-"`
}

// Artifact returns the entry as a FileArtifact.
func (e Entry) Artifact() artifacts.FileArtifact {
	return artifacts.FileArtifact{Type: e.Type, Key: e.Key}
}

// Catalog is an ordered mapping of key to Entry for one artifact type.
type Catalog struct {
	typ     artifacts.Type
	root    string
	entries map[string]Entry
	keys    []string
	sorted  bool
}

// New creates an empty catalog for t rooted at root.
func New(t artifacts.Type, root string) *Catalog {
	return &Catalog{
		typ:     t,
		root:    root,
		entries: make(map[string]Entry),
		sorted:  true,
	}
}

// FromMap builds a catalog from key → content pairs. Useful in tests.
func FromMap(t artifacts.Type, docs map[string]string) *Catalog {
	c := New(t, "")
	for key, content := range docs {
		c.Add(key, content)
	}
	return c
}

// Type returns the artifact type of every entry.
func (c *Catalog) Type() artifacts.Type {
	return c.typ
}

// Root returns the directory the catalog was loaded from.
func (c *Catalog) Root() string {
	return c.root
}

// Add inserts or replaces the document at key.
func (c *Catalog) Add(key, content string) {
	if _, exists := c.entries[key]; !exists {
		c.keys = append(c.keys, key)
		c.sorted = false
	}
	c.entries[key] = Entry{Type: c.typ, Key: key, Content: content}
}

// Get returns the entry at key.
func (c *Catalog) Get(key string) (Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Keys returns every key in sorted order.
func (c *Catalog) Keys() []string {
	c.sort()
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Entries returns every entry in key order.
func (c *Catalog) Entries() []Entry {
	c.sort()
	out := make([]Entry, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.entries[k])
	}
	return out
}

func (c *Catalog) sort() {
	if c.sorted {
		return
	}
	sort.Strings(c.keys)
	c.sorted = true
}

// Set holds one catalog per artifact type plus the top-level skill
// directories of the registry.
type Set struct {
	catalogs  map[artifacts.Type]*Catalog
	skillDirs []string
}

// NewSet builds a Set from the given catalogs. Types without a catalog are
// treated as empty.
func NewSet(cats ...*Catalog) *Set {
	s := &Set{catalogs: make(map[artifacts.Type]*Catalog, len(artifacts.Types))}
	for _, c := range cats {
		if c != nil {
			s.catalogs[c.Type()] = c
		}
	}
	return s
}

// WithSkillDirs records the registry's top-level skill directory names.
func (s *Set) WithSkillDirs(names ...string) *Set {
	dirs := append([]string(nil), names...)
	sort.Strings(dirs)
	s.skillDirs = dirs
	return s
}

// Catalog returns the catalog for t; never nil.
func (s *Set) Catalog(t artifacts.Type) *Catalog {
	if c, ok := s.catalogs[t]; ok {
		return c
	}
	return New(t, "")
}

// SkillDirs returns the top-level skill directory names in sorted order.
func (s *Set) SkillDirs() []string {
	return append([]string(nil), s.skillDirs...)
}

// Entries returns every entry across all types, in type order then key order.
func (s *Set) Entries() []Entry {
	var out []Entry
	for _, t := range artifacts.Types {
		out = append(out, s.Catalog(t).Entries()...)
	}
	return out
}

// Len returns the total number of entries across all types.
func (s *Set) Len() int {
	n := 0
	for _, c := range s.catalogs {
		n += c.Len()
	}
	return n
}
