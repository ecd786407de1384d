package workspace

import (
	"path"
	"strings"

	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/constants"
	"github.com/agentstation/agentsync/pkg/frontmatter"
	"github.com/agentstation/agentsync/pkg/manifest"
)

// skillDocument is the entry point document of a skill directory.
const skillDocument = "SKILL.md"

// ListItem is one registry artifact as shown by the list command.
type ListItem struct {
	Type        artifacts.Type `json:"type" yaml:"type"`
	Name        string         `json:"name" yaml:"name"`
	Path        string         `json:"path" yaml:"path"`
	Directory   bool           `json:"directory" yaml:"directory"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Requested   bool           `json:"requested" yaml:"requested"`
}

// Entries lists the registry artifacts, optionally limited to the given
// types. Skill directories appear once, described by their SKILL.md, in
// place of the files they contain.
func (w *Workspace) Entries(types ...artifacts.Type) ([]ListItem, error) {
	set, err := w.Registry()
	if err != nil {
		return nil, err
	}
	m, err := w.manifest.LoadOrNew()
	if err != nil {
		w.logger.Warn().Err(err).Msg("Ignoring unreadable manifest")
		m = manifest.New()
	}

	if len(types) == 0 {
		types = artifacts.Types
	}

	var items []ListItem
	for _, t := range types {
		dirs := make(map[string]bool)
		if t == artifacts.Skill {
			for _, d := range set.SkillDirs() {
				dirs[d] = true
				item := ListItem{
					Type:      t,
					Name:      d,
					Path:      path.Join(w.layout.Folder(t), d) + "/",
					Directory: true,
					Requested: m.Has(t, d),
				}
				if e, ok := set.Catalog(t).Get(path.Join(d, skillDocument)); ok {
					item.Description = frontmatter.Describe(e.Content)
				}
				items = append(items, item)
			}
		}

		for _, e := range set.Catalog(t).Entries() {
			if first, _, nested := strings.Cut(e.Key, "/"); nested && dirs[first] {
				continue
			}
			name := strings.TrimSuffix(e.Key, constants.DocumentExt)
			items = append(items, ListItem{
				Type:        t,
				Name:        name,
				Path:        path.Join(w.layout.Folder(t), e.Key),
				Description: frontmatter.Describe(e.Content),
				Requested:   m.Has(t, name) || m.Has(t, e.Key) || m.Has(t, path.Base(name)),
			})
		}
	}
	return items, nil
}
