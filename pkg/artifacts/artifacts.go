// Package artifacts defines the artifact types agentsync reconciles and the
// tagged Artifact variant used to tell single documents apart from
// multi-file skill directories.
package artifacts

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/agentsync/pkg/constants"
	"github.com/agentstation/agentsync/pkg/errors"
)

// Type is one of the fixed artifact types.
type Type string

// Artifact types.
const (
	Persona  Type = "persona"
	Workflow Type = "workflow"
	Skill    Type = "skill"
	Config   Type = "config"
)

// Types lists every artifact type in the fixed iteration order used by
// catalogs, reconciliation and resolution.
var Types = []Type{Persona, Workflow, Skill, Config}

// String returns the type name.
func (t Type) String() string {
	return string(t)
}

// Title returns the display label, e.g. "Persona".
func (t Type) Title() string {
	return cases.Title(language.English).String(string(t))
}

// ManifestKey returns the manifest key a type is saved under.
func (t Type) ManifestKey() string {
	switch t {
	case Persona:
		return "agents"
	case Workflow:
		return "workflows"
	case Skill:
		return "skills"
	default:
		return "config"
	}
}

// ParseType parses a type name, accepting singular, plural and legacy forms.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "persona", "personas", "agent", "agents":
		return Persona, nil
	case "workflow", "workflows":
		return Workflow, nil
	case "skill", "skills":
		return Skill, nil
	case "config", "configs":
		return Config, nil
	}
	return "", errors.NewValidationError("type", s, "must be one of persona, workflow, skill, config")
}

// Layout maps each type to its folder name. The same names are used under
// the registry root and under the local workspace root.
type Layout map[Type]string

// DefaultLayout returns the default folder names.
func DefaultLayout() Layout {
	return Layout{
		Persona:  "personas",
		Workflow: "workflows",
		Skill:    "skills",
		Config:   "config",
	}
}

// Folder returns the folder name for t, falling back to the default layout.
func (l Layout) Folder(t Type) string {
	if name, ok := l[t]; ok && name != "" {
		return name
	}
	return DefaultLayout()[t]
}

// Kind distinguishes the two Artifact variants.
type Kind int

const (
	// KindFile is a single document keyed relative to its type folder.
	KindFile Kind = iota
	// KindDirectory is a multi-file skill stored as a top-level directory.
	KindDirectory
)

// Artifact is either a FileArtifact or a DirectoryArtifact.
type Artifact interface {
	Kind() Kind
	// ArtifactType is the type folder the artifact belongs to.
	ArtifactType() Type
	// RelPath is the slash path relative to the type folder.
	RelPath() string
	String() string
}

// FileArtifact is a single canonical document.
type FileArtifact struct {
	Type Type
	Key  string
}

// Kind implements Artifact.
func (f FileArtifact) Kind() Kind { return KindFile }

// ArtifactType implements Artifact.
func (f FileArtifact) ArtifactType() Type { return f.Type }

// RelPath implements Artifact.
func (f FileArtifact) RelPath() string { return f.Key }

func (f FileArtifact) String() string {
	return fmt.Sprintf("%s:%s", f.Type, f.Key)
}

// DirectoryArtifact is a multi-file skill copied as a unit.
type DirectoryArtifact struct {
	Name string
}

// Kind implements Artifact.
func (d DirectoryArtifact) Kind() Kind { return KindDirectory }

// ArtifactType implements Artifact. Directories are always skills.
func (d DirectoryArtifact) ArtifactType() Type { return Skill }

// RelPath implements Artifact.
func (d DirectoryArtifact) RelPath() string { return d.Name }

func (d DirectoryArtifact) String() string {
	return fmt.Sprintf("%s:%s/", Skill, d.Name)
}

// IsDocument reports whether name has the document extension.
func IsDocument(name string) bool {
	return strings.HasSuffix(name, constants.DocumentExt)
}

// IsOverview reports whether name is a human-readable overview file.
func IsOverview(name string) bool {
	return strings.ToLower(path.Base(name)) == constants.OverviewFilename
}

// IsGeneric reports whether the basename of name is shared by many
// unrelated artifacts.
func IsGeneric(name string) bool {
	return constants.GenericFilenames[strings.ToLower(path.Base(name))]
}

// Depth counts the path separators in a slash-separated key.
func Depth(key string) int {
	return strings.Count(key, "/")
}

// WithExt appends the document extension unless name already has it.
func WithExt(name string) string {
	if IsDocument(name) {
		return name
	}
	return name + constants.DocumentExt
}
