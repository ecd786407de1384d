// Package constants provides shared constants used throughout agentsync.
// This includes file permissions, layout defaults and the thresholds of the
// reconciliation and name resolution heuristics.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Layout defaults
const (
	// DocumentExt is the extension of every artifact document.
	DocumentExt = ".md"

	// OverviewFilename is the lowercased name of human-readable overview files.
	// Catalogs never include it.
	OverviewFilename = "readme.md"

	// DefaultWorkspaceDir is the hidden local workspace root, relative to the working directory.
	DefaultWorkspaceDir = ".agent"

	// DefaultManifestFile is the manifest filename in the working directory.
	DefaultManifestFile = "agent-manifest.json"

	// DefaultRegistryDir is the registry directory under the user's home.
	DefaultRegistryDir = "agent-utils"

	// ConfigFileName is the base name of the optional config file (.agentsync.yaml).
	ConfigFileName = ".agentsync"

	// EnvPrefix prefixes every environment variable read by viper.
	EnvPrefix = "AGENTSYNC"
)

// Reconciliation scoring
const (
	// ExactContentBonus is added when trimmed contents are identical.
	ExactContentBonus = 100

	// PathMatchBonus is added when the canonical key equals the local relative path.
	PathMatchBonus = 50

	// GenericNamePenalty is applied to generic basenames whose path does not match.
	GenericNamePenalty = -1000

	// DuplicateThreshold is the similarity a fallback match must exceed.
	DuplicateThreshold = 0.8
)

// Name resolution scoring
const (
	ScoreExactKey          = 100
	ScoreExactKeyFold      = 90
	ScoreExactBasename     = 80
	ScoreExactBasenameFold = 70
	FuzzyNameThreshold     = 0.5
	FuzzyNameWeight        = 50
	ParentSegmentBonus     = 5
)

// GenericFilenames are lowercased basenames shared by many unrelated
// artifacts. A filename match on one of them only counts when the whole
// relative path matches too.
var GenericFilenames = map[string]bool{
	"readme.md": true,
	"skill.md":  true,
	"index.md":  true,
}
