package catalogs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/errors"
)

// LocalFile is an artifact document found in the local workspace.
type LocalFile struct {
	// Type is the type folder the file was found in.
	Type artifacts.Type
	// Path is the filesystem path of the file.
	Path string
	// Rel is the slash path relative to the type folder.
	Rel     string
	Content string
}

// Load walks root and returns a catalog of every document under it.
// Overview files are skipped. A missing root yields an empty catalog.
func Load(fsys afero.Fs, root string, t artifacts.Type, opts ...Option) (*Catalog, error) {
	cfg := newLoadConfig(opts...)
	cat := New(t, root)

	exists, err := afero.DirExists(fsys, root)
	if err != nil {
		return nil, errors.WrapIO("stat", root, err)
	}
	if !exists {
		cfg.logger.Debug().Str("root", root).Msg("Catalog root missing, treating as empty")
		return cat, nil
	}

	err = afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		name := info.Name()
		if !artifacts.IsDocument(name) || artifacts.IsOverview(name) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if cfg.ignored(key) {
			cfg.logger.Debug().Str("key", key).Msg("Ignoring artifact")
			return nil
		}

		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return errors.WrapIO("read", path, err)
		}
		cat.Add(key, string(data))
		return nil
	})
	if err != nil {
		return nil, errors.WrapResource("load", "catalog", root, err)
	}

	cfg.logger.Debug().Str("type", t.String()).Str("root", root).Int("entries", cat.Len()).Msg("Loaded catalog")
	return cat, nil
}

// LoadRegistry loads every typed catalog under the registry root and lists
// its top-level skill directories.
func LoadRegistry(fsys afero.Fs, root string, layout artifacts.Layout, opts ...Option) (*Set, error) {
	cats := make([]*Catalog, 0, len(artifacts.Types))
	for _, t := range artifacts.Types {
		cat, err := Load(fsys, filepath.Join(root, layout.Folder(t)), t, opts...)
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}

	dirs, err := ListDirs(fsys, filepath.Join(root, layout.Folder(artifacts.Skill)))
	if err != nil {
		return nil, err
	}
	return NewSet(cats...).WithSkillDirs(dirs...), nil
}

// ListLocal returns every artifact document in the local workspace, in type
// order then key order.
func ListLocal(fsys afero.Fs, root string, layout artifacts.Layout, opts ...Option) ([]LocalFile, error) {
	var files []LocalFile
	for _, t := range artifacts.Types {
		dir := filepath.Join(root, layout.Folder(t))
		cat, err := Load(fsys, dir, t, opts...)
		if err != nil {
			return nil, err
		}
		for _, e := range cat.Entries() {
			files = append(files, LocalFile{
				Type:    t,
				Path:    filepath.Join(dir, filepath.FromSlash(e.Key)),
				Rel:     e.Key,
				Content: e.Content,
			})
		}
	}
	return files, nil
}

// ListDirs returns the names of the non-hidden directories directly under
// root, sorted. A missing root yields no names.
func ListDirs(fsys afero.Fs, root string) ([]string, error) {
	exists, err := afero.DirExists(fsys, root)
	if err != nil {
		return nil, errors.WrapIO("stat", root, err)
	}
	if !exists {
		return nil, nil
	}

	infos, err := afero.ReadDir(fsys, root)
	if err != nil {
		return nil, errors.WrapIO("read", root, err)
	}

	var names []string
	for _, info := range infos {
		if info.IsDir() && !strings.HasPrefix(info.Name(), ".") {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Option configures catalog loading.
type Option func(*loadConfig)

type loadConfig struct {
	ignore []string
	logger *zerolog.Logger
}

func newLoadConfig(opts ...Option) *loadConfig {
	nop := zerolog.Nop()
	cfg := &loadConfig{logger: &nop}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithIgnore skips keys matching any of the doublestar patterns, e.g.
// "drafts/**" or "**/*.wip.md". Invalid patterns are dropped.
func WithIgnore(patterns ...string) Option {
	return func(cfg *loadConfig) {
		for _, p := range patterns {
			if doublestar.ValidatePattern(p) {
				cfg.ignore = append(cfg.ignore, p)
			}
		}
	}
}

// WithLogger sets the logger used for debug output while loading.
func WithLogger(logger *zerolog.Logger) Option {
	return func(cfg *loadConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func (cfg *loadConfig) ignored(key string) bool {
	for _, p := range cfg.ignore {
		if ok, _ := doublestar.Match(p, key); ok {
			return true
		}
	}
	return false
}
