package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed caves/*.yaml
var defaultCaves embed.FS

// caveFile is the YAML structure of a cave file.
type caveFile struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Notes     string    `yaml:"notes,omitempty"`
	TimeLimit TimeLimit `yaml:"time_limit"`
	Map       string    `yaml:"map"`
}

// Loader reads cave files from a file system.
type Loader struct {
	FS   fs.FS
	Root string

	// Validate, when set, is run against every parsed cave. A failure makes
	// the whole load fail with ErrConfiguration.
	Validate func(Cave) error
}

// NewDirLoader creates a loader for a directory on disk.
func NewDirLoader(dir string) *Loader {
	return &Loader{FS: os.DirFS(dir), Root: "."}
}

// DefaultLoader returns a loader for the caves bundled with the binary.
func DefaultLoader() *Loader {
	return &Loader{FS: defaultCaves, Root: "caves"}
}

// LoadAll recursively scans Root and parses every cave file.
// Caves are returned ordered by file path so that level grouping is stable.
func (l *Loader) LoadAll() ([]Cave, error) {
	var paths []string
	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isSupportedExtension(strings.ToLower(path.Ext(p))) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: cave directory %s does not exist", ErrConfiguration, l.Root)
		}
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Strings(paths)

	caves := make([]Cave, 0, len(paths))
	for _, p := range paths {
		c, err := l.LoadFile(p)
		if err != nil {
			return nil, err
		}
		caves = append(caves, c)
	}
	return caves, nil
}

// LoadFile parses a single cave file.
func (l *Loader) LoadFile(p string) (Cave, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Cave{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	c, err := ParseCave(data)
	if err != nil {
		return Cave{}, fmt.Errorf("%w: parsing file %s: %v", ErrConfiguration, p, err)
	}
	if c.ID == "" {
		c.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	if l.Validate != nil {
		if err := l.Validate(c); err != nil {
			return Cave{}, fmt.Errorf("%w: cave %s: %v", ErrConfiguration, c.ID, err)
		}
	}
	return c, nil
}

// Load scans the source and builds a catalog grouped by perLevel caves.
func (l *Loader) Load(perLevel int) (*Catalog, error) {
	caves, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return Group(caves, perLevel)
}

// ParseCave parses YAML cave data.
func ParseCave(data []byte) (Cave, error) {
	var cf caveFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return Cave{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	rows := strings.Split(strings.TrimRight(cf.Map, "\n"), "\n")
	if strings.TrimSpace(cf.Map) == "" {
		return Cave{}, errors.New("map is empty")
	}

	c := Cave{
		ID:        cf.ID,
		Name:      cf.Name,
		Notes:     strings.TrimSpace(cf.Notes),
		TimeLimit: cf.TimeLimit,
		Map:       rows,
	}
	if err := normalize(&c); err != nil {
		return Cave{}, err
	}
	return c, nil
}

func isSupportedExtension(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
