// Package catalog groups cave definitions into numbered levels.
// A catalog is built once at startup and never changes afterwards.
package catalog

import (
	"errors"
	"fmt"
)

// CavesPerLevel is the number of consecutive caves grouped into one level.
const CavesPerLevel = 3

// DefaultCaveName is shown for caves without a name.
const DefaultCaveName = "Default"

var (
	// ErrConfiguration reports an empty or malformed cave source. It is fatal
	// at startup.
	ErrConfiguration = errors.New("catalog: configuration error")

	// ErrInvalidLevel reports a level number outside [1, LevelCount()].
	ErrInvalidLevel = errors.New("catalog: invalid level")

	// ErrInvalidCave reports a cave number outside the caves of a level.
	ErrInvalidCave = errors.New("catalog: invalid cave")
)

// Cave is one playable cave definition.
type Cave struct {
	ID        string
	Name      string
	Notes     string
	TimeLimit TimeLimit
	Map       []string

	// Level and Number are assigned by the catalog (both 1-based).
	Level  int
	Number int
}

// Label returns the "level-cave" display label, e.g. "2-3".
func (c Cave) Label() string {
	return fmt.Sprintf("%d-%d", c.Level, c.Number)
}

// Catalog maps level numbers to their ordered caves.
type Catalog struct {
	levels [][]Cave
}

// Build groups caves into levels of CavesPerLevel. The last level may be
// partial but never empty.
func Build(caves []Cave) (*Catalog, error) {
	return Group(caves, CavesPerLevel)
}

// Group groups consecutive caves into levels of perLevel caves each.
func Group(caves []Cave, perLevel int) (*Catalog, error) {
	if len(caves) == 0 {
		return nil, fmt.Errorf("%w: no caves found", ErrConfiguration)
	}
	if perLevel <= 0 {
		return nil, fmt.Errorf("%w: caves per level must be positive, got %d", ErrConfiguration, perLevel)
	}

	var levels [][]Cave
	for start := 0; start < len(caves); start += perLevel {
		end := min(start+perLevel, len(caves))
		level := make([]Cave, end-start)
		copy(level, caves[start:end])
		levels = append(levels, level)
	}
	return FromLevels(levels)
}

// FromLevels builds a catalog from an explicit grouping. Individual levels may
// be empty (they are skipped during progression) but at least one cave must
// exist overall.
func FromLevels(levels [][]Cave) (*Catalog, error) {
	total := 0
	out := make([][]Cave, len(levels))
	for i, lvl := range levels {
		out[i] = make([]Cave, len(lvl))
		for j, c := range lvl {
			if err := normalize(&c); err != nil {
				return nil, fmt.Errorf("%w: level %d cave %d: %v", ErrConfiguration, i+1, j+1, err)
			}
			c.Level = i + 1
			c.Number = j + 1
			out[i][j] = c
		}
		total += len(lvl)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: no caves found", ErrConfiguration)
	}
	return &Catalog{levels: out}, nil
}

func normalize(c *Cave) error {
	if c.Name == "" {
		c.Name = DefaultCaveName
	}
	if c.TimeLimit == 0 {
		c.TimeLimit = DefaultTimeLimit
	}
	if !c.TimeLimit.Valid() {
		return fmt.Errorf("unsupported time limit %d", int(c.TimeLimit))
	}
	return nil
}

// LevelCount returns the number of levels.
func (c *Catalog) LevelCount() int {
	return len(c.levels)
}

// TotalCaves returns the number of caves across all levels.
func (c *Catalog) TotalCaves() int {
	n := 0
	for _, lvl := range c.levels {
		n += len(lvl)
	}
	return n
}

// CavesInLevel returns the caves of a level in play order.
func (c *Catalog) CavesInLevel(level int) ([]Cave, error) {
	if level < 1 || level > len(c.levels) {
		return nil, fmt.Errorf("%w: %d (have %d levels)", ErrInvalidLevel, level, len(c.levels))
	}
	out := make([]Cave, len(c.levels[level-1]))
	copy(out, c.levels[level-1])
	return out, nil
}

// Cave returns a single cave by level and 1-based cave number.
func (c *Catalog) Cave(level, number int) (Cave, error) {
	caves, err := c.CavesInLevel(level)
	if err != nil {
		return Cave{}, err
	}
	if number < 1 || number > len(caves) {
		return Cave{}, fmt.Errorf("%w: %d-%d (level has %d caves)", ErrInvalidCave, level, number, len(caves))
	}
	return caves[number-1], nil
}
