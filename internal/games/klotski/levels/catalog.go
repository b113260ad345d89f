package levels

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-klotski/internal/games/klotski/engine"
)

//go:embed defaults/*.yaml
var defaultLevels embed.FS

// Catalog is the ordered, id-indexed list of playable levels.
// The engine levels it hands out are shared; best records written by the
// session's ledger are visible through the catalog.
type Catalog struct {
	levels []*engine.Level
	byID   map[string]int
}

// NewCatalog validates the levels and indexes them by id.
func NewCatalog(levels []*engine.Level) (*Catalog, error) {
	c := &Catalog{
		levels: levels,
		byID:   make(map[string]int, len(levels)),
	}
	for i, l := range levels {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate level id %q", l.ID)
		}
		c.byID[l.ID] = i
	}
	return c, nil
}

// Default returns the catalog of the embedded level pack.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(defaultLevels, "defaults")
	if err != nil {
		return nil, fmt.Errorf("embedded levels: %w", err)
	}
	return fromLoader(&Loader{FS: sub, Root: ".", Name: "embedded"})
}

// Load returns the levels under dir, or the embedded pack when dir is empty.
func Load(dir string, logger *log.Logger) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	loader := NewLoader(dir)
	loader.Logger = logger
	return fromLoader(loader)
}

func fromLoader(loader *Loader) (*Catalog, error) {
	parsed, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("no levels found")
	}

	levels := make([]*engine.Level, len(parsed))
	for i := range parsed {
		levels[i] = parsed[i].ToEngine()
	}
	return NewCatalog(levels)
}

// Levels returns the ordered levels.
func (c *Catalog) Levels() []*engine.Level {
	return c.levels
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Get returns the level at index.
func (c *Catalog) Get(index int) (*engine.Level, bool) {
	if index < 0 || index >= len(c.levels) {
		return nil, false
	}
	return c.levels[index], true
}

// ByID returns the level with the given id.
func (c *Catalog) ByID(id string) (*engine.Level, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return c.levels[i], true
}

// Index returns the catalog position of a level id.
func (c *Catalog) Index(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Exists returns true if a level with the id is in the catalog.
func (c *Catalog) Exists(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// IDs returns level ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.levels))
	for i, l := range c.levels {
		ids[i] = l.ID
	}
	return ids
}

// FirstUnsolved returns the index of the first level without a record,
// or 0 when every level is solved.
func (c *Catalog) FirstUnsolved() int {
	for i, l := range c.levels {
		if !l.Solved {
			return i
		}
	}
	return 0
}
