package nlp

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed intents.yaml
var defaultCatalogYAML []byte

var (
	ErrDuplicateIntent = errors.New("duplicate intent id")
	ErrInvalidCategory = errors.New("invalid intent category")
	ErrEmptyCatalog    = errors.New("intent catalog is empty")
)

type catalogFile struct {
	Intents []IntentDefinition `yaml:"intents"`
}

// Catalog is the ordered, read-only set of intents the matcher scores against.
type Catalog struct {
	intents []IntentDefinition
	byID    map[IntentID]int
}

func NewCatalog(intents []IntentDefinition) (*Catalog, error) {
	c := &Catalog{
		intents: make([]IntentDefinition, 0, len(intents)),
		byID:    make(map[IntentID]int, len(intents)),
	}

	for _, def := range intents {
		if def.ID == "" {
			return nil, fmt.Errorf("intent %q: empty id", def.Name)
		}
		if _, exists := c.byID[def.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIntent, def.ID)
		}
		if def.Category != CategoryGeneral && def.Category != CategoryEmployeeSpecific {
			return nil, fmt.Errorf("%w: %s has %q", ErrInvalidCategory, def.ID, def.Category)
		}

		def.Keywords = append([]string(nil), def.Keywords...)
		def.Examples = append([]string(nil), def.Examples...)

		c.byID[def.ID] = len(c.intents)
		c.intents = append(c.intents, def)
	}

	return c, nil
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse intent catalog: %w", err)
	}
	if len(file.Intents) == 0 {
		return nil, ErrEmptyCatalog
	}
	return NewCatalog(file.Intents)
}

// LoadCatalog reads the catalog from path, or the built-in catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intent catalog %s: %w", path, err)
	}

	return ParseCatalog(data)
}

func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

func (c *Catalog) Get(id IntentID) (IntentDefinition, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return IntentDefinition{}, false
	}
	return c.intents[idx], true
}

func (c *Catalog) All() []IntentDefinition {
	return append([]IntentDefinition(nil), c.intents...)
}

func (c *Catalog) General() []IntentDefinition {
	return c.filter(CategoryGeneral)
}

func (c *Catalog) EmployeeSpecific() []IntentDefinition {
	return c.filter(CategoryEmployeeSpecific)
}

// IsPrivate is false for ids the catalog does not know.
func (c *Catalog) IsPrivate(id IntentID) bool {
	def, ok := c.Get(id)
	return ok && def.IsPrivate()
}

func (c *Catalog) Len() int {
	return len(c.intents)
}

func (c *Catalog) filter(category Category) []IntentDefinition {
	var out []IntentDefinition
	for _, def := range c.intents {
		if def.Category == category {
			out = append(out, def)
		}
	}
	return out
}
