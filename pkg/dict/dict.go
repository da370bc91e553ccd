package dict

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/servolink-protocol/servolink-go/pkg/reg"
)

// Dictionary errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dictionary format")
	ErrMalformedEntry    = errors.New("malformed dictionary entry")
	ErrDuplicateID       = errors.New("duplicated identifier")
	ErrNotFound          = errors.New("not found")
)

// Labels maps language codes to localized display text.
// A missing language is a valid "not localized" state, never an error.
type Labels map[string]string

// category is one dictionary category with its subcategories.
type category struct {
	labels Labels
	scats  map[string]Labels
}

// Dictionary is an immutable register-description store for one drive model.
// It is safe for concurrent reads.
type Dictionary struct {
	cats map[string]*category
	regs map[string]*reg.Register
}

// Load reads and parses a dictionary document from the given path.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	return Parse(data)
}

// Register looks up a register by id.
func (d *Dictionary) Register(id string) (*reg.Register, error) {
	r, ok := d.regs[id]
	if !ok {
		return nil, fmt.Errorf("register %w (%s)", ErrNotFound, id)
	}
	return r, nil
}

// Category returns the labels of a category.
func (d *Dictionary) Category(id string) (Labels, error) {
	c, ok := d.cats[id]
	if !ok {
		return nil, fmt.Errorf("category %w (%s)", ErrNotFound, id)
	}
	return c.labels, nil
}

// Subcategory returns the labels of a subcategory within a category.
func (d *Dictionary) Subcategory(catID, scatID string) (Labels, error) {
	c, ok := d.cats[catID]
	if !ok {
		return nil, fmt.Errorf("category %w (%s)", ErrNotFound, catID)
	}
	labels, ok := c.scats[scatID]
	if !ok {
		return nil, fmt.Errorf("subcategory %w (%s)", ErrNotFound, scatID)
	}
	return labels, nil
}

// CategoryIDs returns the ids of all categories, sorted.
func (d *Dictionary) CategoryIDs() []string {
	ids := make([]string, 0, len(d.cats))
	for id := range d.cats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SubcategoryIDs returns the ids of all subcategories of a category, sorted.
func (d *Dictionary) SubcategoryIDs(catID string) ([]string, error) {
	c, ok := d.cats[catID]
	if !ok {
		return nil, fmt.Errorf("category %w (%s)", ErrNotFound, catID)
	}
	ids := make([]string, 0, len(c.scats))
	for id := range c.scats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// RegisterIDs returns the ids of all registers, sorted.
func (d *Dictionary) RegisterIDs() []string {
	ids := make([]string, 0, len(d.regs))
	for id := range d.regs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CategoryCount returns the number of categories.
func (d *Dictionary) CategoryCount() int { return len(d.cats) }

// SubcategoryCount returns the number of subcategories of a category,
// or 0 if the category does not exist.
func (d *Dictionary) SubcategoryCount(catID string) int {
	c, ok := d.cats[catID]
	if !ok {
		return 0
	}
	return len(c.scats)
}

// RegisterCount returns the number of registers.
func (d *Dictionary) RegisterCount() int { return len(d.regs) }
