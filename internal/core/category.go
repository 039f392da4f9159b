package core

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category classifies an expense for bookkeeping. The integer tags are
// stable identifiers, not an ordering.
type Category int

const (
	Undefined       Category = 0
	ExternalService Category = 1 // Fremdleistung
	PostageCosts    Category = 2 // Portokosten
	Depreciation    Category = 3 // Abschreibung
	OfficeSupplies  Category = 4 // Büroartikel
)

var categoryNames = map[Category]string{
	Undefined:       "UNDEFINED",
	ExternalService: "EXTERNAL_SERVICE",
	PostageCosts:    "POSTAGE_COSTS",
	Depreciation:    "DEPRECIATION",
	OfficeSupplies:  "OFFICE_SUPPLIES",
}

// Categories returns all categories in tag order.
func Categories() []Category {
	return []Category{Undefined, ExternalService, PostageCosts, Depreciation, OfficeSupplies}
}

// Valid reports whether c is a member of the category set.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory accepts a category name (case-insensitive) or its integer tag.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		c := Category(n)
		if !c.Valid() {
			return Undefined, fmt.Errorf("%w: %d", ErrInvalidCategory, n)
		}
		return c, nil
	}
	upper := strings.ToUpper(s)
	for c, name := range categoryNames {
		if name == upper {
			return c, nil
		}
	}
	return Undefined, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// MarshalYAML persists the category by name.
func (c Category) MarshalYAML() (interface{}, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return c.String(), nil
}

func (c *Category) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseCategory(node.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
