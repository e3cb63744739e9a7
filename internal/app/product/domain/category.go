package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the closed set of product categories.
type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryClothing    Category = "CLOTHING"
	CategoryBeauty      Category = "BEAUTY"
	CategorySports      Category = "SPORTS"
	CategoryToys        Category = "TOYS"
	CategoryHealth      Category = "HEALTH"
	CategoryPetSupplies Category = "PET_SUPPLIES"
	CategoryAutomotive  Category = "AUTOMOTIVE"
)

var categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBeauty,
	CategorySports,
	CategoryToys,
	CategoryHealth,
	CategoryPetSupplies,
	CategoryAutomotive,
}

// Categories lists every valid category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory resolves a category name. Matching is exact: "electronics"
// is not a category.
func ParseCategory(name string) (Category, error) {
	for _, c := range categories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidCategory, name, joinCategories())
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

func (c Category) String() string { return string(c) }

// UnmarshalJSON rejects unknown category names at decode time.
func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, string(data))
	}
	parsed, err := ParseCategory(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func joinCategories() string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
