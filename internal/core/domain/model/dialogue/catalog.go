package dialogue

import (
	"fmt"
	"slices"

	"makanapa/internal/pkg/errs"
)

// Category is a coarse location group offered at both legs of the route.
type Category string

const (
	SisterMahallah  Category = "sister"
	BrotherMahallah Category = "brother"
	InCampus        Category = "in_uia"
	OutsideCampus   Category = "outside_uia"
)

// Categories lists the groups in menu order.
func Categories() []Category {
	return []Category{SisterMahallah, BrotherMahallah, InCampus, OutsideCampus}
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Category) Validate() error {
	if !slices.Contains(Categories(), c) {
		return errs.NewValueIsInvalidErrorWithCause("location category", fmt.Errorf("%q is not a known category", string(c)))
	}
	return nil
}

// IsClosedChoice reports whether the category is followed by a fixed list of places.
func (c Category) IsClosedChoice() bool {
	return c == SisterMahallah || c == BrotherMahallah
}

func (c Category) Title() string {
	switch c {
	case SisterMahallah:
		return "Sister Mahallah"
	case BrotherMahallah:
		return "Brother Mahallah"
	case InCampus:
		return "In UIA"
	case OutsideCampus:
		return "Outside UIA"
	default:
		return string(c)
	}
}

// Catalog maps closed-choice categories to their places.
type Catalog struct {
	places map[Category][]string
}

// NewCatalog copies the given lists. Only closed-choice categories may carry places,
// and each of them must carry at least one.
func NewCatalog(places map[Category][]string) (*Catalog, error) {
	c := &Catalog{places: make(map[Category][]string, len(places))}
	for _, category := range Categories() {
		list := places[category]
		if category.IsClosedChoice() && len(list) == 0 {
			return nil, errs.NewValueIsRequiredError(fmt.Sprintf("places for %s", category))
		}
		if !category.IsClosedChoice() && len(list) != 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("catalog",
				fmt.Errorf("category %s takes free text and cannot list places", category))
		}
		if len(list) != 0 {
			c.places[category] = slices.Clone(list)
		}
	}
	return c, nil
}

// DefaultCatalog returns the IIUM mahallah lists.
func DefaultCatalog() *Catalog {
	return &Catalog{places: map[Category][]string{
		SisterMahallah: {
			"Safiyyah", "Ruqayyah", "Sumayyah", "Asiah", "Aminah",
			"Halimah", "Salahudin", "Maryam", "Nusaibah", "Hafsah",
		},
		BrotherMahallah: {
			"Zubair", "Ali", "Siddiq", "Uthman", "Farouq", "Bilal", "Salahudin",
		},
	}}
}

// Places returns the menu for a category, nil for free-text categories.
func (c *Catalog) Places(category Category) []string {
	return slices.Clone(c.places[category])
}

func (c *Catalog) Contains(category Category, place string) bool {
	return slices.Contains(c.places[category], place)
}
