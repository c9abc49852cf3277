// Package catalog holds the static reference data of the inspection form:
// the 23-item checklist, the installable product catalog and the
// city/district location table. The data is embedded at build time and
// loaded once; callers only ever receive copies.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category groups checklist items into the two report subsections.
type Category string

const (
	CategoryInstall Category = "설치"
	CategoryCheck   Category = "Check"
)

// Item is one fixed inspection question.
type Item struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Category Category `yaml:"category"`
}

// Product is one installable boiler model.
type Product struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

// Location is a city and the districts selectable under it.
type Location struct {
	City      string   `yaml:"city"`
	Districts []string `yaml:"districts"`
}

type reference struct {
	Checklist []Item     `yaml:"checklist"`
	Products  []Product  `yaml:"products"`
	Locations []Location `yaml:"locations"`
}

//go:embed reference.yaml
var referenceYAML []byte

var ref = mustLoad(referenceYAML)

func mustLoad(data []byte) reference {
	r, err := load(data)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return r
}

func load(data []byte) (reference, error) {
	var r reference
	if err := yaml.Unmarshal(data, &r); err != nil {
		return reference{}, fmt.Errorf("failed to decode reference data: %w", err)
	}

	seen := make(map[string]struct{}, len(r.Checklist))
	for _, item := range r.Checklist {
		if item.ID == "" || item.Label == "" {
			return reference{}, fmt.Errorf("checklist item %q is incomplete", item.ID)
		}
		if item.Category != CategoryInstall && item.Category != CategoryCheck {
			return reference{}, fmt.Errorf("checklist item %q has unknown category %q", item.ID, item.Category)
		}
		if _, dup := seen[item.ID]; dup {
			return reference{}, fmt.Errorf("duplicate checklist item %q", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	if len(r.Products) == 0 {
		return reference{}, fmt.Errorf("product catalog is empty")
	}
	return r, nil
}

// Checklist returns every checklist item in definition order.
func Checklist() []Item {
	return append([]Item(nil), ref.Checklist...)
}

// ChecklistByCategory returns the items of one category in definition order.
func ChecklistByCategory(c Category) []Item {
	var items []Item
	for _, item := range ref.Checklist {
		if item.Category == c {
			items = append(items, item)
		}
	}
	return items
}

// IsChecklistItem reports whether id names a checklist item.
func IsChecklistItem(id string) bool {
	for _, item := range ref.Checklist {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Products returns the product catalog in display order.
func Products() []Product {
	return append([]Product(nil), ref.Products...)
}

// IsProduct reports whether name is a catalog product name.
func IsProduct(name string) bool {
	if name == "" {
		return false
	}
	for _, p := range ref.Products {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Cities returns the selectable cities in display order.
func Cities() []string {
	cities := make([]string, 0, len(ref.Locations))
	for _, loc := range ref.Locations {
		cities = append(cities, loc.City)
	}
	return cities
}

// Districts returns the districts of city, or nil for an unknown city.
func Districts(city string) []string {
	for _, loc := range ref.Locations {
		if loc.City == city {
			return append([]string(nil), loc.Districts...)
		}
	}
	return nil
}
