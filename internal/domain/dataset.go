package domain

import (
	"slices"
	"sort"
)

// Dataset is the write-once list of locations loaded from the feed, with the
// distinct category and region values used to populate selection options.
type Dataset struct {
	locations  []Location
	categories []string
	regions    []string
}

func NewDataset(locations []Location) *Dataset {
	categories := make(map[string]struct{})
	regions := make(map[string]struct{})
	for _, l := range locations {
		categories[l.Category] = struct{}{}
		if l.Region != "" {
			regions[l.Region] = struct{}{}
		}
	}

	return &Dataset{
		locations:  slices.Clone(locations),
		categories: sortedKeys(categories),
		regions:    sortedKeys(regions),
	}
}

// Locations returns the records in feed order. The slice must not be modified.
func (d *Dataset) Locations() []Location { return d.locations }

func (d *Dataset) Len() int { return len(d.locations) }

// Categories returns the distinct categories in lexicographic order.
func (d *Dataset) Categories() []string { return slices.Clone(d.categories) }

// Regions returns the distinct non-empty regions in lexicographic order.
func (d *Dataset) Regions() []string { return slices.Clone(d.regions) }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
