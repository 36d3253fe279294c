package view

import (
	"cmp"

	"github.com/slok/cpm/internal/model"
)

// ResourceSortKey selects the resource ordering.
type ResourceSortKey string

const (
	ResourceSortNone         ResourceSortKey = ""
	ResourceSortName         ResourceSortKey = "name"
	ResourceSortCost         ResourceSortKey = "cost"
	ResourceSortQuantity     ResourceSortKey = "quantity"
	ResourceSortAvailability ResourceSortKey = "availability"
)

// ResourceSortKeys are the valid resource sort keys.
var ResourceSortKeys = []ResourceSortKey{
	ResourceSortName,
	ResourceSortCost,
	ResourceSortQuantity,
	ResourceSortAvailability,
}

// ParseResourceSortKey parses a user provided sort key, case insensitive.
func ParseResourceSortKey(s string) (ResourceSortKey, error) {
	return parseKey(s, ResourceSortKeys, "resource")
}

// ResourceFilter selects the resources of a view.
type ResourceFilter struct {
	// Search matches name or category, case insensitive.
	Search       string
	Type         string
	Availability string
}

// DeriveResources returns the resources matching the filter in the sort key order.
func DeriveResources(resources []model.Resource, f ResourceFilter, sortKey ResourceSortKey) []model.Resource {
	match := func(r model.Resource) bool {
		return matchesText(f.Search, r.Name, r.Category) &&
			matchesEnum(f.Type, r.Type) &&
			matchesEnum(f.Availability, r.Availability)
	}

	return derive(resources, match, resourceComparator(sortKey))
}

func resourceComparator(key ResourceSortKey) func(a, b model.Resource) int {
	switch key {
	case ResourceSortName:
		return func(a, b model.Resource) int { return cmp.Compare(a.Name, b.Name) }
	case ResourceSortCost:
		return func(a, b model.Resource) int { return descending(a.Cost, b.Cost) }
	case ResourceSortQuantity:
		return func(a, b model.Resource) int { return descending(a.Quantity, b.Quantity) }
	case ResourceSortAvailability:
		return func(a, b model.Resource) int { return cmp.Compare(a.Availability, b.Availability) }
	}
	return nil
}

// ResourceStats are the aggregated resource statistics.
type ResourceStats struct {
	Total          int                        `json:"total"`
	ByType         map[model.ResourceType]int `json:"byType"`
	ByAvailability map[model.Availability]int `json:"byAvailability"`
	TotalValue     float64                    `json:"totalValue"`
}

// ComputeResourceStats aggregates the resources, the total value is the sum of
// cost times quantity.
func ComputeResourceStats(resources []model.Resource) ResourceStats {
	stats := ResourceStats{
		Total:          len(resources),
		ByType:         make(map[model.ResourceType]int, len(model.ResourceTypes)),
		ByAvailability: make(map[model.Availability]int, len(model.Availabilities)),
	}
	for _, t := range model.ResourceTypes {
		stats.ByType[t] = 0
	}
	for _, a := range model.Availabilities {
		stats.ByAvailability[a] = 0
	}

	for _, r := range resources {
		stats.ByType[r.Type]++
		stats.ByAvailability[r.Availability]++
		stats.TotalValue += r.Value()
	}

	return stats
}
