// Package view has the pure derivations the presentation reads from the cache:
// filtered and sorted sequences and aggregated statistics. Nothing here mutates
// its input.
package view

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/slok/cpm/internal/model"
)

// FilterAll matches any status, type or availability.
const FilterAll = "all"

// matchesText returns true if the search is empty or any of the fields contains it,
// ignoring case.
func matchesText(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// matchesEnum returns true if the filter is empty, "all" or equal to the value.
func matchesEnum[T ~string](filter string, v T) bool {
	return filter == "" || filter == FilterAll || filter == string(v)
}

// derive filters in a copy and stable sorts it, a nil comparator keeps the input order.
func derive[T any](items []T, match func(T) bool, compare func(a, b T) int) []T {
	res := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			res = append(res, it)
		}
	}
	if compare != nil {
		slices.SortStableFunc(res, compare)
	}
	return res
}

func compareDates(a, b model.Date) int { return a.Time.Compare(b.Time) }

func average(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

func parseKey[T ~string](s string, valid []T, kind string) (T, error) {
	if s == "" {
		return "", nil
	}
	for _, k := range valid {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	names := make([]string, 0, len(valid))
	for _, k := range valid {
		names = append(names, string(k))
	}
	return "", fmt.Errorf("unknown %s sort key %q, valid keys are: %s: %w", kind, s, strings.Join(names, ", "), model.ErrNotValid)
}

// descending is cmp.Compare with the order reversed.
func descending[T cmp.Ordered](a, b T) int { return cmp.Compare(b, a) }
