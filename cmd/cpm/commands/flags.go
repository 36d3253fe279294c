package commands

import (
	"fmt"
	"strings"

	"github.com/slok/cpm/internal/model"
)

// optional is a flag value that tracks if the user set it, used by the partial updates.
type optional[T any] struct {
	value T
	set   bool
}

func (o optional[T]) ptr() *T {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// optionalEnum converts an optional string flag into a typed enum pointer.
func optionalEnum[T ~string](o optional[string]) *T {
	if !o.set {
		return nil
	}
	v := T(o.value)
	return &v
}

func optionalDate(o optional[string]) (*model.Date, error) {
	if !o.set {
		return nil, nil
	}
	d, err := parseDate(o.value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalList(o optional[string]) *[]string {
	if !o.set {
		return nil
	}
	l := splitList(o.value)
	return &l
}

// parseDate parses a date flag, empty means no date.
func parseDate(s string) (model.Date, error) {
	if strings.TrimSpace(s) == "" {
		return model.Date{}, nil
	}
	return model.ParseDate(s)
}

// splitList splits a comma separated flag value, empty items are ignored.
func splitList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseSpecs parses key=value resource specifications.
func parseSpecs(specs []string) (map[string]string, error) {
	m := make(map[string]string, len(specs))
	for _, spec := range specs {
		k, v, ok := strings.Cut(spec, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid specification %q, must be KEY=VALUE: %w", spec, model.ErrNotValid)
		}
		m[k] = strings.TrimSpace(v)
	}
	return m, nil
}

func enumValues[T ~string](values []T) []string {
	s := make([]string, 0, len(values))
	for _, v := range values {
		s = append(s, string(v))
	}
	return s
}
