package model

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// ResourceType is the kind of a resource.
type ResourceType string

const (
	ResourceTypeLabor     ResourceType = "labor"
	ResourceTypeEquipment ResourceType = "equipment"
	ResourceTypeMaterial  ResourceType = "material"
)

// ResourceTypes lists every valid resource type.
var ResourceTypes = []ResourceType{
	ResourceTypeLabor,
	ResourceTypeEquipment,
	ResourceTypeMaterial,
}

// Valid returns true if the type is a known resource type.
func (t ResourceType) Valid() bool { return slices.Contains(ResourceTypes, t) }

// Availability is the availability state of a resource.
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityInUse       Availability = "in-use"
	AvailabilityMaintenance Availability = "maintenance"
	AvailabilityUnavailable Availability = "unavailable"
)

// Availabilities lists every valid availability state.
var Availabilities = []Availability{
	AvailabilityAvailable,
	AvailabilityInUse,
	AvailabilityMaintenance,
	AvailabilityUnavailable,
}

// Valid returns true if the availability is a known one.
func (a Availability) Valid() bool { return slices.Contains(Availabilities, a) }

// Resource represents labor, equipment or material usable by projects.
type Resource struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Type             ResourceType      `json:"type"`
	Category         string            `json:"category"`
	Availability     Availability      `json:"availability"`
	Cost             float64           `json:"cost"`
	Unit             string            `json:"unit"`
	Quantity         float64           `json:"quantity"`
	Location         string            `json:"location"`
	AssignedProjects []string          `json:"assignedProjects"`
	Specifications   map[string]string `json:"specifications"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// EntityID returns the resource identifier.
func (r Resource) EntityID() string { return r.ID }

// Value returns the total value of the resource stock (cost per unit * quantity).
func (r Resource) Value() float64 { return r.Cost * r.Quantity }

// Validate validates a complete resource.
func (r Resource) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("resource id is required: %w", ErrNotValid)
	}

	return validateResourceFields(r.Name, r.Type, r.Availability, r.Cost, r.Quantity)
}

// ResourceCreate is the payload to create a resource.
type ResourceCreate struct {
	Name             string            `json:"name"`
	Type             ResourceType      `json:"type"`
	Category         string            `json:"category"`
	Availability     Availability      `json:"availability"`
	Cost             float64           `json:"cost"`
	Unit             string            `json:"unit"`
	Quantity         float64           `json:"quantity"`
	Location         string            `json:"location"`
	AssignedProjects []string          `json:"assignedProjects"`
	Specifications   map[string]string `json:"specifications"`
}

// Validate validates the resource creation payload.
func (c ResourceCreate) Validate() error {
	return validateResourceFields(c.Name, c.Type, c.Availability, c.Cost, c.Quantity)
}

// ToResource builds the full resource from the payload.
func (c ResourceCreate) ToResource(id string, now time.Time) Resource {
	return Resource{
		ID:               id,
		Name:             c.Name,
		Type:             c.Type,
		Category:         c.Category,
		Availability:     c.Availability,
		Cost:             c.Cost,
		Unit:             c.Unit,
		Quantity:         c.Quantity,
		Location:         c.Location,
		AssignedProjects: slices.Clone(c.AssignedProjects),
		Specifications:   maps.Clone(c.Specifications),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ResourceUpdate is a partial resource update, only the set fields are changed.
type ResourceUpdate struct {
	ID               string             `json:"id"`
	Name             *string            `json:"name,omitempty"`
	Type             *ResourceType      `json:"type,omitempty"`
	Category         *string            `json:"category,omitempty"`
	Availability     *Availability      `json:"availability,omitempty"`
	Cost             *float64           `json:"cost,omitempty"`
	Unit             *string            `json:"unit,omitempty"`
	Quantity         *float64           `json:"quantity,omitempty"`
	Location         *string            `json:"location,omitempty"`
	AssignedProjects *[]string          `json:"assignedProjects,omitempty"`
	Specifications   *map[string]string `json:"specifications,omitempty"`
}

// Validate validates the fields present on the update.
func (u ResourceUpdate) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("resource id is required: %w", ErrNotValid)
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return fmt.Errorf("resource name can't be empty: %w", ErrNotValid)
	}
	if u.Type != nil && !u.Type.Valid() {
		return fmt.Errorf("unknown resource type %q: %w", *u.Type, ErrNotValid)
	}
	if u.Availability != nil && !u.Availability.Valid() {
		return fmt.Errorf("unknown resource availability %q: %w", *u.Availability, ErrNotValid)
	}
	if u.Cost != nil && *u.Cost < 0 {
		return fmt.Errorf("cost can't be negative: %w", ErrNotValid)
	}
	if u.Quantity != nil && *u.Quantity < 0 {
		return fmt.Errorf("quantity can't be negative: %w", ErrNotValid)
	}

	return nil
}

// Apply returns a copy of r with the update fields applied.
func (u ResourceUpdate) Apply(r Resource) Resource {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Type != nil {
		r.Type = *u.Type
	}
	if u.Category != nil {
		r.Category = *u.Category
	}
	if u.Availability != nil {
		r.Availability = *u.Availability
	}
	if u.Cost != nil {
		r.Cost = *u.Cost
	}
	if u.Unit != nil {
		r.Unit = *u.Unit
	}
	if u.Quantity != nil {
		r.Quantity = *u.Quantity
	}
	if u.Location != nil {
		r.Location = *u.Location
	}
	if u.AssignedProjects != nil {
		r.AssignedProjects = slices.Clone(*u.AssignedProjects)
	}
	if u.Specifications != nil {
		r.Specifications = maps.Clone(*u.Specifications)
	}

	return r
}

func validateResourceFields(name string, typ ResourceType, availability Availability, cost, quantity float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("resource name is required: %w", ErrNotValid)
	}
	if !typ.Valid() {
		return fmt.Errorf("unknown resource type %q: %w", typ, ErrNotValid)
	}
	if !availability.Valid() {
		return fmt.Errorf("unknown resource availability %q: %w", availability, ErrNotValid)
	}
	if cost < 0 {
		return fmt.Errorf("cost can't be negative: %w", ErrNotValid)
	}
	if quantity < 0 {
		return fmt.Errorf("quantity can't be negative: %w", ErrNotValid)
	}

	return nil
}
