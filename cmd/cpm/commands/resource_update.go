package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cpm/internal/model"
)

// ResourceUpdateCommand updates the set fields of a resource.
type ResourceUpdateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id           string
	name         optional[string]
	typ          optional[string]
	category     optional[string]
	availability optional[string]
	cost         optional[float64]
	unit         optional[string]
	quantity     optional[float64]
	location     optional[string]
	projects     optional[string]
	specs        optional[[]string]
}

// NewResourceUpdateCommand returns the resource update command.
func NewResourceUpdateCommand(rootCmd *RootCommand, resourceCmd *ResourceCommand) *ResourceUpdateCommand {
	c := &ResourceUpdateCommand{rootCmd: rootCmd}

	c.Cmd = resourceCmd.Cmd.Command("update", "Update a resource, only the set flags are changed.")
	c.Cmd.Arg("id", "Resource ID.").Required().StringVar(&c.id)
	c.Cmd.Flag("name", "Resource name.").IsSetByUser(&c.name.set).StringVar(&c.name.value)
	c.Cmd.Flag("type", "Resource type.").IsSetByUser(&c.typ.set).EnumVar(&c.typ.value, enumValues(model.ResourceTypes)...)
	c.Cmd.Flag("category", "Resource category.").IsSetByUser(&c.category.set).StringVar(&c.category.value)
	c.Cmd.Flag("availability", "Resource availability.").IsSetByUser(&c.availability.set).EnumVar(&c.availability.value, enumValues(model.Availabilities)...)
	c.Cmd.Flag("cost", "Cost per unit in NOK.").IsSetByUser(&c.cost.set).Float64Var(&c.cost.value)
	c.Cmd.Flag("unit", "Unit of the cost and quantity.").IsSetByUser(&c.unit.set).StringVar(&c.unit.value)
	c.Cmd.Flag("quantity", "Quantity in stock.").IsSetByUser(&c.quantity.set).Float64Var(&c.quantity.value)
	c.Cmd.Flag("location", "Resource location.").IsSetByUser(&c.location.set).StringVar(&c.location.value)
	c.Cmd.Flag("projects", "Comma separated assigned project IDs, empty clears them.").IsSetByUser(&c.projects.set).StringVar(&c.projects.value)
	c.Cmd.Flag("spec", "Specification as KEY=VALUE, replaces all of them, can be repeated.").IsSetByUser(&c.specs.set).StringsVar(&c.specs.value)

	return c
}

func (c ResourceUpdateCommand) Name() string { return c.Cmd.FullCommand() }

func (c ResourceUpdateCommand) Run(ctx context.Context) error {
	var specs *map[string]string
	if c.specs.set {
		m, err := parseSpecs(c.specs.value)
		if err != nil {
			return err
		}
		specs = &m
	}

	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	r, err := a.Resources.Update(ctx, model.ResourceUpdate{
		ID:               c.id,
		Name:             c.name.ptr(),
		Type:             optionalEnum[model.ResourceType](c.typ),
		Category:         c.category.ptr(),
		Availability:     optionalEnum[model.Availability](c.availability),
		Cost:             c.cost.ptr(),
		Unit:             c.unit.ptr(),
		Quantity:         c.quantity.ptr(),
		Location:         c.location.ptr(),
		AssignedProjects: optionalList(c.projects),
		Specifications:   specs,
	})
	if err := a.printMutation(c.rootCmd, err); err != nil {
		return err
	}

	if err := c.rootCmd.Printer().PrintResources([]model.Resource{*r}); err != nil {
		return fmt.Errorf("could not print resource: %w", err)
	}

	return nil
}
