package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cpm/internal/model"
)

// ResourceCreateCommand creates a resource.
type ResourceCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name         string
	typ          string
	category     string
	availability string
	cost         float64
	unit         string
	quantity     float64
	location     string
	projects     string
	specs        []string
}

// NewResourceCreateCommand returns the resource create command.
func NewResourceCreateCommand(rootCmd *RootCommand, resourceCmd *ResourceCommand) *ResourceCreateCommand {
	c := &ResourceCreateCommand{rootCmd: rootCmd}

	c.Cmd = resourceCmd.Cmd.Command("create", "Create a resource.")
	c.Cmd.Flag("name", "Resource name.").Required().StringVar(&c.name)
	c.Cmd.Flag("type", "Resource type.").Required().EnumVar(&c.typ, enumValues(model.ResourceTypes)...)
	c.Cmd.Flag("category", "Resource category.").StringVar(&c.category)
	c.Cmd.Flag("availability", "Resource availability.").Default(string(model.AvailabilityAvailable)).EnumVar(&c.availability, enumValues(model.Availabilities)...)
	c.Cmd.Flag("cost", "Cost per unit in NOK.").Float64Var(&c.cost)
	c.Cmd.Flag("unit", "Unit of the cost and quantity (hour, day, m3...).").StringVar(&c.unit)
	c.Cmd.Flag("quantity", "Quantity in stock.").Float64Var(&c.quantity)
	c.Cmd.Flag("location", "Resource location.").StringVar(&c.location)
	c.Cmd.Flag("projects", "Comma separated IDs of the assigned projects.").StringVar(&c.projects)
	c.Cmd.Flag("spec", "Specification as KEY=VALUE, can be repeated.").StringsVar(&c.specs)

	return c
}

func (c ResourceCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c ResourceCreateCommand) Run(ctx context.Context) error {
	specs, err := parseSpecs(c.specs)
	if err != nil {
		return err
	}

	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	r, err := a.Resources.Create(ctx, model.ResourceCreate{
		Name:             c.name,
		Type:             model.ResourceType(c.typ),
		Category:         c.category,
		Availability:     model.Availability(c.availability),
		Cost:             c.cost,
		Unit:             c.unit,
		Quantity:         c.quantity,
		Location:         c.location,
		AssignedProjects: splitList(c.projects),
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
