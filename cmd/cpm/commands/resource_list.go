package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cpm/internal/app/resource"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/view"
)

// ResourceListCommand lists the resources.
type ResourceListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID    string
	available    bool
	search       string
	typ          string
	availability string
	sort         string
}

// NewResourceListCommand returns the resource list command.
func NewResourceListCommand(rootCmd *RootCommand, resourceCmd *ResourceCommand) *ResourceListCommand {
	c := &ResourceListCommand{rootCmd: rootCmd}

	types := append([]string{view.FilterAll}, enumValues(model.ResourceTypes)...)
	availabilities := append([]string{view.FilterAll}, enumValues(model.Availabilities)...)
	c.Cmd = resourceCmd.Cmd.Command("list", "List the resources.").Alias("ls")
	c.Cmd.Flag("project", "Only the resources assigned to the project.").Short('p').StringVar(&c.projectID)
	c.Cmd.Flag("available", "Only the available resources, asked to the API.").BoolVar(&c.available)
	c.Cmd.Flag("search", "Only resources whose name or category contain the text.").StringVar(&c.search)
	c.Cmd.Flag("type", "Filter by type.").Default(view.FilterAll).EnumVar(&c.typ, types...)
	c.Cmd.Flag("availability", "Filter by availability.").Default(view.FilterAll).EnumVar(&c.availability, availabilities...)
	c.Cmd.Flag("sort", "Sort key (name, cost, quantity, availability).").StringVar(&c.sort)

	return c
}

func (c ResourceListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ResourceListCommand) Run(ctx context.Context) error {
	sortKey, err := view.ParseResourceSortKey(c.sort)
	if err != nil {
		return err
	}

	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	resources, err := a.Resources.Fetch(ctx, resource.FetchRequest{
		ProjectID:     c.projectID,
		AvailableOnly: c.available,
	})
	if err != nil {
		return fmt.Errorf("could not list resources: %w", err)
	}

	resources = view.DeriveResources(resources, view.ResourceFilter{
		Search:       c.search,
		Type:         c.typ,
		Availability: c.availability,
	}, sortKey)
	if err := c.rootCmd.Printer().PrintResources(resources); err != nil {
		return fmt.Errorf("could not print resources: %w", err)
	}

	return nil
}
