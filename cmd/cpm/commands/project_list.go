package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/view"
)

// ProjectListCommand lists the projects.
type ProjectListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	search string
	status string
	sort   string
}

// NewProjectListCommand returns the project list command.
func NewProjectListCommand(rootCmd *RootCommand, projectCmd *ProjectCommand) *ProjectListCommand {
	c := &ProjectListCommand{rootCmd: rootCmd}

	statuses := append([]string{view.FilterAll}, enumValues(model.ProjectStatuses)...)
	c.Cmd = projectCmd.Cmd.Command("list", "List the projects.").Alias("ls")
	c.Cmd.Flag("search", "Only projects whose name or description contain the text.").StringVar(&c.search)
	c.Cmd.Flag("status", "Filter by status.").Default(view.FilterAll).EnumVar(&c.status, statuses...)
	c.Cmd.Flag("sort", "Sort key (name, startDate, endDate, budget, progress, status).").StringVar(&c.sort)

	return c
}

func (c ProjectListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectListCommand) Run(ctx context.Context) error {
	sortKey, err := view.ParseProjectSortKey(c.sort)
	if err != nil {
		return err
	}

	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	projects, err := a.Projects.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("could not list projects: %w", err)
	}

	projects = view.DeriveProjects(projects, view.ProjectFilter{Search: c.search, Status: c.status}, sortKey)
	if err := c.rootCmd.Printer().PrintProjects(projects); err != nil {
		return fmt.Errorf("could not print projects: %w", err)
	}

	return nil
}
