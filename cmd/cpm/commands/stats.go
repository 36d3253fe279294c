package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cpm/internal/app/report"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/view"
)

// StatsCommand shows the projects dashboard.
type StatsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	search    string
	status    string
	sort      string
}

// NewStatsCommand returns the stats command.
func NewStatsCommand(rootCmd *RootCommand, app *kingpin.Application) *StatsCommand {
	c := &StatsCommand{rootCmd: rootCmd}

	statuses := append([]string{view.FilterAll}, enumValues(model.ProjectStatuses)...)
	c.Cmd = app.Command("stats", "Show the projects dashboard with statistics.")
	c.Cmd.Flag("project", "Add the detail of a project with its tasks and resources.").Short('p').StringVar(&c.projectID)
	c.Cmd.Flag("search", "Only projects whose name or description contain the text.").StringVar(&c.search)
	c.Cmd.Flag("status", "Filter by status.").Default(view.FilterAll).EnumVar(&c.status, statuses...)
	c.Cmd.Flag("sort", "Sort key (name, startDate, endDate, budget, progress, status).").StringVar(&c.sort)

	return c
}

func (c StatsCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatsCommand) Run(ctx context.Context) error {
	sortKey, err := view.ParseProjectSortKey(c.sort)
	if err != nil {
		return err
	}

	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	d, err := a.Report.Run(ctx, report.Request{
		Filter:    view.ProjectFilter{Search: c.search, Status: c.status},
		Sort:      sortKey,
		ProjectID: c.projectID,
	})
	if err != nil {
		return fmt.Errorf("could not build dashboard: %w", err)
	}

	if err := c.rootCmd.Printer().PrintDashboard(*d); err != nil {
		return fmt.Errorf("could not print dashboard: %w", err)
	}

	return nil
}
