package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cpm/internal/model"
)

// ProjectUpdateCommand updates the set fields of a project.
type ProjectUpdateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id          string
	name        optional[string]
	description optional[string]
	startDate   optional[string]
	endDate     optional[string]
	status      optional[string]
	budget      optional[float64]
	location    optional[string]
	manager     optional[string]
	progress    optional[int]
}

// NewProjectUpdateCommand returns the project update command.
func NewProjectUpdateCommand(rootCmd *RootCommand, projectCmd *ProjectCommand) *ProjectUpdateCommand {
	c := &ProjectUpdateCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Cmd.Command("update", "Update a project, only the set flags are changed.")
	c.Cmd.Arg("id", "Project ID.").Required().StringVar(&c.id)
	c.Cmd.Flag("name", "Project name.").IsSetByUser(&c.name.set).StringVar(&c.name.value)
	c.Cmd.Flag("description", "Project description.").IsSetByUser(&c.description.set).StringVar(&c.description.value)
	c.Cmd.Flag("start-date", "Start date (YYYY-MM-DD).").IsSetByUser(&c.startDate.set).StringVar(&c.startDate.value)
	c.Cmd.Flag("end-date", "End date (YYYY-MM-DD).").IsSetByUser(&c.endDate.set).StringVar(&c.endDate.value)
	c.Cmd.Flag("status", "Project status.").IsSetByUser(&c.status.set).EnumVar(&c.status.value, enumValues(model.ProjectStatuses)...)
	c.Cmd.Flag("budget", "Budget in NOK.").IsSetByUser(&c.budget.set).Float64Var(&c.budget.value)
	c.Cmd.Flag("location", "Project location.").IsSetByUser(&c.location.set).StringVar(&c.location.value)
	c.Cmd.Flag("manager", "Project manager.").IsSetByUser(&c.manager.set).StringVar(&c.manager.value)
	c.Cmd.Flag("progress", "Progress percentage (0-100).").IsSetByUser(&c.progress.set).IntVar(&c.progress.value)

	return c
}

func (c ProjectUpdateCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectUpdateCommand) Run(ctx context.Context) error {
	start, err := optionalDate(c.startDate)
	if err != nil {
		return err
	}
	end, err := optionalDate(c.endDate)
	if err != nil {
		return err
	}

	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	// The update is validated against the current project.
	if _, err := a.Projects.Select(ctx, c.id); err != nil {
		return fmt.Errorf("could not get project: %w", err)
	}

	p, err := a.Projects.Update(ctx, model.ProjectUpdate{
		ID:          c.id,
		Name:        c.name.ptr(),
		Description: c.description.ptr(),
		StartDate:   start,
		EndDate:     end,
		Status:      optionalEnum[model.ProjectStatus](c.status),
		Budget:      c.budget.ptr(),
		Location:    c.location.ptr(),
		Manager:     c.manager.ptr(),
		Progress:    c.progress.ptr(),
	})
	if err := a.printMutation(c.rootCmd, err); err != nil {
		return err
	}

	if err := c.rootCmd.Printer().PrintProject(*p); err != nil {
		return fmt.Errorf("could not print project: %w", err)
	}

	return nil
}
