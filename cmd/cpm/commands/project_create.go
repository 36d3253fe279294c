package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cpm/internal/model"
)

// ProjectCreateCommand creates a project.
type ProjectCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name        string
	description string
	startDate   string
	endDate     string
	status      string
	budget      float64
	location    string
	manager     string
	progress    optional[int]
}

// NewProjectCreateCommand returns the project create command.
func NewProjectCreateCommand(rootCmd *RootCommand, projectCmd *ProjectCommand) *ProjectCreateCommand {
	c := &ProjectCreateCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Cmd.Command("create", "Create a project.")
	c.Cmd.Flag("name", "Project name.").Required().StringVar(&c.name)
	c.Cmd.Flag("description", "Project description.").StringVar(&c.description)
	c.Cmd.Flag("start-date", "Start date (YYYY-MM-DD).").Required().StringVar(&c.startDate)
	c.Cmd.Flag("end-date", "End date (YYYY-MM-DD).").Required().StringVar(&c.endDate)
	c.Cmd.Flag("status", "Project status.").Default(string(model.ProjectStatusPlanning)).EnumVar(&c.status, enumValues(model.ProjectStatuses)...)
	c.Cmd.Flag("budget", "Budget in NOK.").Float64Var(&c.budget)
	c.Cmd.Flag("location", "Project location.").StringVar(&c.location)
	c.Cmd.Flag("manager", "Project manager.").StringVar(&c.manager)
	c.Cmd.Flag("progress", "Progress percentage (0-100), 0 when missing.").IsSetByUser(&c.progress.set).IntVar(&c.progress.value)

	return c
}

func (c ProjectCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectCreateCommand) Run(ctx context.Context) error {
	start, err := model.ParseDate(c.startDate)
	if err != nil {
		return err
	}
	end, err := model.ParseDate(c.endDate)
	if err != nil {
		return err
	}

	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	p, err := a.Projects.Create(ctx, model.ProjectCreate{
		Name:        c.name,
		Description: c.description,
		StartDate:   start,
		EndDate:     end,
		Status:      model.ProjectStatus(c.status),
		Budget:      c.budget,
		Location:    c.location,
		Manager:     c.manager,
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
