package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

// ProjectGetCommand shows the detail of a project.
type ProjectGetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewProjectGetCommand returns the project get command.
func NewProjectGetCommand(rootCmd *RootCommand, projectCmd *ProjectCommand) *ProjectGetCommand {
	c := &ProjectGetCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Cmd.Command("get", "Show a project.")
	c.Cmd.Arg("id", "Project ID.").Required().StringVar(&c.id)

	return c
}

func (c ProjectGetCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectGetCommand) Run(ctx context.Context) error {
	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	p, err := a.Projects.Select(ctx, c.id)
	if err != nil {
		return fmt.Errorf("could not get project: %w", err)
	}

	if err := c.rootCmd.Printer().PrintProject(*p); err != nil {
		return fmt.Errorf("could not print project: %w", err)
	}

	return nil
}
