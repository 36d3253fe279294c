package commands

import (
	"context"

	"github.com/alecthomas/kingpin/v2"
)

// ProjectDeleteCommand deletes a project.
type ProjectDeleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewProjectDeleteCommand returns the project delete command.
func NewProjectDeleteCommand(rootCmd *RootCommand, projectCmd *ProjectCommand) *ProjectDeleteCommand {
	c := &ProjectDeleteCommand{rootCmd: rootCmd}

	c.Cmd = projectCmd.Cmd.Command("delete", "Delete a project and its tasks.").Alias("rm")
	c.Cmd.Arg("id", "Project ID.").Required().StringVar(&c.id)

	return c
}

func (c ProjectDeleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProjectDeleteCommand) Run(ctx context.Context) error {
	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	err = a.Projects.Delete(ctx, c.id)
	if err := a.printMutation(c.rootCmd, err); err != nil {
		return err
	}

	return nil
}
