package commands

import (
	"context"

	"github.com/alecthomas/kingpin/v2"
)

// ResourceDeleteCommand deletes a resource.
type ResourceDeleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewResourceDeleteCommand returns the resource delete command.
func NewResourceDeleteCommand(rootCmd *RootCommand, resourceCmd *ResourceCommand) *ResourceDeleteCommand {
	c := &ResourceDeleteCommand{rootCmd: rootCmd}

	c.Cmd = resourceCmd.Cmd.Command("delete", "Delete a resource.").Alias("rm")
	c.Cmd.Arg("id", "Resource ID.").Required().StringVar(&c.id)

	return c
}

func (c ResourceDeleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c ResourceDeleteCommand) Run(ctx context.Context) error {
	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	err = a.Resources.Delete(ctx, c.id)
	if err := a.printMutation(c.rootCmd, err); err != nil {
		return err
	}

	return nil
}
