package commands

import (
	"context"

	"github.com/alecthomas/kingpin/v2"
)

// TaskDeleteCommand deletes a task.
type TaskDeleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewTaskDeleteCommand returns the task delete command.
func NewTaskDeleteCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskDeleteCommand {
	c := &TaskDeleteCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("delete", "Delete a task.").Alias("rm")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)

	return c
}

func (c TaskDeleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskDeleteCommand) Run(ctx context.Context) error {
	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	err = a.Tasks.Delete(ctx, c.id)
	if err := a.printMutation(c.rootCmd, err); err != nil {
		return err
	}

	return nil
}
