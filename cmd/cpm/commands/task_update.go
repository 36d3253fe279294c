package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cpm/internal/model"
)

// TaskUpdateCommand updates the set fields of a task.
type TaskUpdateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id            string
	projectID     optional[string]
	title         optional[string]
	description   optional[string]
	status        optional[string]
	priority      optional[string]
	assignedTo    optional[string]
	startDate     optional[string]
	dueDate       optional[string]
	completedDate optional[string]
	dependencies  optional[string]
	progress      optional[int]
}

// NewTaskUpdateCommand returns the task update command.
func NewTaskUpdateCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskUpdateCommand {
	c := &TaskUpdateCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("update", "Update a task, only the set flags are changed.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)
	c.Cmd.Flag("project", "Move the task to another project.").IsSetByUser(&c.projectID.set).StringVar(&c.projectID.value)
	c.Cmd.Flag("title", "Task title.").IsSetByUser(&c.title.set).StringVar(&c.title.value)
	c.Cmd.Flag("description", "Task description.").IsSetByUser(&c.description.set).StringVar(&c.description.value)
	c.Cmd.Flag("status", "Task status.").IsSetByUser(&c.status.set).EnumVar(&c.status.value, enumValues(model.TaskStatuses)...)
	c.Cmd.Flag("priority", "Task priority.").IsSetByUser(&c.priority.set).EnumVar(&c.priority.value, enumValues(model.TaskPriorities)...)
	c.Cmd.Flag("assigned-to", "Comma separated assignees, empty clears them.").IsSetByUser(&c.assignedTo.set).StringVar(&c.assignedTo.value)
	c.Cmd.Flag("start-date", "Start date (YYYY-MM-DD).").IsSetByUser(&c.startDate.set).StringVar(&c.startDate.value)
	c.Cmd.Flag("due-date", "Due date (YYYY-MM-DD).").IsSetByUser(&c.dueDate.set).StringVar(&c.dueDate.value)
	c.Cmd.Flag("completed-date", "Completion date (YYYY-MM-DD).").IsSetByUser(&c.completedDate.set).StringVar(&c.completedDate.value)
	c.Cmd.Flag("depends-on", "Comma separated dependency task IDs, empty clears them.").IsSetByUser(&c.dependencies.set).StringVar(&c.dependencies.value)
	c.Cmd.Flag("progress", "Progress percentage (0-100).").IsSetByUser(&c.progress.set).IntVar(&c.progress.value)

	return c
}

func (c TaskUpdateCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskUpdateCommand) Run(ctx context.Context) error {
	start, err := optionalDate(c.startDate)
	if err != nil {
		return err
	}
	due, err := optionalDate(c.dueDate)
	if err != nil {
		return err
	}
	completed, err := optionalDate(c.completedDate)
	if err != nil {
		return err
	}

	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	t, err := a.Tasks.Update(ctx, model.TaskUpdate{
		ID:            c.id,
		ProjectID:     c.projectID.ptr(),
		Title:         c.title.ptr(),
		Description:   c.description.ptr(),
		Status:        optionalEnum[model.TaskStatus](c.status),
		Priority:      optionalEnum[model.TaskPriority](c.priority),
		AssignedTo:    optionalList(c.assignedTo),
		StartDate:     start,
		DueDate:       due,
		CompletedDate: completed,
		Dependencies:  optionalList(c.dependencies),
		Progress:      c.progress.ptr(),
	})
	if err := a.printMutation(c.rootCmd, err); err != nil {
		return err
	}

	if err := c.rootCmd.Printer().PrintTasks([]model.Task{*t}); err != nil {
		return fmt.Errorf("could not print task: %w", err)
	}

	return nil
}
