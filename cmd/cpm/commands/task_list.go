package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/view"
)

// TaskListCommand lists the tasks of a project.
type TaskListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID string
	search    string
	status    string
	priority  string
	sort      string
}

// NewTaskListCommand returns the task list command.
func NewTaskListCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskListCommand {
	c := &TaskListCommand{rootCmd: rootCmd}

	statuses := append([]string{view.FilterAll}, enumValues(model.TaskStatuses)...)
	priorities := append([]string{view.FilterAll}, enumValues(model.TaskPriorities)...)
	c.Cmd = taskCmd.Cmd.Command("list", "List the tasks of a project.").Alias("ls")
	c.Cmd.Flag("project", "Project ID.").Short('p').Required().StringVar(&c.projectID)
	c.Cmd.Flag("search", "Only tasks whose title or description contain the text.").StringVar(&c.search)
	c.Cmd.Flag("status", "Filter by status.").Default(view.FilterAll).EnumVar(&c.status, statuses...)
	c.Cmd.Flag("priority", "Filter by priority.").Default(view.FilterAll).EnumVar(&c.priority, priorities...)
	c.Cmd.Flag("sort", "Sort key (title, dueDate, priority, progress, status).").Default(string(view.TaskSortDueDate)).StringVar(&c.sort)

	return c
}

func (c TaskListCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskListCommand) Run(ctx context.Context) error {
	sortKey, err := view.ParseTaskSortKey(c.sort)
	if err != nil {
		return err
	}

	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	tasks, err := a.Tasks.Fetch(ctx, c.projectID)
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}

	tasks = view.DeriveTasks(tasks, view.TaskFilter{
		Search:    c.search,
		Status:    c.status,
		Priority:  c.priority,
		ProjectID: c.projectID,
	}, sortKey)
	if err := c.rootCmd.Printer().PrintTasks(tasks); err != nil {
		return fmt.Errorf("could not print tasks: %w", err)
	}

	return nil
}
