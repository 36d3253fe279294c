package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cpm/internal/model"
)

// TaskCreateCommand creates a task.
type TaskCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	projectID     string
	title         string
	description   string
	status        string
	priority      string
	assignedTo    string
	startDate     string
	dueDate       string
	completedDate string
	dependencies  string
	progress      int
}

// NewTaskCreateCommand returns the task create command.
func NewTaskCreateCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskCreateCommand {
	c := &TaskCreateCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("create", "Create a task.")
	c.Cmd.Flag("project", "Project ID.").Short('p').Required().StringVar(&c.projectID)
	c.Cmd.Flag("title", "Task title.").Required().StringVar(&c.title)
	c.Cmd.Flag("description", "Task description.").StringVar(&c.description)
	c.Cmd.Flag("status", "Task status.").Default(string(model.TaskStatusTodo)).EnumVar(&c.status, enumValues(model.TaskStatuses)...)
	c.Cmd.Flag("priority", "Task priority.").Default(string(model.TaskPriorityMedium)).EnumVar(&c.priority, enumValues(model.TaskPriorities)...)
	c.Cmd.Flag("assigned-to", "Comma separated assignees.").StringVar(&c.assignedTo)
	c.Cmd.Flag("start-date", "Start date (YYYY-MM-DD).").StringVar(&c.startDate)
	c.Cmd.Flag("due-date", "Due date (YYYY-MM-DD).").StringVar(&c.dueDate)
	c.Cmd.Flag("completed-date", "Completion date (YYYY-MM-DD).").StringVar(&c.completedDate)
	c.Cmd.Flag("depends-on", "Comma separated IDs of the tasks this one depends on.").StringVar(&c.dependencies)
	c.Cmd.Flag("progress", "Progress percentage (0-100).").IntVar(&c.progress)

	return c
}

func (c TaskCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskCreateCommand) Run(ctx context.Context) error {
	start, err := parseDate(c.startDate)
	if err != nil {
		return err
	}
	due, err := parseDate(c.dueDate)
	if err != nil {
		return err
	}
	var completed *model.Date
	if c.completedDate != "" {
		d, err := model.ParseDate(c.completedDate)
		if err != nil {
			return err
		}
		completed = &d
	}

	a, err := newAppClient(c.rootCmd)
	if err != nil {
		return err
	}

	t, err := a.Tasks.Create(ctx, model.TaskCreate{
		ProjectID:     c.projectID,
		Title:         c.title,
		Description:   c.description,
		Status:        model.TaskStatus(c.status),
		Priority:      model.TaskPriority(c.priority),
		AssignedTo:    splitList(c.assignedTo),
		StartDate:     start,
		DueDate:       due,
		CompletedDate: completed,
		Dependencies:  splitList(c.dependencies),
		Progress:      c.progress,
	})
	if err := a.printMutation(c.rootCmd, err); err != nil {
		return err
	}

	if err := c.rootCmd.Printer().PrintTasks([]model.Task{*t}); err != nil {
		return fmt.Errorf("could not print task: %w", err)
	}

	return nil
}
