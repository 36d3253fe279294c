package printer

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/slok/cpm/internal/app/report"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/notify"
)

// TablePrinter prints project information in a table format.
type TablePrinter struct {
	writer io.Writer
	now    func() time.Time
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w, now: time.Now}
}

func (t *TablePrinter) newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
}

// PrintProjects prints projects in a table format.
func (t *TablePrinter) PrintProjects(projects []model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	tw := t.newTabWriter()
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tPROGRESS\tBUDGET\tSTART\tEND\tMANAGER")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.Name,
			p.Status,
			p.Progress,
			FormatAmount(p.Budget),
			p.StartDate,
			p.EndDate,
			p.Manager,
		)
	}

	return nil
}

// PrintProject prints the detail of a project.
func (t *TablePrinter) PrintProject(p model.Project) error {
	fmt.Fprintf(t.writer, "Name:         %s\n", p.Name)
	fmt.Fprintf(t.writer, "ID:           %s\n", p.ID)
	fmt.Fprintf(t.writer, "Status:       %s\n", p.Status)
	fmt.Fprintf(t.writer, "Progress:     %d%%\n", p.Progress)
	fmt.Fprintf(t.writer, "Budget:       %s\n", FormatCurrency(p.Budget))
	fmt.Fprintf(t.writer, "Location:     %s\n", p.Location)
	fmt.Fprintf(t.writer, "Manager:      %s\n", p.Manager)
	fmt.Fprintf(t.writer, "Start date:   %s\n", p.StartDate)
	fmt.Fprintf(t.writer, "End date:     %s\n", p.EndDate)

	if p.Description != "" {
		fmt.Fprintf(t.writer, "Description:  %s\n", p.Description)
	}
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(t.writer, "Created:      %s\n", FormatTimestamp(p.CreatedAt))
	}
	if !p.UpdatedAt.IsZero() {
		fmt.Fprintf(t.writer, "Updated:      %s\n", TimeAgo(p.UpdatedAt))
	}

	return nil
}

// PrintTasks prints tasks in a table format.
func (t *TablePrinter) PrintTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	now := t.now()
	tw := t.newTabWriter()
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPRIORITY\tPROGRESS\tDUE DATE\tDUE")
	for _, task := range tasks {
		due := FormatDue(task.DueDate, now)
		if task.Status == model.TaskStatusCompleted {
			due = "done"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d%%\t%s\t%s\n",
			task.ID,
			task.Title,
			task.Status,
			task.Priority,
			task.Progress,
			task.DueDate,
			due,
		)
	}

	return nil
}

// PrintResources prints resources in a table format.
func (t *TablePrinter) PrintResources(resources []model.Resource) error {
	if len(resources) == 0 {
		return nil
	}

	tw := t.newTabWriter()
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tAVAILABILITY\tQUANTITY\tCOST\tLOCATION")
	for _, r := range resources {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Name,
			r.Type,
			r.Availability,
			FormatQuantity(r.Quantity, r.Unit),
			FormatAmount(r.Cost),
			r.Location,
		)
	}

	return nil
}

// PrintDashboard prints the project statistics, the projects and the optional project detail.
func (t *TablePrinter) PrintDashboard(d report.Dashboard) error {
	s := d.ProjectStats
	fmt.Fprintf(t.writer, "Projects:      %d (%s)\n", s.Total, formatCounts(s.ByStatus, model.ProjectStatuses))
	fmt.Fprintf(t.writer, "Total budget:  %s\n", FormatCurrency(s.TotalBudget))
	fmt.Fprintf(t.writer, "Avg progress:  %d%%\n", s.AvgProgress)
	fmt.Fprintln(t.writer)

	if len(d.Projects) == 0 {
		fmt.Fprintln(t.writer, "No projects found")
	}
	if err := t.PrintProjects(d.Projects); err != nil {
		return err
	}

	if d.Project == nil {
		return nil
	}
	detail := d.Project

	fmt.Fprintln(t.writer)
	if err := t.PrintProject(detail.Project); err != nil {
		return err
	}

	fmt.Fprintln(t.writer)
	if detail.TasksError != "" {
		fmt.Fprintf(t.writer, "Tasks:         error: %s\n", detail.TasksError)
	} else {
		ts := detail.TaskStats
		fmt.Fprintf(t.writer, "Tasks:         %d (%s)\n", ts.Total, formatCounts(ts.ByStatus, model.TaskStatuses))
		fmt.Fprintf(t.writer, "Overdue:       %d\n", ts.Overdue)
		fmt.Fprintf(t.writer, "Avg progress:  %d%%\n", ts.AvgProgress)
		if err := t.PrintTasks(detail.Tasks); err != nil {
			return err
		}
	}

	fmt.Fprintln(t.writer)
	if detail.ResourcesError != "" {
		fmt.Fprintf(t.writer, "Resources:     error: %s\n", detail.ResourcesError)
	} else {
		rs := detail.ResourceStats
		fmt.Fprintf(t.writer, "Resources:     %d (%s)\n", rs.Total, formatCounts(rs.ByAvailability, model.Availabilities))
		fmt.Fprintf(t.writer, "Total value:   %s\n", FormatCurrency(rs.TotalValue))
		if err := t.PrintResources(detail.Resources); err != nil {
			return err
		}
	}

	return nil
}

// PrintNotification prints the visible notification, hidden ones print nothing.
func (t *TablePrinter) PrintNotification(n notify.State) error {
	if !n.Visible {
		return nil
	}
	fmt.Fprintf(t.writer, "[%s] %s\n", n.Severity, n.Message)
	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

// formatCounts formats the counts in the order of the known keys, unknown keys go last sorted.
func formatCounts[K ~string](counts map[K]int, known []K) string {
	keys := slices.Clone(known)
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}
