package printer

import (
	"encoding/json"
	"io"

	"github.com/slok/cpm/internal/app/report"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/notify"
)

// JSONPrinter prints project information in JSON format, using the API wire shapes.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintProjects prints projects in JSON format, an empty list is printed as [].
func (j *JSONPrinter) PrintProjects(projects []model.Project) error {
	if projects == nil {
		projects = []model.Project{}
	}
	return j.encode(projects)
}

// PrintProject prints a project in JSON format.
func (j *JSONPrinter) PrintProject(project model.Project) error {
	return j.encode(project)
}

// PrintTasks prints tasks in JSON format.
func (j *JSONPrinter) PrintTasks(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return j.encode(tasks)
}

// PrintResources prints resources in JSON format.
func (j *JSONPrinter) PrintResources(resources []model.Resource) error {
	if resources == nil {
		resources = []model.Resource{}
	}
	return j.encode(resources)
}

// PrintDashboard prints the dashboard in JSON format.
func (j *JSONPrinter) PrintDashboard(d report.Dashboard) error {
	if d.Projects == nil {
		d.Projects = []model.Project{}
	}
	return j.encode(d)
}

// PrintNotification prints the notification state in JSON format.
func (j *JSONPrinter) PrintNotification(n notify.State) error {
	return j.encode(n)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
