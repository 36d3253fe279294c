package printer

import (
	"github.com/slok/cpm/internal/app/report"
	"github.com/slok/cpm/internal/model"
	"github.com/slok/cpm/internal/notify"
)

// Printer knows how to print construction project information in different formats.
type Printer interface {
	PrintProjects(projects []model.Project) error
	PrintProject(project model.Project) error
	PrintTasks(tasks []model.Task) error
	PrintResources(resources []model.Resource) error
	PrintDashboard(dashboard report.Dashboard) error
	PrintNotification(n notify.State) error
	PrintMessage(msg string) error
}
