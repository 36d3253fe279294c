package commands

import (
	"github.com/alecthomas/kingpin/v2"
)

// ProjectCommand is the parent command for project management subcommands.
type ProjectCommand struct {
	Cmd *kingpin.CmdClause
}

// NewProjectCommand returns the project parent command.
func NewProjectCommand(app *kingpin.Application) *ProjectCommand {
	c := &ProjectCommand{}
	c.Cmd = app.Command("project", "Manage construction projects.")
	return c
}
