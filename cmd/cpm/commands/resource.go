package commands

import (
	"github.com/alecthomas/kingpin/v2"
)

// ResourceCommand is the parent command for resource management subcommands.
type ResourceCommand struct {
	Cmd *kingpin.CmdClause
}

// NewResourceCommand returns the resource parent command.
func NewResourceCommand(app *kingpin.Application) *ResourceCommand {
	c := &ResourceCommand{}
	c.Cmd = app.Command("resource", "Manage labor, equipment and materials.")
	return c
}
