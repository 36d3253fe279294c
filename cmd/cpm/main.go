package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/slok/cpm/cmd/cpm/commands"
	"github.com/slok/cpm/internal/log"
	loglogrus "github.com/slok/cpm/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("cpm", "Construction project management client.")
	app.DefaultEnvars()
	app.Version(Version)
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	projectCmd := commands.NewProjectCommand(app)
	projectListCmd := commands.NewProjectListCommand(rootCmd, projectCmd)
	projectGetCmd := commands.NewProjectGetCommand(rootCmd, projectCmd)
	projectCreateCmd := commands.NewProjectCreateCommand(rootCmd, projectCmd)
	projectUpdateCmd := commands.NewProjectUpdateCommand(rootCmd, projectCmd)
	projectDeleteCmd := commands.NewProjectDeleteCommand(rootCmd, projectCmd)

	taskCmd := commands.NewTaskCommand(app)
	taskListCmd := commands.NewTaskListCommand(rootCmd, taskCmd)
	taskCreateCmd := commands.NewTaskCreateCommand(rootCmd, taskCmd)
	taskUpdateCmd := commands.NewTaskUpdateCommand(rootCmd, taskCmd)
	taskDeleteCmd := commands.NewTaskDeleteCommand(rootCmd, taskCmd)

	resourceCmd := commands.NewResourceCommand(app)
	resourceListCmd := commands.NewResourceListCommand(rootCmd, resourceCmd)
	resourceCreateCmd := commands.NewResourceCreateCommand(rootCmd, resourceCmd)
	resourceUpdateCmd := commands.NewResourceUpdateCommand(rootCmd, resourceCmd)
	resourceDeleteCmd := commands.NewResourceDeleteCommand(rootCmd, resourceCmd)

	statsCmd := commands.NewStatsCommand(rootCmd, app)
	serveCmd := commands.NewServeCommand(rootCmd, app)

	cmds := map[string]commands.Command{
		projectListCmd.Name():    projectListCmd,
		projectGetCmd.Name():     projectGetCmd,
		projectCreateCmd.Name():  projectCreateCmd,
		projectUpdateCmd.Name():  projectUpdateCmd,
		projectDeleteCmd.Name():  projectDeleteCmd,
		taskListCmd.Name():       taskListCmd,
		taskCreateCmd.Name():     taskCreateCmd,
		taskUpdateCmd.Name():     taskUpdateCmd,
		taskDeleteCmd.Name():     taskDeleteCmd,
		resourceListCmd.Name():   resourceListCmd,
		resourceCreateCmd.Name(): resourceCreateCmd,
		resourceUpdateCmd.Name(): resourceUpdateCmd,
		resourceDeleteCmd.Name(): resourceDeleteCmd,
		statsCmd.Name():          statsCmd,
		serveCmd.Name():          serveCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Only the backend logs by default, the client commands print their results
	// and the log would mix with them. Users can still enable logging with --debug.
	if cmdName != serveCmd.Name() && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
