package commands

import (
	"fmt"

	"github.com/slok/cpm/internal/app"
	"github.com/slok/cpm/internal/remote"
)

// appClient is the client side application shared by the API commands.
type appClient struct {
	*app.App
}

func newAppClient(rootCmd *RootCommand) (*appClient, error) {
	logger := rootCmd.Logger

	cfg, err := rootCmd.LoadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.New(app.Config{
		Remote: remote.ClientConfig{
			BaseURL:        cfg.APIURL,
			Timeout:        cfg.Timeout,
			Retries:        cfg.RetryAttempts(),
			DisableRetries: rootCmd.NoRetries || cfg.RetriesDisabled(),
		},
		NotificationDuration: cfg.NotificationDuration,
		Logger:               logger,
	})
	if err != nil {
		return nil, err
	}
	logger.Debugf("Using API %s", a.API.BaseURL())

	return &appClient{App: a}, nil
}

// printMutation prints the notification left by a mutation, the mutation error is
// returned after the notification so the user sees both.
func (a *appClient) printMutation(rootCmd *RootCommand, mutationErr error) error {
	if err := rootCmd.Printer().PrintNotification(a.Relay.State()); err != nil {
		return fmt.Errorf("could not print notification: %w", err)
	}
	return mutationErr
}
