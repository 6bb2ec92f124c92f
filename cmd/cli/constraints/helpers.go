package constraints

import (
	"context"
	"os/user"

	"go.uber.org/zap"

	"github.com/jlleitschuh/hibernate-changelog-gen/internal/changelog"
	"github.com/jlleitschuh/hibernate-changelog-gen/internal/rename"
)

// RenameService describes the rename operations the commands depend on.
type RenameService interface {
	Execute(executionContext context.Context, options rename.GenerationOptions) (rename.GenerationResult, error)
	ListSurvivingConstraints(executionContext context.Context, masterChangelogPath string) ([]changelog.UniqueConstraintAddition, error)
}

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider yields the persisted configuration for the constraint commands.
type ConfigurationProvider func() CommandConfiguration

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveConfiguration(provider ConfigurationProvider) CommandConfiguration {
	if provider == nil {
		return DefaultCommandConfiguration()
	}
	return provider().Sanitize()
}

// resolveAuthor prefers the explicit value and falls back to the invoking OS user.
func resolveAuthor(configuredAuthor string) (string, error) {
	if len(configuredAuthor) > 0 {
		return configuredAuthor, nil
	}
	currentUser, lookupError := user.Current()
	if lookupError != nil {
		return "", lookupError
	}
	return currentUser.Username, nil
}
