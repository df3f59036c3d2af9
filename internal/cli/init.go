package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/kong"

	"github.com/mazrean/hashfiles/internal/domain"
)

// InitCmd represents the init command
type InitCmd struct {
	Settings settingsFlags `embed:""`
}

// Run executes the init command
// This method writes a new .hashfiles.toml defaults file from the given flags.
func (c *InitCmd) Run(kctx *kong.Context, ctx context.Context) error {
	return c.run(ctx, globalString(kctx, "Config", defaultConfigPath), globalBool(kctx, "Debug"))
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *InitCmd) run(ctx context.Context, configPath string, verbose bool) error {
	return c.runWithLogger(ctx, configPath, NewLogger(verbose))
}

func (c *InitCmd) runWithLogger(ctx context.Context, configPath string, logger *Logger) error {
	logger.Info("Initializing %s", configPath)

	config := c.Settings.toConfig()
	logger.Verbose("Defaults: %+v", *config)

	configManager := domain.NewConfigManager(configPath)
	if err := configManager.Initialize(ctx, config); err != nil {
		if errors.Is(err, domain.ErrConfigExists) {
			logger.Error("Configuration file already exists at %s", configPath)
			logger.Error("Remove the existing file or use a different path with --config")
			return err
		}
		if errors.Is(err, domain.ErrInvalidConfig) {
			logger.Error("Error: %v", err)
			return err
		}

		logger.Error("Failed to create configuration file: %v", err)
		logger.Error("Check file permissions and try again")
		return err
	}

	logger.Info("Successfully initialized %s", configPath)
	if config.Algorithm != "" {
		logger.Info("  algorithm: %s", config.Algorithm)
	}
	if config.Encoding != "" {
		logger.Info("  encoding: %s", config.Encoding)
	}

	return nil
}
