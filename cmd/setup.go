package main

import (
	"context"

	"github.com/neutral-yo/ytvideofind/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a config.toml from the embedded example for the user to fill in.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	return r.writePlain("✓ Wrote %s — fill in your YouTube OAuth client and run `ytvideofind serve`\n", configPath)
}
