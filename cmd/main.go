package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/neutral-yo/ytvideofind/internal/services"
	"github.com/neutral-yo/ytvideofind/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	// Optional .env next to the binary, matching the original deployment.
	_ = godotenv.Load()

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}
	config.ApplyEnv()

	var youtubeService services.OAuthService
	if creds := config.Credentials.YouTube; creds.ClientID != "" && creds.ClientSecret != "" {
		if svc, err := services.NewYouTubeService(map[string]string{
			"client_id":     creds.ClientID,
			"client_secret": creds.ClientSecret,
			"redirect_uri":  creds.RedirectURI,
		}); err == nil {
			youtubeService = svc
		} else {
			logger.Warn("failed to initialize YouTube service", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		YouTube: youtubeService,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "ytvideofind",
		Usage:    "Browse your YouTube playlists & search videos from the browser",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// serveCommand runs the HTTP server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Override the listening port",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand writes an example configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config.toml from the embedded example",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
