package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vkrunjs/website/internal/config"
	"github.com/vkrunjs/website/internal/logger"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "vkrunsite",
		Short: "vkrunsite - the vkrun documentation website",
		Long: `vkrunsite serves the vkrun documentation homepage, exports it as static
files, and previews pages as markdown in the terminal.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the JSON config file (default: "+config.GetConfigPath()+")")

	rootCmd.AddCommand(newServeCommand(&configPath))
	rootCmd.AddCommand(newExportCommand(&configPath))
	rootCmd.AddCommand(newPreviewCommand(&configPath))
	rootCmd.AddCommand(newConfigCommand(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config and initializes the global logger
func setup(configPath string) (*config.Config, error) {
	if configPath == "" {
		configPath = config.GetConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:    logger.ParseLevel(cfg.LogLevel),
		Format:   logger.ParseFormat(cfg.LogFormat),
		Instance: cfg.InstanceName,
		Path:     cfg.LogPath,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Debug("Loaded config from %s", configPath)
	return cfg, nil
}
