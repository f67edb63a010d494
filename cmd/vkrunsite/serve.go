package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vkrunjs/website/internal/config"
	"github.com/vkrunjs/website/internal/consts"
	"github.com/vkrunjs/website/internal/logger"
	"github.com/vkrunjs/website/internal/syntax"
	"github.com/vkrunjs/website/internal/web"
)

func newServeCommand(configPath *string) *cobra.Command {
	var addr string
	var stylesDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Long: `Serves the homepage, the documentation pages and the scoped stylesheets.
With --styles-dir the stylesheets are re-read whenever they change on disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if stylesDir != "" {
				cfg.StylesDir = stylesDir
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, "+consts.DefaultAddr+")")
	cmd.Flags().StringVar(&stylesDir, "styles-dir", "", "Directory of *.module.css files to watch (development)")

	return cmd
}

func runServe(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	checkSample()

	site := web.NewSiteFromConfig(cfg)
	if cfg.StylesDir != "" {
		watchStyles(ctx, cfg.StylesDir, site)
	}

	srv := web.NewServer(cfg, site, logger.Global())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("vkrunsite %s listening on %s", version, cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), consts.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// checkSample warns when the homepage sample does not parse
func checkSample() {
	if !syntax.IsTreeSitterSupported(web.SampleLanguage) {
		logger.Debug("No grammar for %s, skipping sample validation", web.SampleLanguage)
		return
	}
	result, err := syntax.NewValidator().Validate(web.SampleCode, web.SampleLanguage)
	if err != nil {
		logger.Warn("Could not validate homepage sample: %v", err)
		return
	}
	for _, e := range result.Errors {
		logger.Warn("Homepage sample %d:%d: %s", e.Line, e.Column, e.Message)
	}
}

// watchStyles starts a watcher for every sheet that has a file in dir
func watchStyles(ctx context.Context, dir string, site *web.Site) {
	log := logger.Global().WithPrefix("styles")
	for _, st := range site.Sheets {
		path := filepath.Join(dir, st.Load().Module()+".module.css")
		if _, err := os.Stat(path); err != nil {
			log.Debug("Not watching %s: %v", path, err)
			continue
		}
		go func() {
			if err := st.Watch(ctx, path); err != nil {
				log.Error("Watching %s failed: %v", path, err)
			}
		}()
	}
}
