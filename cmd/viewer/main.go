package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"latent-stars/internal/graphics"
	"latent-stars/internal/logger"
	"latent-stars/internal/viewer"
	"latent-stars/internal/viewerconfig"
)

func main() {
	configPath := flag.String("config", viewerconfig.Path, "path to the viewer preferences JSON")
	dataset := flag.String("dataset", "", "dataset path or URL, overrides the configured sources")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := logger.NewText(level)

	prefs, err := viewerconfig.Load(*configPath)
	if err != nil {
		log.Error("load preferences", "error", err)
		os.Exit(1)
	}
	if *dataset != "" {
		prefs.DatasetSources = []string{*dataset}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := viewer.New(prefs, graphics.Display{}, viewer.BuildScene, log)
	v.Activate(ctx)
	graphics.Run(graphics.Config{
		Width:  prefs.WindowWidth,
		Height: prefs.WindowHeight,
		Title:  "latent stars",
	}, v.Update, v.Draw, v.Teardown)
}
