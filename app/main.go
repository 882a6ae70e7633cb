package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signalscout/app/api"
	"signalscout/app/cfg"
	"signalscout/app/database"
	"signalscout/app/feed"
	"signalscout/app/presets"
	"signalscout/app/schema"
	"signalscout/app/view"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting Signal Scout server", "version", appCfg.Version)

	// Archive (optional, disabled when DB_PATH is empty)
	var signalRepo database.SignalRepository
	if appCfg.DBPath != "" {
		db, err := database.NewConnection(appCfg.DBPath)
		if err != nil {
			slog.Error("Failed to open archive database", "path", appCfg.DBPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()

		version, dirty, err := database.RunMigrations(db)
		if err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Archive database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

		signalRepo = database.NewSignalRepo(db)
	} else {
		slog.Info("Archiving disabled (DB_PATH not set)")
	}

	// View presets
	presetCache := presets.NewCache(appCfg.PresetsDir)
	if err := presetCache.Run(); err != nil {
		slog.Error("Failed to load presets", "dir", appCfg.PresetsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Presets loaded", "count", presetCache.Count())

	// View controller
	controller := view.NewController(view.NewState(appCfg.PageSize), view.Observers{
		OnViewChange: func(state view.State, total int) {
			slog.Debug("View recomputed", "total", total, "page", state.Page, "sort", state.SortKey)
		},
		OnSelect: func(rec schema.Record) {
			slog.Debug("Record selected", "signal", rec.Signal, "url", rec.SourceURL)
		},
		OnExport: func(format string, records []schema.Record) {
			slog.Info("Export", "format", format, "records", len(records))
			if signalRepo != nil {
				if err := signalRepo.LogExport(format, len(records)); err != nil {
					slog.Error("Failed to log export", "error", err)
				}
			}
		},
	})

	// Feed loader; every successful load replaces the controller's record
	// set and lands in the archive.
	httpClient := &http.Client{Timeout: 30 * time.Second}
	loader := feed.NewLoader(httpClient, appCfg.UserAgent, func(state feed.State) {
		if state.Status != feed.StatusLoaded {
			return
		}
		controller.SetRecords(state.Records)
		if signalRepo != nil {
			if written, err := signalRepo.ArchiveRecords(state.Records); err != nil {
				slog.Error("Failed to archive records", "error", err)
			} else {
				slog.Debug("Records archived", "written", written)
			}
		}
	})

	if appCfg.FeedURL != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := loader.Load(ctx, appCfg.FeedURL); err != nil {
				slog.Error("Initial feed load failed", "url", appCfg.FeedURL, "error", err)
			}
		}()
	} else {
		slog.Info("No feed URL configured, waiting for upload")
	}

	stalenessTimer := feed.NewStalenessTimer(loader,
		time.Duration(appCfg.RefreshInterval)*time.Second, appCfg.FeedURL)
	stalenessTimer.Start()
	defer stalenessTimer.Stop()

	// HTTP server
	apiHandler := api.NewHandler(controller, loader, presetCache, signalRepo,
		appCfg.FeedURL, appCfg.PageSize)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
