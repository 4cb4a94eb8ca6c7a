package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dwightbot/dwight-web/backend"
	"github.com/dwightbot/dwight-web/backend/config"
	"github.com/dwightbot/dwight-web/backend/handlers"
	"github.com/dwightbot/dwight-web/backend/services"
	"github.com/dwightbot/dwight-web/dwight"
	"github.com/dwightbot/dwight-web/dwight/database"
	"github.com/dwightbot/dwight-web/internal/domain/announcements"
	"github.com/dwightbot/dwight-web/internal/domain/guildauth"
	"github.com/dwightbot/dwight-web/internal/domain/guilds"
	"github.com/dwightbot/dwight-web/internal/domain/reconcile"
	"github.com/dwightbot/dwight-web/internal/domain/sounds"
	"github.com/dwightbot/dwight-web/internal/gateways/botcallback"
	"github.com/dwightbot/dwight-web/internal/gateways/database/repositories"
	"github.com/dwightbot/dwight-web/internal/gateways/discordapi"
	"github.com/dwightbot/dwight-web/internal/gateways/spaces"
	"github.com/dwightbot/dwight-web/internal/gateways/transcoder"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the dashboard API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *dwight.Config) error {
	slog.Info("Starting Dwight dashboard API",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit),
	)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := database.New(connectCtx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err = db.InitializeSchema(connectCtx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	discord := discordapi.New(cfg.Discord.Token, cfg.Discord.RequestTimeout.Duration)
	gate, err := guildauth.NewService(discord, guildauth.Config{
		TTL:            cfg.Permissions.TTL.Duration,
		MembershipSize: cfg.Permissions.MembershipCacheSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create permission cache: %w", err)
	}

	var mirror transcoder.ArtifactStore
	if cfg.Spaces.Enabled() {
		store, err := spaces.New(connectCtx, spaces.Config{
			Key:      cfg.Spaces.Key,
			Secret:   cfg.Spaces.Secret,
			Region:   cfg.Spaces.Region,
			Bucket:   cfg.Spaces.Bucket,
			Endpoint: cfg.Spaces.Endpoint,
			Root:     cfg.Spaces.Root,
		}, nil)
		if err != nil {
			return fmt.Errorf("failed to create spaces store: %w", err)
		}
		mirror = store
	}

	ffmpeg := transcoder.New(transcoder.Config{
		FFmpegPath:    cfg.Sounds.FFmpegPath,
		Folder:        cfg.Sounds.Folder,
		Timeout:       cfg.Sounds.TranscodeTimeout.Duration,
		MaxConcurrent: cfg.Sounds.MaxConcurrentTranscodes,
		Bitrate:       cfg.Sounds.Bitrate,
	}, mirror)

	bunDB := db.BunDB()
	soundRepo := repositories.NewSoundRepository(bunDB)
	userRepo := repositories.NewUserRepository(bunDB)
	notifier := botcallback.New(cfg.Rebuild.CallbackURL, &http.Client{Timeout: cfg.Rebuild.Timeout.Duration})

	webApp := &handlers.WebApp{
		Sounds: sounds.NewService(soundRepo, ffmpeg, gate, sounds.Config{
			DefaultLimit:   cfg.Sounds.DefaultLimit,
			MaxNameLength:  cfg.Sounds.MaxNameLength,
			MaxUploadBytes: cfg.Sounds.MaxUploadBytes,
		}),
		Announcements:  announcements.NewService(repositories.NewAnnouncementRepository(bunDB), soundRepo, gate),
		Reconcile:      reconcile.NewService(repositories.NewWatermarkRepository(bunDB), notifier, gate),
		Guilds:         guilds.NewService(discord, discordapi.NewUserDirectory(discord, userRepo), repositories.NewStatsRepository(bunDB), gate, gate, cfg.Discord.BotUserID),
		Admins:         gate,
		Sessions:       services.NewSessionService(cfg.Web.SessionKey, cfg.Web.SecureCookies),
		OAuth:          services.NewOAuthService(cfg.Web.OAuth, userRepo, nil),
		DB:             db,
		FrontendURL:    cfg.Web.FrontendURL,
		MaxUploadBytes: cfg.Sounds.MaxUploadBytes,
		Version:        version,
		Commit:         commit,
	}

	webCfg := config.NewWebAppConfig(cfg, version)
	app := backend.NewApp(webCfg, webApp)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", slog.String("type", "sys"), slog.String("address", webCfg.Address()))
		errCh <- app.Listen(webCfg.Address())
	}()

	select {
	case err = <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down", slog.String("type", "sys"))
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err = app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("type", "sys"), slog.Any("error", err))
	}
	return nil
}
