package backend

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dwightbot/dwight-web/backend/config"
	"github.com/dwightbot/dwight-web/backend/handlers"
	"github.com/dwightbot/dwight-web/backend/middleware"
)

// NewApp builds the dashboard API.
func NewApp(cfg *config.WebAppConfig, webApp *handlers.WebApp) *fiber.App {
	fiberCfg := fiber.Config{
		AppName:      "Dwight Dashboard API",
		ServerHeader: "Dwight",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    cfg.BodyLimit(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	}
	cfg.ApplyProxy(&fiberCfg)
	app := fiber.New(fiberCfg)

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins(),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Cookie",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())
	if cfg.Metrics.Enabled {
		app.Use(middleware.Metrics())
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	setupRoutes(app, cfg, webApp)
	return app
}

func setupRoutes(app *fiber.App, cfg *config.WebAppConfig, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	auth := app.Group("/auth", middleware.RateLimit(10, time.Minute))
	auth.Get("/discord", handlers.DiscordOAuth(webApp))
	auth.Get("/callback", handlers.OAuthCallback(webApp))
	auth.Post("/logout", handlers.Logout(webApp))

	api := app.Group("/api",
		middleware.RateLimit(cfg.Web.RateLimit, time.Minute),
		middleware.AuthRequired(webApp.Sessions),
	)
	api.Get("/me", handlers.Me(webApp))
	api.Get("/guilds", handlers.GuildsList(webApp))

	guild := api.Group("/guilds/:guildID")
	guild.Get("/", handlers.GuildsDetail(webApp))
	guild.Get("/admin", handlers.GuildsAdmin(webApp))
	guild.Get("/members", handlers.GuildsMembers(webApp))
	guild.Get("/counts", handlers.GuildsCounts(webApp))
	guild.Get("/stats/top", handlers.GuildsTopSounds(webApp))
	guild.Get("/stats/plays", handlers.GuildsLastPlays(webApp))

	guild.Get("/sounds", handlers.SoundsList(webApp))
	guild.Get("/sounds/visible", handlers.SoundsVisible(webApp))
	guild.Get("/quota", handlers.SoundsQuota(webApp))
	guild.Post("/sounds", middleware.RateLimit(30, time.Hour), handlers.SoundsCreate(webApp))

	guild.Get("/announcements", handlers.AnnouncementsList(webApp))
	guild.Put("/announcements/:userID", handlers.AnnouncementsUpsert(webApp))
	guild.Delete("/announcements/:userID", handlers.AnnouncementsDelete(webApp))

	guild.Get("/changes", handlers.ChangesPending(webApp))
	guild.Post("/changes/apply", handlers.ChangesApply(webApp))

	api.Patch("/sounds/:soundID", handlers.SoundsUpdate(webApp))
	api.Delete("/sounds/:soundID", handlers.SoundsDelete(webApp))
}
