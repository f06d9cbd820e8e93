package router

import (
	"blogapi/internal/application"
	"blogapi/internal/container"
	pginfra "blogapi/internal/infrastructure/postgres"
	handlers "blogapi/internal/interface/http"
	"blogapi/internal/router/modules"
)

// InitModules builds the services from container singletons and registers
// every feature module. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	posts := pginfra.NewPostRepository(pool)
	categories := pginfra.NewCategoryRepository(pool)
	audit := pginfra.NewAuditRepository(pool)

	authSvc := application.NewAuthService(
		users,
		audit,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		container.GetRabbitPub(),
		cfg.AppName,
		cfg.MailSendEnabled,
	)
	postSvc := application.NewPostService(
		posts,
		container.GetUploadStore(),
		logger,
		container.GetES(),
		cfg.ESPostsIndex,
	)
	categorySvc := application.NewCategoryService(categories, logger)

	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure),
		container.GetJWT(),
	))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), container.GetJWT()))
	r.Add(modules.NewCategoryModule(handlers.NewCategoryHandler(categorySvc, logger), container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
