package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/jskalc/vault-api/internal/config"
	"github.com/jskalc/vault-api/internal/cryptox"
	"github.com/jskalc/vault-api/internal/handler"
	"github.com/jskalc/vault-api/internal/notify"
	"github.com/jskalc/vault-api/internal/repository"
	"github.com/jskalc/vault-api/internal/service"
	"github.com/jskalc/vault-api/internal/utils"
	"github.com/jskalc/vault-api/pkg/observability"
)

const (
	shutdownTimeout    = 5 * time.Second
	tokenSweepInterval = time.Hour
)

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
	repos  *repository.Repositories
}

type handlers struct {
	auth         *handler.AuthHandler
	user         *handler.UserHandler
	login        *handler.LoginHandler
	password     *handler.PasswordHandler
	verification *handler.VerificationHandler
}

func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	cipher, err := cryptox.NewFieldCipher([]byte(cfg.Crypto.Key))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize field cipher: %w", err)
	}

	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry.Duration)
	blacklistService := service.NewTokenBlacklistService(infra.Redis())
	mailer := notify.NewSMTPMailer(&cfg.SMTP, infra.Logger())
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(
		repos.User,
		repos.VerificationToken,
		repos.AccessToken,
		jwtManager,
		blacklistService,
		mailer,
		cfg.Security.BCryptCost,
		infra.Logger(),
	)
	userService := service.NewUserService(repos.User, cfg.Security.BCryptCost)
	loginService := service.NewLoginService(repos.Login, cipher, infra.Logger())
	verificationService := service.NewVerificationService(
		repos.User,
		repos.VerificationToken,
		repos.AccessToken,
		mailer,
		cfg.Security.TokenTTL.Duration,
		infra.Logger(),
	)
	resetService := service.NewResetService(
		repos.User,
		repos.ResetToken,
		mailer,
		cfg.Security.TokenTTL.Duration,
		cfg.Security.BCryptCost,
		infra.Logger(),
	)

	h := handlers{
		auth:         handler.NewAuthHandler(authService),
		user:         handler.NewUserHandler(userService),
		login:        handler.NewLoginHandler(loginService, cfg.Security.PageSize),
		password:     handler.NewPasswordHandler(resetService),
		verification: handler.NewVerificationHandler(verificationService),
	}

	router := gin.Default()
	router.Use(otelgin.Middleware("vault-api"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, h, authService, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
		repos:  repos,
	}, nil
}

// sweepExpiredTokens periodically drops access token rows that have outlived
// their expiry. Expired tokens already fail validation on their own; the
// sweep just keeps the table from growing without bound.
func (a *App) sweepExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(tokenSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.repos.AccessToken.DeleteExpired(ctx); err != nil {
				a.infra.Logger().Warn("failed to sweep expired access tokens", zap.Error(err))
			}
		}
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	h handlers,
	authService service.AuthService,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	v1 := router.Group("/v1")
	{
		v1.POST("/register", h.auth.Register)
		v1.POST("/login", h.auth.Login)

		v1.POST("/password/create", h.password.Create)
		v1.POST("/password/reset", h.password.Reset)
		v1.GET("/email/verify/:token", h.verification.Verify)

		authed := v1.Group("", handler.AuthMiddleware(authService))
		{
			authed.DELETE("/logout", h.auth.Logout)

			authed.GET("/user", h.user.Show)
			authed.PUT("/user", h.user.Update)
			authed.DELETE("/user", h.user.Delete)

			authed.GET("/logins", h.login.List)
			authed.POST("/logins", h.login.Create)
			authed.GET("/logins/:id", h.login.Show)
			authed.PUT("/logins/:id", h.login.Update)
			authed.DELETE("/logins/:id", h.login.Delete)

			authed.POST("/email/update", h.verification.RequestUpdate)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go a.sweepExpiredTokens(ctx)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
