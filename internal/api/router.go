package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/movieplatform/movie-api/docs"
	"github.com/movieplatform/movie-api/internal/api/handler"
	"github.com/movieplatform/movie-api/internal/api/middleware"
	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Services are built by the
// caller.
type Deps struct {
	Auth          ports.AuthService
	Accounts      ports.AccountService
	Subscriptions ports.SubscriptionService
	Tokens        middleware.TokenVerifier
	Readiness     map[string]handler.DependencyCheck
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("movie"))

	// --- Ops (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  - is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness - are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(d.Auth)
	accountHandler := handler.NewAccountHandler(d.Accounts)
	subscriptionHandler := handler.NewSubscriptionHandler(d.Subscriptions)
	auth := middleware.Auth(d.Tokens)

	v1 := e.Group("/api/v1")

	// --- User routes ---
	user := v1.Group("/user")
	user.POST("/signup", authHandler.Signup)
	user.POST("/login", authHandler.Login)
	user.POST("/forgotPassword", authHandler.ForgotPassword)
	user.POST("/resetPassword", authHandler.ResetPassword)
	user.POST("/changePassword", authHandler.ChangePassword, auth)
	user.POST("/verifyProfile", authHandler.VerifyProfile, auth)

	user.GET("/all", accountHandler.List, auth)
	user.GET("/me", accountHandler.Me, auth)
	user.GET("/author/status", accountHandler.AuthorStatus, auth, middleware.RBAC(domain.RoleAuthor))
	user.GET("/:id", accountHandler.Get, auth)
	user.PUT("/edit/:id", accountHandler.Edit, auth)
	user.PUT("/author/:id/approval", accountHandler.SetAuthorApproval, auth, middleware.RBAC(domain.RoleAdmin))
	user.DELETE("/delete/:id", accountHandler.Delete, auth, middleware.RBAC(domain.RoleAdmin))

	// --- Subscription routes ---
	sub := v1.Group("/sub")
	sub.POST("/create", subscriptionHandler.Create, auth)
	sub.GET("/all", subscriptionHandler.List)
	sub.GET("/:id", subscriptionHandler.Get)
	sub.PUT("/update/:id", subscriptionHandler.Update, auth)
	sub.PUT("/updateStatus/:id", subscriptionHandler.UpdateStatus, auth, middleware.RBAC(domain.RoleAdmin))

	return e
}

// requestLogger feeds Echo's request logging into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
