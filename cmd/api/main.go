// Command api runs the movie platform HTTP API.
//
//	@title						Movie Platform API
//	@version					1.0
//	@description				Accounts, profile verification and paid subscriptions for the movie platform.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/movieplatform/movie-api/internal/api"
	"github.com/movieplatform/movie-api/internal/api/handler"
	"github.com/movieplatform/movie-api/internal/core/service"
	mongodb "github.com/movieplatform/movie-api/internal/infrastructure/db/mongo"
	redisdb "github.com/movieplatform/movie-api/internal/infrastructure/db/redis"
	"github.com/movieplatform/movie-api/internal/infrastructure/mail"
	"github.com/movieplatform/movie-api/internal/infrastructure/payment/paypack"
	"github.com/movieplatform/movie-api/internal/infrastructure/queue"
	"github.com/movieplatform/movie-api/internal/infrastructure/storage/s3"
	"github.com/movieplatform/movie-api/internal/pkg/config"
	"github.com/movieplatform/movie-api/internal/pkg/otp"
	"github.com/movieplatform/movie-api/internal/pkg/secret"
	"github.com/movieplatform/movie-api/internal/pkg/token"
	"github.com/movieplatform/movie-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("cannot load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "movie-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer dcancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	accountRepo := mongodb.NewAccountRepository(db)
	subscriptionRepo := mongodb.NewSubscriptionRepository(db)
	if err := mongodb.EnsureIndexes(ctx, accountRepo, subscriptionRepo); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	objects, err := s3.NewStorage(ctx, s3.Config{
		Region:          cfg.S3.Region,
		Bucket:          cfg.S3.Bucket,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Endpoint:        cfg.S3.Endpoint,
	})
	if err != nil {
		return err
	}

	// --- Mail ---
	mailer := mail.NewSMTPMailer(mail.Config{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		From: cfg.SMTP.From,
	}, logger.Component("mailer"))

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	dispatcher := queue.NewMailDispatcher(cfg.SMTP.Workers, mailer, logger.Component("mail_dispatcher"))
	dispatcher.Start(workerCtx)

	// --- Services ---
	hasher := secret.NewHasher(cfg.Auth.BcryptCost)
	tokens := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	authService := service.NewAuthService(service.AuthDeps{
		Accounts: accountRepo,
		Hasher:   hasher,
		Codes:    otp.NewGenerator(cfg.Auth.OTPTTL, hasher),
		Tokens:   tokens,
		Mailer:   mailer,
		Notifier: dispatcher,
		Storage:  objects,
		Throttle: redisdb.NewResetThrottle(rdb, cfg.Auth.ResetCooldown),
	}, logger.Component("auth_service"))

	accountService := service.NewAccountService(accountRepo, logger.Component("account_service"))

	gateway := paypack.NewClient(paypack.Config{
		BaseURL:      cfg.Paypack.BaseURL,
		ClientID:     cfg.Paypack.ClientID,
		ClientSecret: cfg.Paypack.ClientSecret,
		Environment:  cfg.Paypack.Environment,
	}, logger.Component("paypack"))
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, gateway, logger.Component("subscription_service"))

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Auth:          authService,
		Accounts:      accountService,
		Subscriptions: subscriptionService,
		Tokens:        tokens,
		Readiness: map[string]handler.DependencyCheck{
			"mongo": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Log: log,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// Mail still queued at this point is dropped.
	stopWorkers()
	dispatcher.Wait()

	log.Info().Msg("server gracefully stopped")
	return nil
}
