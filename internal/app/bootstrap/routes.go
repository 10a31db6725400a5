// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"time"

	adminfeature "github.com/dalemusser/reelhub/internal/app/features/admin"
	authfeature "github.com/dalemusser/reelhub/internal/app/features/auth"
	healthfeature "github.com/dalemusser/reelhub/internal/app/features/health"
	moviesfeature "github.com/dalemusser/reelhub/internal/app/features/movies"
	usersfeature "github.com/dalemusser/reelhub/internal/app/features/users"
	"github.com/dalemusser/reelhub/internal/app/media/cdn"
	"github.com/dalemusser/reelhub/internal/app/media/s3store"
	"github.com/dalemusser/reelhub/internal/app/realtime"
	"github.com/dalemusser/reelhub/internal/app/store/employees"
	"github.com/dalemusser/reelhub/internal/app/store/movies"
	"github.com/dalemusser/reelhub/internal/app/store/users"
	"github.com/dalemusser/reelhub/internal/app/store/watched"
	"github.com/dalemusser/reelhub/internal/app/system/auth"
	"github.com/dalemusser/reelhub/internal/app/system/gates"
	"github.com/dalemusser/reelhub/internal/app/system/mailer"
	"github.com/dalemusser/reelhub/internal/app/system/ratelimit"
	"github.com/dalemusser/reelhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup and
// Startup have completed. It builds the stores, the media backends, the
// websocket hub and the authorization gate, then mounts the feature
// routers under /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := auth.NewTokens(appCfg.JWTSecret)

	users := userstore.New(deps.MongoDatabase)
	employees := employeestore.New(deps.MongoDatabase)
	movies := moviestore.New(deps.MongoDatabase)
	watched := watchedstore.New(deps.MongoDatabase)

	gate := &gates.Gate{
		Tokens:    tokens,
		Employees: employees,
		Users:     users,
		Log:       logger,
	}

	s3, err := s3store.New(context.Background(), s3store.Config{
		Region:    appCfg.AWSRegion,
		AccessKey: appCfg.AWSAccessKey,
		SecretKey: appCfg.AWSSecretKey,
		Bucket:    appCfg.S3Bucket,
	})
	if err != nil {
		logger.Error("object storage init failed", zap.Error(err))
		return nil, err
	}

	cdnSigner, err := cdn.New(cdn.Config{
		CloudName:    appCfg.CDNCloudName,
		APIKey:       appCfg.CDNAPIKey,
		APISecret:    appCfg.CDNAPISecret,
		UploadFolder: appCfg.CDNUploadFolder,
	})
	if err != nil {
		logger.Error("cdn signer init failed", zap.Error(err))
		return nil, err
	}

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)
	if !mail.Enabled() {
		logger.Warn("outbound mail not configured; emails will be dropped")
	}

	hub := realtime.NewHub(logger)

	// Hourly sweep of elapsed temporary admin grants. Stopped in Shutdown.
	accessSweeper = workers.NewAccessWindowSweeper(employees, logger, time.Hour)
	accessSweeper.Start()

	r := chi.NewRouter()

	// Health endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Get("/ping", healthHandler.ServePing)

	// Identity, with brute-force throttling on the credential endpoints
	authHandler := authfeature.NewHandler(tokens, users, employees, mail, logger, appCfg.MailFromName, appCfg.BaseURL)
	authHandler.Limits = ratelimit.NewLoginLimiter()
	r.Mount("/api/auth", authfeature.Routes(authHandler))

	// Catalog + analytics ingest
	moviesHandler := moviesfeature.NewHandler(gate, movies, users, watched, logger)
	r.Mount("/api/movie", moviesfeature.Routes(moviesHandler))

	// User-bound watch history
	usersHandler := usersfeature.NewHandler(gate, tokens, users, watched, logger)
	r.Mount("/api/user", usersfeature.Routes(usersHandler))

	// Admin management (gated)
	adminHandler := adminfeature.NewHandler(employees, users, movies, watched, s3, cdnSigner, hub, logger)
	r.Mount("/api/admin", adminfeature.Routes(adminHandler, gate))

	// Realtime notification rooms
	r.Get("/ws", hub.ServeWS)

	return r, nil
}
