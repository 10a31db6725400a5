// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devJWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for ReelHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: REELHUB_MONGO_URI, REELHUB_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "reelhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "jwt_secret", Default: devJWTSecret, Desc: "Bearer token signing secret (must be strong in production)"},

	// Object storage (movie artwork)
	{Name: "aws_region", Default: "us-east-1", Desc: "AWS region for the media bucket"},
	{Name: "aws_access_key", Default: "", Desc: "AWS access key id"},
	{Name: "aws_secret_key", Default: "", Desc: "AWS secret access key"},
	{Name: "s3_bucket", Default: "reelhub-media-dev", Desc: "S3 bucket for movie artwork"},

	// Video CDN
	{Name: "cdn_cloud_name", Default: "reelhub-dev", Desc: "CDN cloud name"},
	{Name: "cdn_api_key", Default: "dev", Desc: "CDN API key"},
	{Name: "cdn_api_secret", Default: "dev", Desc: "CDN API secret"},
	{Name: "cdn_upload_folder", Default: "movies/uploads", Desc: "CDN folder for video uploads"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank disables outbound mail)"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@reelhub.example", Desc: "From email address"},
	{Name: "mail_from_name", Default: "ReelHub", Desc: "From display name"},

	// Base URL for email links
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for email links"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles loading from .env and config
// files, environment variables (WAFFLE_* for core, REELHUB_* for app),
// command-line flags, and merging with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "REELHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),

		AWSRegion:    appValues.String("aws_region"),
		AWSAccessKey: appValues.String("aws_access_key"),
		AWSSecretKey: appValues.String("aws_secret_key"),
		S3Bucket:     appValues.String("s3_bucket"),

		CDNCloudName:    appValues.String("cdn_cloud_name"),
		CDNAPIKey:       appValues.String("cdn_api_key"),
		CDNAPISecret:    appValues.String("cdn_api_secret"),
		CDNUploadFolder: appValues.String("cdn_upload_folder"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backend is touched.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" {
		if appCfg.JWTSecret == devJWTSecret {
			return fmt.Errorf("jwt_secret must be set in production")
		}
		if appCfg.AWSAccessKey == "" || appCfg.AWSSecretKey == "" {
			return fmt.Errorf("aws_access_key and aws_secret_key must be set in production")
		}
		if appCfg.CDNAPISecret == "dev" {
			return fmt.Errorf("cdn_api_secret must be set in production")
		}
	}

	return nil
}
