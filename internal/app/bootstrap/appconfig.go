// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, request limits); AppConfig is everything specific to
// this application: database settings, signing secrets, media backend
// credentials, and mail settings.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Signing secret for bearer tokens
	JWTSecret string

	// Object storage (movie artwork)
	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	S3Bucket     string

	// Video CDN
	CDNCloudName    string
	CDNAPIKey       string
	CDNAPISecret    string
	CDNUploadFolder string

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Base URL used in outbound email links
	BaseURL string
}
