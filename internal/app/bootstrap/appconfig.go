// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is everything
// specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// S3 object storage for event images
	S3Region          string
	S3Bucket          string // blank disables image uploads
	S3Prefix          string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// Google Sheets mirroring of membership applications
	SheetsSpreadsheetID string // blank disables mirroring
	SheetsClientEmail   string
	SheetsPrivateKey    string

	// Initial admin account, seeded when the admin collection is empty
	AdminSeedEmail    string
	AdminSeedPassword string
	AdminSeedName     string
}
