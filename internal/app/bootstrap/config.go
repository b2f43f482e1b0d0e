// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for AuraHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_key, etc.
//   - Environment variables: AURAHUB_MONGO_URI, AURAHUB_SESSION_KEY, etc.
//   - Command-line flags: --mongo_uri, --session_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "aura_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// S3 storage for event images
	{Name: "s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "s3_bucket", Default: "", Desc: "S3 bucket for event images (blank disables uploads)"},
	{Name: "s3_prefix", Default: "events/", Desc: "S3 key prefix for event images"},
	{Name: "s3_access_key_id", Default: "", Desc: "AWS access key ID (blank uses the default credential chain)"},
	{Name: "s3_secret_access_key", Default: "", Desc: "AWS secret access key"},

	// Google Sheets mirroring of membership applications
	{Name: "sheets_spreadsheet_id", Default: "", Desc: "Google Sheets spreadsheet ID (blank disables mirroring)"},
	{Name: "sheets_client_email", Default: "", Desc: "Service account client email for Sheets"},
	{Name: "sheets_private_key", Default: "", Desc: "Service account private key (PEM) for Sheets"},

	// Admin bootstrap
	{Name: "admin_seed_email", Default: "", Desc: "Email of the initial admin (created when no admins exist)"},
	{Name: "admin_seed_password", Default: "", Desc: "Password for the initial admin"},
	{Name: "admin_seed_name", Default: "Administrator", Desc: "Display name for the initial admin"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, AURAHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "AURAHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionDomain:    appValues.String("session_domain"),

		S3Region:          appValues.String("s3_region"),
		S3Bucket:          appValues.String("s3_bucket"),
		S3Prefix:          appValues.String("s3_prefix"),
		S3AccessKeyID:     appValues.String("s3_access_key_id"),
		S3SecretAccessKey: appValues.String("s3_secret_access_key"),

		SheetsSpreadsheetID: appValues.String("sheets_spreadsheet_id"),
		SheetsClientEmail:   appValues.String("sheets_client_email"),
		SheetsPrivateKey:    appValues.String("sheets_private_key"),

		AdminSeedEmail:    appValues.String("admin_seed_email"),
		AdminSeedPassword: appValues.String("admin_seed_password"),
		AdminSeedName:     appValues.String("admin_seed_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// AuraHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters")
	}

	// Sheets mirroring requires full service-account credentials.
	if appCfg.SheetsSpreadsheetID != "" && (appCfg.SheetsClientEmail == "" || appCfg.SheetsPrivateKey == "") {
		return fmt.Errorf("sheets_spreadsheet_id requires sheets_client_email and sheets_private_key")
	}

	return nil
}
