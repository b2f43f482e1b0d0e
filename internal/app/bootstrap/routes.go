// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	adminfeature "github.com/auraclub/aurahub/internal/app/features/admin"
	contactfeature "github.com/auraclub/aurahub/internal/app/features/contact"
	errorsfeature "github.com/auraclub/aurahub/internal/app/features/errors"
	eventsfeature "github.com/auraclub/aurahub/internal/app/features/events"
	healthfeature "github.com/auraclub/aurahub/internal/app/features/health"
	homefeature "github.com/auraclub/aurahub/internal/app/features/home"
	joinfeature "github.com/auraclub/aurahub/internal/app/features/join"
	loginfeature "github.com/auraclub/aurahub/internal/app/features/login"
	logoutfeature "github.com/auraclub/aurahub/internal/app/features/logout"
	adminstore "github.com/auraclub/aurahub/internal/app/store/admins"
	applicationstore "github.com/auraclub/aurahub/internal/app/store/applications"
	contactstore "github.com/auraclub/aurahub/internal/app/store/contacts"
	eventstore "github.com/auraclub/aurahub/internal/app/store/events"
	flagstore "github.com/auraclub/aurahub/internal/app/store/flags"
	memberstore "github.com/auraclub/aurahub/internal/app/store/members"
	"github.com/auraclub/aurahub/internal/app/system/auth"
	"github.com/auraclub/aurahub/internal/app/system/changefeed"
	"github.com/auraclub/aurahub/internal/app/system/ratelimit"
	"github.com/auraclub/aurahub/internal/app/system/sheets"
	"github.com/auraclub/aurahub/internal/app/system/storage"
	"github.com/auraclub/aurahub/internal/app/system/uploader"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// Long-lived background components created in BuildHandler and torn down
// in Shutdown.
var (
	eventsProjector *changefeed.Projector
	countsProjector *changefeed.CountsProjector
	flagsProjector  *changefeed.FlagsProjector
	appMirror       *sheets.Mirror
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// AuraHub initializes the session store and template engine, wires the
// live-feed projectors over the events collection, starts the optional
// spreadsheet mirror and S3 uploader, and mounts the public site alongside
// the admin backend.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Stores over the shared database.
	events := eventstore.New(deps.MongoDatabase, logger)
	applications := applicationstore.New(deps.MongoDatabase)
	contacts := contactstore.New(deps.MongoDatabase)
	members := memberstore.New(deps.MongoDatabase)
	flags := flagstore.New(deps.MongoDatabase)
	admins := adminstore.New(deps.MongoDatabase)

	// Live projections over the events and flags collections. All are
	// lazy: no change stream is opened until the first SSE subscriber
	// arrives.
	eventsProjector = changefeed.NewProjector(eventstore.NewFeed(events), logger)
	countsProjector = changefeed.NewCountsProjector(eventstore.NewStatusFeed(events), logger)
	flagsProjector = changefeed.NewFlagsProjector(flagstore.NewFeed(flags), logger)

	// Optional spreadsheet mirror for membership applications.
	sheetsCfg := sheets.Config{
		SpreadsheetID: appCfg.SheetsSpreadsheetID,
		ClientEmail:   appCfg.SheetsClientEmail,
		PrivateKey:    appCfg.SheetsPrivateKey,
	}
	var appender sheets.Appender
	if sheetsCfg.Enabled() {
		client, err := sheets.NewClient(context.Background(), sheetsCfg)
		if err != nil {
			logger.Error("sheets client init failed", zap.Error(err))
			return nil, err
		}
		appender = client
	}
	appMirror = sheets.NewMirror(appender, logger)
	appMirror.Start()

	// Optional S3-backed image uploads for admin event management.
	var up *uploader.Uploader
	s3Cfg := storage.S3Config{
		Region:          appCfg.S3Region,
		Bucket:          appCfg.S3Bucket,
		Prefix:          appCfg.S3Prefix,
		AccessKeyID:     appCfg.S3AccessKeyID,
		SecretAccessKey: appCfg.S3SecretAccessKey,
	}
	if s3Cfg.Enabled() {
		endpoint, err := storage.NewS3(context.Background(), s3Cfg, logger)
		if err != nil {
			logger.Error("S3 endpoint init failed", zap.Error(err))
			return nil, err
		}
		up = uploader.New(endpoint, logger)
	} else {
		logger.Info("event image uploads disabled (no S3 bucket configured)")
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// CSRF protection for every POST form; tokens are threaded into view
	// data so templates can embed the hidden field.
	r.Use(csrf.Protect([]byte(appCfg.SessionKey),
		csrf.Secure(secure),
		csrf.Path("/")))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(events, members, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	eventsHandler := eventsfeature.NewHandler(events, logger)
	feedHandler := eventsfeature.NewFeedHandler(eventsProjector, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, feedHandler))

	joinHandler := joinfeature.NewHandler(applications, flags, appMirror, logger)
	r.Mount("/join", joinfeature.Routes(joinHandler))

	contactHandler := contactfeature.NewHandler(contacts, flags, logger)
	r.Mount("/contact", contactfeature.Routes(contactHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(admins, ratelimit.NewLoginLimiter(), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(errorsHandler.NotFound)

	// Admin backend
	adminHandler := adminfeature.NewHandler(adminfeature.Deps{
		Events:       events,
		Applications: applications,
		Contacts:     contacts,
		Members:      members,
		Flags:        flags,
		Counts:       countsProjector,
		FlagsLive:    flagsProjector,
		Uploader:     up,
		Log:          logger,
	})
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	return r, nil
}
