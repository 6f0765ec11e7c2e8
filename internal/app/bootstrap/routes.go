// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	aboutfeature "github.com/dalemusser/chapterhub/internal/app/features/about"
	approvalsfeature "github.com/dalemusser/chapterhub/internal/app/features/approvals"
	authgooglefeature "github.com/dalemusser/chapterhub/internal/app/features/authgoogle"
	chaptersfeature "github.com/dalemusser/chapterhub/internal/app/features/chapters"
	contactfeature "github.com/dalemusser/chapterhub/internal/app/features/contact"
	dashboardfeature "github.com/dalemusser/chapterhub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/chapterhub/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/chapterhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/chapterhub/internal/app/features/health"
	homefeature "github.com/dalemusser/chapterhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/chapterhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/chapterhub/internal/app/features/logout"
	membersfeature "github.com/dalemusser/chapterhub/internal/app/features/members"
	metadatafeature "github.com/dalemusser/chapterhub/internal/app/features/metadata"
	opportunitiesfeature "github.com/dalemusser/chapterhub/internal/app/features/opportunities"
	profilefeature "github.com/dalemusser/chapterhub/internal/app/features/profile"
	resourcesfeature "github.com/dalemusser/chapterhub/internal/app/features/resources"
	termsfeature "github.com/dalemusser/chapterhub/internal/app/features/terms"
	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/resettoken"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// ChapterHub initializes the template engine, applies session middleware,
// and mounts feature routers for all portal areas: landing, auth, profile,
// member directory, chapters, opportunities, resources, events, approvals,
// and the admin metadata editor.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request so role
	// changes, approvals, and profile updates take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	resetTokens, err := resettoken.New(appCfg.ResetTokenKey, appCfg.ResetTokenExpiry)
	if err != nil {
		logger.Error("reset token issuer init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	googleEnabled := appCfg.GoogleClientID != "" && appCfg.GoogleClientSecret != ""

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	aboutHandler := aboutfeature.NewHandler(logger)
	r.Mount("/about", aboutfeature.Routes(aboutHandler))

	contactHandler := contactfeature.NewHandler(logger)
	r.Mount("/contact", contactfeature.Routes(contactHandler))

	termsHandler := termsfeature.NewHandler(logger)
	r.Mount("/terms", termsfeature.Routes(termsHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, resetTokens, googleEnabled, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	googleHandler := authgooglefeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Profile: reachable before setup is complete, so only sign-in is
	// required here. The setup flow itself lives under this mount.
	profileHandler := profilefeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Mount("/profile", profilefeature.Routes(profileHandler))
	})

	// Portal areas: signed in with a completed profile.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Use(auth.RequireProfileCompleted)

		dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

		membersHandler := membersfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		r.Mount("/members", membersfeature.Routes(membersHandler))

		chaptersHandler := chaptersfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		r.Mount("/chapters", chaptersfeature.Routes(chaptersHandler))

		opportunitiesHandler := opportunitiesfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		r.Mount("/opportunities", opportunitiesfeature.Routes(opportunitiesHandler))

		resourcesHandler := resourcesfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		r.Mount("/resources", resourcesfeature.Routes(resourcesHandler))

		eventsHandler := eventsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		r.Mount("/events", eventsfeature.Routes(eventsHandler))
	})

	// Review surfaces: staff and admin only. Role gates here are the outer
	// wall; the handlers scope moderators to their own chapter.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Use(auth.RequireRole("admin", "moderator"))

		approvalsHandler := approvalsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
		r.Mount("/approvals", approvalsfeature.Routes(approvalsHandler))
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Use(auth.RequireRole("admin"))

		metadataHandler := metadatafeature.NewHandler(deps.MongoDatabase, errLog, logger)
		r.Mount("/admin/metadata", metadatafeature.Routes(metadataHandler))
	})

	return r, nil
}
