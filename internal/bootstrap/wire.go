package bootstrap

import (
	"context"
	"database/sql"
	"net"
	"net/http"

	"github.com/tunelink/auth-service/internal/application/auth"
	"github.com/tunelink/auth-service/internal/audit"
	"github.com/tunelink/auth-service/internal/config"
	"github.com/tunelink/auth-service/internal/infrastructure/db/postgres"
	"github.com/tunelink/auth-service/internal/infrastructure/email"
	"github.com/tunelink/auth-service/internal/infrastructure/memory"
	"github.com/tunelink/auth-service/internal/infrastructure/security"
	"github.com/tunelink/auth-service/internal/logger"
	http_handlers "github.com/tunelink/auth-service/internal/transport/http/handlers"
	"github.com/tunelink/auth-service/internal/transport/http/middleware"
	"github.com/tunelink/auth-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	// NewUserRepo returns the credential store plus the *sql.DB behind it
	// for the health probe. A nil DB means the in-memory dev store, which
	// is always healthy.
	NewUserRepo func(cfg *config.Config) (auth.UserRepo, *sql.DB, func(), error)

	NewMailer func(cfg *config.Config) auth.MailSender

	NewRouter func(router.Deps) (http.Handler, error)
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) credential store
	userRepo, sqlDB, repoCleanup, err := deps.NewUserRepo(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){}
	if repoCleanup != nil {
		cleanupFns = append(cleanupFns, repoCleanup)
	}

	// 2) security
	hasher := security.NewBcryptHasher(10)
	sessionTokens := security.NewTokenCodec(cfg.SessionSecret, "auth-service")
	verifyTokens := security.NewTokenCodec(cfg.EmailSecret, "auth-service")

	// 3) email
	emailValidator := email.NewValidator(net.DefaultResolver, 0)
	mailer := deps.NewMailer(cfg)

	// 4) service
	authSvc := auth.NewService(
		userRepo,
		hasher,
		sessionTokens,
		verifyTokens,
		emailValidator,
		mailer,
		auth.Config{
			SessionTTL:     cfg.SessionTTL,
			VerifyTTL:      cfg.VerifyTTL,
			VerifyLinkBase: cfg.BaseURL + "/users/verify_email/",
		},
	)

	// Business events go through the audit sink so emails are masked
	// before they hit the log stream.
	auditSink := audit.New(logger.Logger)
	authSvc = authSvc.WithAudit(func(ctx context.Context, action string, fields map[string]string) {
		email := fields["email"]
		switch action {
		case "login_success":
			auditSink.LoginSuccess(ctx, email)
		case "login_failed":
			auditSink.LoginFailed(ctx, email, fields["reason"])
		case "user_registered":
			auditSink.Registered(ctx, email)
		case "register_invalid_email":
			auditSink.RegistrationRejected(ctx, email)
		case "logout":
			auditSink.Logout(ctx, email)
		case "verification_sent":
			auditSink.VerificationSent(ctx, email)
		case "email_verified":
			auditSink.EmailVerified(ctx, email)
		case "preference_updated":
			auditSink.PreferenceUpdated(ctx, email, fields["platform"])
		}
	})

	// 5) handlers + middleware
	secureCookies := cfg.Env != "dev"

	authH := http_handlers.NewAuthHandler(authSvc, secureCookies, cfg.FrontendURL)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	// 6) router
	mux, err := deps.NewRouter(router.Deps{
		Health:      healthH,
		Auth:        authH,
		RequestIDMW: middleware.RequestID,
		AuditMW:     middleware.AuditLog(auditSink),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewUserRepo: func(cfg *config.Config) (auth.UserRepo, *sql.DB, func(), error) {
			db, err := config.NewDB(cfg.DBAddr)
			if err != nil {
				if cfg.Env == "dev" {
					logger.Logger.Warn().Err(err).Msg("database unavailable; using in-memory store")
					return memory.NewUserRepo(), nil, nil, nil
				}
				return nil, nil, nil, err
			}
			cleanup := func() { _ = db.Close() }
			return postgres.NewUserRepo(db), db, cleanup, nil
		},
		NewMailer: func(cfg *config.Config) auth.MailSender {
			if cfg.SMTPUser == "" && cfg.Env == "dev" {
				logger.Logger.Warn().Msg("SMTP_USER unset; logging verification mail instead of sending")
				return memory.NewLogSender()
			}
			return email.NewSMTPSender(email.SMTPConfig{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				Username: cfg.SMTPUser,
				Password: cfg.SMTPPassword,
				From:     cfg.SMTPFrom,
			}, logger.Logger)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
