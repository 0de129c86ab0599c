package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kdudkov/projtrack/internal/config"
	"github.com/kdudkov/projtrack/internal/database"
	"github.com/kdudkov/projtrack/internal/identity"
	"github.com/kdudkov/projtrack/internal/membership"
	"github.com/kdudkov/projtrack/internal/tracker"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

type App struct {
	cfg     *config.AppConfig
	logger  *slog.Logger
	dbm     *database.DatabaseManager
	users   *identity.Resolver
	tokens  *identity.TokenManager
	tracker *tracker.Tracker
}

func NewApp(cfg *config.AppConfig) (*App, error) {
	db, err := database.GetDatabase(cfg.DB(), cfg.Debug())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	dbm := database.New(db)

	if err := dbm.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	app := &App{
		cfg:    cfg,
		logger: slog.With("logger", "app"),
		dbm:    dbm,
		users:  identity.NewResolver(dbm, cfg.IdentityCacheTTL()),
	}

	if secret := cfg.JWTSecret(); secret != "" {
		app.tokens = identity.NewTokenManager(secret, cfg.EmailClaim())
	}

	app.tracker = tracker.New(dbm, membership.NewAuthorizer(dbm), app.users, cfg.InviteTTL())

	return app, nil
}

func (app *App) Run(ctx context.Context) error {
	if app.tokens == nil && app.cfg.TrustedHeader() == "" {
		app.logger.Warn("neither auth.jwt_secret nor auth.trusted_header is set, every request will be rejected")
	}

	srv := NewHttp(app)

	errCh := make(chan error, 1)

	go func() {
		app.logger.Info("listening on " + app.cfg.APIAddr())
		errCh <- srv.Listen(app.cfg.APIAddr())
	}()

	go app.cleaner(ctx)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("exiting...")

	return srv.Shutdown()
}

func (app *App) cleaner(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.users.Clean()
		}
	}
}

func main() {
	fmt.Printf("projtrack server version %s:%s\n", gitBranch, gitRevision)

	conf := flag.String("config", "projtrack.yml", "name of config file")
	debug := flag.Bool("debug", false, "debug")
	flag.Parse()

	cfg := config.NewAppConfig()
	cfg.Load(*conf)
	cfg.LoadEnv("PROJTRACK_")

	if *debug {
		cfg.Set("debug", true)
	}

	var h slog.Handler
	if cfg.Debug() {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	slog.SetDefault(slog.New(h))

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("init error", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}
