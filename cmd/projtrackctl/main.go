package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kdudkov/projtrack/internal/config"
	"github.com/kdudkov/projtrack/internal/database"
	"github.com/kdudkov/projtrack/internal/fixtures"
	"github.com/kdudkov/projtrack/internal/identity"
	"github.com/kdudkov/projtrack/internal/membership"
	"github.com/kdudkov/projtrack/internal/tracker"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-config file] migrate|seed|token [options]\n", os.Args[0])
	flag.PrintDefaults()
}

func openDB(cfg *config.AppConfig) (*database.DatabaseManager, error) {
	db, err := database.GetDatabase(cfg.DB(), cfg.Debug())
	if err != nil {
		return nil, err
	}

	dbm := database.New(db)

	return dbm, dbm.Migrate()
}

func migrate(cfg *config.AppConfig, _ []string) error {
	_, err := openDB(cfg)

	return err
}

func seed(cfg *config.AppConfig, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	file := fs.String("file", "fixtures.yml", "fixtures file")
	_ = fs.Parse(args)

	f, err := fixtures.Read(*file)
	if err != nil {
		return err
	}

	dbm, err := openDB(cfg)
	if err != nil {
		return err
	}

	users := identity.NewResolver(dbm, cfg.IdentityCacheTTL())
	tr := tracker.New(dbm, membership.NewAuthorizer(dbm), users, cfg.InviteTTL())

	return fixtures.Apply(context.Background(), tr, users, f)
}

func token(cfg *config.AppConfig, args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	email := fs.String("email", "", "email")
	name := fs.String("name", "", "display name")
	ttl := fs.Duration("ttl", time.Hour*24, "token ttl, 0 for no expiration")
	_ = fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("no email")
	}

	if cfg.JWTSecret() == "" {
		return fmt.Errorf("auth.jwt_secret is not set")
	}

	s, err := identity.NewTokenManager(cfg.JWTSecret(), cfg.EmailClaim()).Create(identity.Claims{Email: *email, Name: *name}, *ttl)
	if err != nil {
		return err
	}

	fmt.Println(s)

	return nil
}

func main() {
	conf := flag.String("config", "projtrack.yml", "name of config file")
	flag.Usage = usage
	flag.Parse()

	cfg := config.NewAppConfig()
	cfg.Load(*conf)
	cfg.LoadEnv("PROJTRACK_")

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	commands := map[string]func(*config.AppConfig, []string) error{
		"migrate": migrate,
		"seed":    seed,
		"token":   token,
	}

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		usage()
		os.Exit(2)
	}

	if err := cmd(cfg, flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
