package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dtroode/oauthstore/database"
	"github.com/dtroode/oauthstore/internal/config"
	"github.com/dtroode/oauthstore/internal/logger"
	"github.com/dtroode/oauthstore/internal/model"
	"github.com/dtroode/oauthstore/internal/repository/postgres"
	"github.com/dtroode/oauthstore/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const usage = `Usage: oauthstore <command> [arguments]

Commands:
  migrate                               apply database migrations
  check                                 verify the database schema is complete
  create-user <name> <email> <password> provision a user with scopes read, write
  sweep [-once]                         remove expired codes and tokens
  stats                                 print live entity counts
  version                               print build information
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	logger := logger.New(cfg.LogLevel)

	if err := run(ctx, cfg, logger, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		if errors.Is(err, errUsage) {
			os.Exit(1)
		}
		logger.Fatal("command failed", "command", os.Args[1], "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logger.Logger, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "version":
		logAppVersion(stdout)
		return nil
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	case "migrate":
		return runMigrate(ctx, cfg, logger, stdout)
	case "check":
		return withStore(ctx, cfg, func(_ *postgres.Store) error {
			fmt.Fprintln(stdout, "schema is complete")
			return nil
		})
	case "create-user":
		return runCreateUser(ctx, cfg, logger, args, stdout, stderr)
	case "sweep":
		return runSweep(ctx, cfg, logger, args, stdout, stderr)
	case "stats":
		return withStore(ctx, cfg, func(store *postgres.Store) error {
			stats, err := store.Stats(ctx)
			if err != nil {
				return err
			}
			printStats(stdout, stats)
			return nil
		})
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return errUsage
	}
}

// withStore opens the pool, refuses to continue on an incomplete schema, and
// drains the pool when fn returns.
func withStore(ctx context.Context, cfg *config.Config, fn func(store *postgres.Store) error) error {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Initialize(ctx); err != nil {
		return err
	}

	return fn(postgres.NewStore(conn))
}

func runMigrate(ctx context.Context, cfg *config.Config, logger *logger.Logger, stdout io.Writer) error {
	logger.Info("applying migrations")
	if err := database.Migrate(ctx, cfg.Database.DSN); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "migrations applied")
	return nil
}

func runCreateUser(ctx context.Context, cfg *config.Config, logger *logger.Logger, args []string, stdout, stderr io.Writer) error {
	if len(args) != 3 {
		fmt.Fprintln(stderr, "Usage: oauthstore create-user <name> <email> <password>")
		fmt.Fprintln(stderr, `Example: oauthstore create-user "John Doe" "john@example.com" "mypassword"`)
		return errUsage
	}
	name, email, password := args[0], args[1], args[2]

	return withStore(ctx, cfg, func(store *postgres.Store) error {
		provisioner := service.NewUserProvisioner(store.Users, service.NewBcryptHasher(cfg.Password.HashCost), logger)

		user, err := provisioner.Provision(ctx, name, email, password)
		if err != nil {
			if errors.Is(err, model.ErrUserExists) {
				return fmt.Errorf("a user with username %q or email %q already exists", name, email)
			}
			return err
		}

		fmt.Fprintf(stdout, "user created\n  id:       %s\n  username: %s\n  email:    %s\n  scopes:   %s\n",
			user.ID, user.Username, user.Email, strings.Join(user.Scopes, ", "))
		return nil
	})
}

func runSweep(ctx context.Context, cfg *config.Config, logger *logger.Logger, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	once := fs.Bool("once", false, "sweep once and exit")
	interval := fs.Duration("interval", cfg.Sweeper.Interval, "time between sweeps")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	return withStore(ctx, cfg, func(store *postgres.Store) error {
		sweeper := service.NewSweeper(store.AuthorizationCodes, store.AccessTokens, store.RefreshTokens, *interval, logger)

		if *once {
			res, err := sweeper.SweepOnce(ctx)
			fmt.Fprintf(stdout, "removed %d authorization codes, %d access tokens, %d refresh tokens\n",
				res.AuthorizationCodes, res.AccessTokens, res.RefreshTokens)
			return err
		}

		return sweeper.Run(ctx)
	})
}

func printStats(w io.Writer, stats model.Stats) {
	fmt.Fprintf(w, "clients:             %d\n", stats.Clients)
	fmt.Fprintf(w, "users:               %d\n", stats.Users)
	fmt.Fprintf(w, "authorization codes: %d\n", stats.AuthorizationCodes)
	fmt.Fprintf(w, "access tokens:       %d\n", stats.AccessTokens)
	fmt.Fprintf(w, "refresh tokens:      %d\n", stats.RefreshTokens)
}

func logAppVersion(w io.Writer) {
	tmpl := `Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Fprintf(w, tmpl, buildVersion, buildDate, buildCommit)
}
