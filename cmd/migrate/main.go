package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cosechaencope/backend/internal/infrastructure/config"
	"github.com/cosechaencope/backend/internal/infrastructure/logger"
	"github.com/cosechaencope/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

func main() {
	var (
		migrationsPath = flag.String("path", "migrations", "directory containing migration files")
		steps          = flag.Int("steps", 0, "number of migrations to apply with the steps command")
		forceVersion   = flag.Int("version", -1, "schema version for the force command")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	migrator, err := migration.NewFromURL(cfg.Database.DSN(), *migrationsPath, log)
	if err != nil {
		log.Fatal("failed to create migrator", zap.Error(err))
	}
	defer func() { _ = migrator.Close() }()

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		err = migrator.Steps(*steps)
	case "force":
		if *forceVersion < 0 {
			log.Fatal("force requires -version")
		}
		err = migrator.Force(*forceVersion)
	case "version":
		var version uint
		var dirty bool
		version, dirty, err = migrator.Version()
		if err == nil {
			log.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: migrate [flags] <command>

Commands:
  up        apply all pending migrations
  down      roll back the most recent migration
  steps     apply -steps migrations (negative rolls back)
  version   print the current schema version
  force     mark the schema as -version without running migrations

Flags:
`)
	flag.PrintDefaults()
}
