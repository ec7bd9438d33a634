package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/config"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/logger"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	path, err := resolveMigrationsPath(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}

	command := args[0]
	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", path),
	)

	// create and list work on files alone, no database needed
	switch command {
	case "create":
		runCreate(log, path, args[1:])
		return
	case "list":
		runList(log, path)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := migration.New(db, path, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	runSchemaCommand(log, m, command, args[1:])
}

// resolveMigrationsPath returns an absolute migrations directory. When no
// explicit path is given it tries the working directory first, then the
// directory two levels above the executable (the repo root for binaries
// built into bin/).
func resolveMigrationsPath(explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(path); err != nil {
			if execPath, execErr := os.Executable(); execErr == nil {
				candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	return filepath.Abs(path)
}

func runCreate(log *zap.Logger, path string, args []string) {
	if len(args) < 1 {
		log.Fatal("Migration name required. Usage: migrate create <name> [description]")
	}
	name := args[0]
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(path, name, description)
	if err != nil {
		log.Fatal("Failed to create migration", zap.Error(err))
	}

	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
}

func runList(log *zap.Logger, path string) {
	migrations, err := migration.ListMigrations(path)
	if err != nil {
		log.Fatal("Failed to list migrations", zap.Error(err))
	}
	if len(migrations) == 0 {
		log.Info("No migrations found")
		return
	}

	log.Info("Available migrations", zap.Int("count", len(migrations)))
	for _, m := range migrations {
		fmt.Println("  -", m)
	}
}

func runSchemaCommand(log *zap.Logger, m *migration.Migrator, command string, args []string) {
	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		n, err := strconv.Atoi(argOrFatal(log, args, "Step count required. Usage: migrate step <n>"))
		if err != nil {
			log.Fatal("Invalid step count", zap.Strings("args", args))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "goto":
		v, err := strconv.ParseUint(argOrFatal(log, args, "Version required. Usage: migrate goto <version>"), 10, 32)
		if err != nil {
			log.Fatal("Invalid version number", zap.Strings("args", args))
		}
		if err := m.GoTo(uint(v)); err != nil {
			log.Fatal("Migration goto failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
			return
		}
		log.Info("Current schema version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)

	case "force":
		v, err := strconv.Atoi(argOrFatal(log, args, "Version required. Usage: migrate force <version>"))
		if err != nil {
			log.Fatal("Invalid version number", zap.Strings("args", args))
		}
		if err := m.Force(v); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	case "drop":
		if !hasConfirmFlag(args) {
			log.Fatal("Drop removes all database objects. Use 'migrate drop -confirm' to confirm.")
		}
		if err := m.Drop(); err != nil {
			log.Fatal("Drop failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func argOrFatal(log *zap.Logger, args []string, msg string) string {
	if len(args) < 1 {
		log.Fatal(msg)
	}
	return args[0]
}

func hasConfirmFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println(`Pharmacy Database Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current schema version
  force <version>       Force set schema version (use with caution)
  drop -confirm         Drop all database objects (DANGEROUS)
  create <name> [desc]  Create a new migration file pair
  list                  List available migrations

Flags:
  -path string          Path to migrations directory (default: ./migrations)
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  PHARMACY_DATABASE_HOST, PHARMACY_DATABASE_PORT, PHARMACY_DATABASE_USER,
  PHARMACY_DATABASE_PASSWORD, PHARMACY_DATABASE_DBNAME, PHARMACY_DATABASE_SSLMODE

Examples:
  # Apply all pending migrations
  migrate up

  # Roll back the last migration
  migrate step -1

  # Create a new migration
  migrate create add_expiry_tracking "Track batch expiry dates"

  # Check current schema version
  migrate version`)
}
