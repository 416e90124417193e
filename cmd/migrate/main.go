package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/recurbill/recurbill/internal/config"
	"github.com/recurbill/recurbill/internal/logger"
)

func main() {
	// Parse command line flags
	dir := flag.String("dir", "migrations", "Directory containing migration SQL files")
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	files, err := migrationFiles(*dir)
	if err != nil {
		logger.Fatalw("Failed to read migrations directory", "error", err, "dir", *dir)
	}
	if len(files) == 0 {
		logger.Fatalw("No migration files found", "dir", *dir)
	}

	if *dryRun {
		logger.Info("Dry run mode - printing migration SQL without executing")
		for _, file := range files {
			sql, err := os.ReadFile(file)
			if err != nil {
				logger.Fatalw("Failed to read migration file", "error", err, "file", file)
			}
			fmt.Printf("-- %s\n%s\n", filepath.Base(file), sql)
		}
		return
	}

	dsn := cfg.Postgres.GetDSN()
	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Running database migrations...")

	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		logger.Fatalw("Failed to create schema_migrations table", "error", err)
	}

	for _, file := range files {
		version := strings.TrimSuffix(filepath.Base(file), ".up.sql")

		var applied bool
		if err := db.GetContext(ctx, &applied,
			"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version); err != nil {
			logger.Fatalw("Failed to check migration status", "error", err, "version", version)
		}
		if applied {
			logger.Debugw("Skipping applied migration", "version", version)
			continue
		}

		sql, err := os.ReadFile(file)
		if err != nil {
			logger.Fatalw("Failed to read migration file", "error", err, "file", file)
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			logger.Fatalw("Failed to begin transaction", "error", err)
		}
		if _, err := tx.ExecContext(ctx, string(sql)); err != nil {
			_ = tx.Rollback()
			logger.Fatalw("Failed to apply migration", "error", err, "version", version)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
			_ = tx.Rollback()
			logger.Fatalw("Failed to record migration", "error", err, "version", version)
		}
		if err := tx.Commit(); err != nil {
			logger.Fatalw("Failed to commit migration", "error", err, "version", version)
		}

		logger.Infow("Applied migration", "version", version)
	}

	fmt.Println("Migration process completed")
}

func migrationFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
