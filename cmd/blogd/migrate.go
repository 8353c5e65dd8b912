package main

import (
	"context"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/unais-08/blogs-fullstack/internal/database"
	"github.com/unais-08/blogs-fullstack/internal/logging"
)

func migrateUp(c *cli.Context) error {
	return withDB(c, "applied migrations", database.Migrate)
}

func migrateStatus(c *cli.Context) error {
	return withDB(c, "read migration status", database.MigrationStatus)
}

func withDB(c *cli.Context, done string, fn func(ctx context.Context, db *database.DB) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.IsProduction())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(c.Context, cfg)
	if err != nil {
		log.Error("database connection failed", zap.Error(err))
		return err
	}
	defer db.Close()

	if err := fn(c.Context, db); err != nil {
		log.Error("migration command failed", zap.Error(err))
		return err
	}

	log.Info(done)
	return nil
}
