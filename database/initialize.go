package database

import (
	"os"

	"journal-service/config"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeDatabase opens the configured relational store and applies any
// pending SQL migrations. The process exits if either step fails: every
// handler depends on the database, so there is nothing useful to serve
// without it.
func InitializeDatabase(cfg config.Config) *sqlx.DB {
	dbConn := db.GetDBConnection(db.DatabaseConfig{
		DRIVER: cfg.DatabaseDriver,
		DB:     cfg.DatabaseURL,
	})

	err := migrations.Migrate(dbConn, "./database/migrations")
	if err != nil {
		logger.Error("Error while running migration", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database initialized successfully")
	return dbConn
}
