package db

import (
	"log/slog"
	"os"
	"strings"

	"aioverflow/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database named by dsn and runs the schema migration.
// A "postgres://" prefix selects PostgreSQL, a "sqlite://" prefix the pure-Go
// SQLite driver. An empty dsn falls back to a local SQLite file.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "sqlite://aioverflow.db"
		slog.Info("DATABASE_URL not set, using local sqlite", "dsn", dsn)
	}

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	default:
		dialector = postgres.Open(dsn)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	slog.Info("database connection established")
	return gdb, nil
}

// Migrate applies the schema for every persisted entity.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Question{},
		&models.Answer{},
		&models.Comment{},
	)
}

// Init opens the database named by the DATABASE_URL environment variable.
func Init() (*gorm.DB, error) {
	return Open(os.Getenv("DATABASE_URL"))
}
