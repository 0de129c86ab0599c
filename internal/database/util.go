package database

import (
	"log/slog"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetDatabase opens dsn. "postgres:" and "mysql:" prefixes select the server
// drivers, anything else is a sqlite file name.
func GetDatabase(dsn string, debug bool) (*gorm.DB, error) {
	conf := &gorm.Config{TranslateError: true}

	if !debug {
		conf.Logger = logger.Default.LogMode(logger.Silent)
	} else {
		conf.Logger = logger.Default.LogMode(logger.Info)
	}

	var db *gorm.DB
	var err error

	switch {
	case strings.HasPrefix(dsn, "postgres:"):
		slog.Info("open postgres database")
		db, err = gorm.Open(postgres.Open(strings.TrimPrefix(dsn, "postgres:")), conf)
	case strings.HasPrefix(dsn, "mysql:"):
		slog.Info("open mysql database")
		db, err = gorm.Open(mysql.Open(strings.TrimPrefix(dsn, "mysql:")), conf)
	default:
		slog.Info("open sqlite database " + dsn)
		db, err = gorm.Open(sqlite.Open(dsn), conf)
	}

	if err != nil {
		slog.Error("db open error", slog.Any("error", err))
		return nil, err
	}

	// every connection to :memory: is a separate database
	if strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}

		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}
