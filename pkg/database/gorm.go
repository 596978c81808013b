package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel logger.LogLevel
}

func getLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  true,
		},
	)
}

// gormConfig turns on TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey on every dialect.
func gormConfig(opts Options) *gorm.Config {
	return &gorm.Config{
		Logger:         getLogger(opts.LogLevel),
		TranslateError: true,
	}
}

func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// SetMaxIdleConns sets the maximum number of connections in the idle connection pool.
	sqlDB.SetMaxIdleConns(10)

	// SetMaxOpenConns sets the maximum number of open connections to the database.
	sqlDB.SetMaxOpenConns(100)

	// SetConnMaxLifetime sets the maximum amount of time a connection may be reused.
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// Open connects to Postgres when dsn is set and falls back to the SQLite
// file at sqlitePath otherwise.
func Open(dsn, sqlitePath string) (*gorm.DB, error) {
	opts := Options{LogLevel: logger.Warn}
	if dsn != "" {
		return NewPostgres(dsn, opts)
	}
	log.Printf("[INFO] DB_CONNECTION_STRING not set, using SQLite at %s", sqlitePath)
	return NewSQLite(sqlitePath, opts)
}

func NewPostgres(dsn string, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig(opts))
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}

	return db, nil
}

// NewSQLite opens a SQLite database. It backs local development when no
// Postgres DSN is configured and the service tests ("file:x?mode=memory&cache=shared").
// SQLite allows one writer, so the pool is pinned to a single connection.
func NewSQLite(path string, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(opts))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	return db, nil
}
