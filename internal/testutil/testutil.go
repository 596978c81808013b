package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/database"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory SQLite database with every table
// migrated. Each call gets its own database.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLite(dsn, database.Options{LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewPostgresDB starts a disposable Postgres container. It skips the test
// unless COLLABHUB_INTEGRATION=1 since it needs a Docker daemon.
func NewPostgresDB(t *testing.T) *TestDB {
	t.Helper()

	if os.Getenv("COLLABHUB_INTEGRATION") != "1" {
		t.Skip("set COLLABHUB_INTEGRATION=1 to run postgres integration tests")
	}

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_collabhub"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	testDB := &TestDB{Container: container}
	t.Cleanup(func() {
		testDB.Cleanup()
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	testDB.DSN = dsn

	db, err := database.NewPostgres(dsn, database.Options{LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	testDB.DB = db

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		tdb.Container.Terminate(context.Background())
	}
}

// CreateUser inserts a profile with the given skills and returns it.
func CreateUser(t *testing.T, db *gorm.DB, name string, known, wanted []string) *entity.User {
	t.Helper()

	user := &entity.User{
		Username:     name,
		Email:        name + "@example.com",
		FullName:     name,
		Role:         entity.UserRoleStudent,
		SkillsKnown:  known,
		SkillsWanted: wanted,
		Level:        1,
	}
	uow := unitofwork.NewUnitOfWork(db)
	if err := uow.UserRepository().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

// ReloadUser reads the stored profile back.
func ReloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) *entity.User {
	t.Helper()

	user, err := unitofwork.NewUnitOfWork(db).UserRepository().FindOne(context.Background(), specification.ByID{ID: id})
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if user == nil {
		t.Fatalf("user %s not found", id)
	}
	return user
}
