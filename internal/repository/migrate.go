package repository

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	// Registers the "postgres" driver goose runs migrations through.
	_ "github.com/lib/pq"
)

// Migrate applies all pending goose migrations from dir.
// It opens a short-lived database/sql connection separate from
// the pgx pool, since goose operates on *sql.DB.
func Migrate(databaseURL, dir string) error {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
