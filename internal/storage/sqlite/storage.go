package sqlite

import (
	"database/sql"
	"fmt"

	sqlitedb "github.com/agalitsyn/sqlite"

	"github.com/agalitsyn/todo-weather/internal/storage/sqlite/migrations"
)

// Open connects to the database file at path and brings its schema up to
// date. The caller owns the returned handle and must close it.
func Open(path string) (*sql.DB, error) {
	db, err := sqlitedb.Connect(path)
	if err != nil {
		return nil, err
	}
	// one writer at a time is all sqlite supports anyway
	db.SetMaxOpenConns(1)

	if err := sqlitedb.MigrateUp(db, migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not migrate database: %w", err)
	}
	return db, nil
}
