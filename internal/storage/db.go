// ABOUTME: SQLite database connection, lifecycle and transaction management.
// ABOUTME: Uses modernc.org/sqlite locally and libsql-client-go for remote Turso databases.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds every repository method. It runs against the database
// directly (DB) or against an open transaction (Tx).
type Queries struct {
	q queryer
}

// DB wraps the database connection.
type DB struct {
	*Queries
	db     *sql.DB
	dbPath string
}

// Tx is a transaction-scoped handle passed to WithTx callbacks.
type Tx struct {
	*Queries
	tx *sql.Tx
}

// Open opens or creates a local SQLite database at the given path.
func Open(dbPath string) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// foreign_keys and busy_timeout are per connection, so they go in the DSN.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	return initDB(db, dbPath, localPragmas)
}

// OpenURL opens a remote libsql database such as a Turso URL.
func OpenURL(dbURL, authToken string) (*DB, error) {
	dsn, err := withAuthToken(dbURL, authToken)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return initDB(db, dbURL, remotePragmas)
}

// IsRemoteURL reports whether target names a libsql server rather than a local file.
func IsRemoteURL(target string) bool {
	for _, scheme := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(target, scheme) {
			return true
		}
	}
	return false
}

func initDB(db *sql.DB, path string, pragmas []string) (*DB, error) {
	d := &DB{Queries: &Queries{q: db}, db: db, dbPath: path}

	if err := d.configurePragmas(pragmas); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := d.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return d, nil
}

func withAuthToken(dbURL, authToken string) (string, error) {
	if authToken == "" {
		return dbURL, nil
	}
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	q := u.Query()
	if q.Get("authToken") == "" {
		q.Set("authToken", authToken)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "reps")
}

// Path returns the file path or URL the database was opened from.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// WithTx runs fn inside one transaction. The transaction is rolled back
// when fn returns an error or panics, and committed otherwise.
func (d *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	sqlTx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil {
				err = multierr.Append(err, fmt.Errorf("rollback: %w", rbErr))
			}
			return
		}
		if cErr := sqlTx.Commit(); cErr != nil {
			err = fmt.Errorf("commit transaction: %w", cErr)
		}
	}()

	return fn(&Tx{Queries: &Queries{q: sqlTx}, tx: sqlTx})
}

var (
	localPragmas = []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	remotePragmas = []string{
		"PRAGMA foreign_keys = ON",
	}
)

// configurePragmas sets up SQLite for optimal performance.
func (d *DB) configurePragmas(pragmas []string) error {
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}
