// Package database implements the relational store behind the bot: schema
// bootstrap, corpus seeding and one repository per table, over SQLite or
// Postgres.
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/vocabbot/internal/config"
)

// Connect opens the configured database, creates missing tables and seeds
// the shared corpus on first run. Postgres is used when cfg.URL is set,
// SQLite otherwise.
func Connect(cfg config.Database) (*sqlx.DB, error) {
	if cfg.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, initialize(db)
	}

	if dir := filepath.Dir(cfg.SQLitePath); cfg.SQLitePath != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := sqlx.Connect("sqlite3", cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, initialize(db)
}

func initialize(db *sqlx.DB) error {
	if err := initSchema(db); err != nil {
		return err
	}
	return seedCorpus(db)
}

// Per-driver DDL: SERIAL vs AUTOINCREMENT is the only real difference.
var schemaStatements = map[string][]string{
	"sqlite3": {
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT,
			first_name TEXT,
			last_name TEXT,
			difficulty TEXT NOT NULL DEFAULT 'medium',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS common_words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			english_word TEXT NOT NULL,
			russian_translation TEXT NOT NULL,
			word_type TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS user_words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			english_word TEXT NOT NULL,
			russian_translation TEXT NOT NULL,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS answer_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			word_ref INTEGER NOT NULL,
			is_correct BOOLEAN NOT NULL,
			answered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	"postgres": {
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username VARCHAR(100),
			first_name VARCHAR(100),
			last_name VARCHAR(100),
			difficulty VARCHAR(10) NOT NULL DEFAULT 'medium',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS common_words (
			id SERIAL PRIMARY KEY,
			english_word VARCHAR(100) NOT NULL,
			russian_translation VARCHAR(100) NOT NULL,
			word_type VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS user_words (
			id SERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			english_word VARCHAR(100) NOT NULL,
			russian_translation VARCHAR(100) NOT NULL,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS answer_events (
			id SERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			word_ref BIGINT NOT NULL,
			is_correct BOOLEAN NOT NULL,
			answered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	},
}

// initSchema creates missing tables for the connected driver.
func initSchema(db *sqlx.DB) error {
	statements, ok := schemaStatements[db.DriverName()]
	if !ok {
		return fmt.Errorf("unsupported database driver: %s", db.DriverName())
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}
