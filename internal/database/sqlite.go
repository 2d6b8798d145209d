package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"golang.org/x/crypto/bcrypt"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/logger"
)

var log = logger.StdLogger().With("database")

// Open открывает базу SQLite по DSN, проверяет соединение и создает схему.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// SQLite пишет в один файл; одно соединение избавляет от "database is locked"
	// и делает :memory: общей для всех запросов.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	log.Infof(ctx, "Successfully connected to SQLite database using DSN: %s", dsn)

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// createTables создает все необходимые таблицы в базе данных.
func createTables(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}

	log.Info(ctx, "Database tables created or already exist.")

	// Применяем миграции; без updated_at ни одна запись в kv не пройдет
	if err := applyMigrations(ctx, db); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}
	return nil
}

// applyMigrations применяет миграции базы данных
func applyMigrations(ctx context.Context, db *sql.DB) error {
	// Миграция: время последней записи ключа
	if err := addColumnIfNotExists(ctx, db, "kv", "updated_at", "DATETIME"); err != nil {
		return fmt.Errorf("error adding updated_at column to kv: %w", err)
	}
	log.Debug(ctx, "Migrations applied successfully.")
	return nil
}

// addColumnIfNotExists добавляет колонку в таблицу, если она не существует
func addColumnIfNotExists(ctx context.Context, db *sql.DB, tableName, columnName, columnDef string) error {
	var exists int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, tableName, columnName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking column existence: %w", err)
	}

	if exists == 0 {
		alterQuery := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", tableName, columnName, columnDef)
		if _, err := db.ExecContext(ctx, alterQuery); err != nil {
			return fmt.Errorf("error adding column: %w", err)
		}
		log.Infof(ctx, "Added column %s to table %s", columnName, tableName)
	}
	return nil
}

// HashPassword хеширует пароль с использованием bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// CheckPasswordHash сравнивает хешированный пароль с обычным.
func CheckPasswordHash(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
