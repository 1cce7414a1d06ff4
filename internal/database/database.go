package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "lernquiz_user")
	password := getEnv("DB_PASSWORD", "lernquiz_password")
	dbname := getEnv("DB_NAME", "lernquiz")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS learner_progress (
		user_id    BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		doc        JSONB NOT NULL,
		version    INT NOT NULL DEFAULT 1,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS questions (
		id           UUID PRIMARY KEY,
		subject      VARCHAR(50) NOT NULL,
		difficulty   VARCHAR(20) NOT NULL,
		topic        VARCHAR(100) NOT NULL DEFAULT '',
		prompt       TEXT NOT NULL,
		options      JSONB NOT NULL,
		answer_index INT NOT NULL,
		explanation  TEXT NOT NULL DEFAULT '',
		points       INT NOT NULL DEFAULT 10,
		created_at   TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_questions_subject ON questions(subject);
	CREATE INDEX IF NOT EXISTS idx_questions_bucket ON questions(subject, difficulty);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
