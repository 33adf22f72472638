package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (*DBConfig, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(cfg *DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.DSN)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				log.Println("Successfully connected to PostgreSQL!")
				return pool, nil
			}
		}
		log.Printf("Failed to connect to database (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(db *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('user', 'admin')) DEFAULT 'user',
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		refresh_token TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS employees (
		id SERIAL PRIMARY KEY,
		nip TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		position TEXT NOT NULL,
		department TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		address TEXT,
		hire_date DATE NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('active', 'inactive')) DEFAULT 'active',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS decrees (
		id SERIAL PRIMARY KEY,
		employee_id INT NOT NULL,
		number TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		category TEXT NOT NULL CHECK (category IN ('appointment', 'promotion', 'transfer', 'dismissal', 'other')),
		description TEXT,
		effective_date DATE NOT NULL,
		expires_date DATE,
		file_key TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (employee_id) REFERENCES employees(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS certifications (
		id SERIAL PRIMARY KEY,
		employee_id INT NOT NULL,
		name TEXT NOT NULL,
		issuer TEXT NOT NULL,
		credential_number TEXT,
		issued_date DATE NOT NULL,
		expires_date DATE,
		file_key TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (employee_id) REFERENCES employees(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS portfolios (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		url TEXT,
		file_key TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	-- Indexes for performance
	CREATE INDEX IF NOT EXISTS idx_users_refresh_token ON users(refresh_token);
	CREATE INDEX IF NOT EXISTS idx_employees_department ON employees(department);
	CREATE INDEX IF NOT EXISTS idx_employees_status ON employees(status);
	CREATE INDEX IF NOT EXISTS idx_decrees_employee_id ON decrees(employee_id);
	CREATE INDEX IF NOT EXISTS idx_decrees_category ON decrees(category);
	CREATE INDEX IF NOT EXISTS idx_certifications_employee_id ON certifications(employee_id);
	CREATE INDEX IF NOT EXISTS idx_portfolios_user_id ON portfolios(user_id);

    -- Function to update updated_at column
    CREATE OR REPLACE FUNCTION update_updated_at_column()
    RETURNS TRIGGER AS $$
    BEGIN
       NEW.updated_at = NOW();
       RETURN NEW;
    END;
    $$ language 'plpgsql';

    DO $$
    DECLARE
        t TEXT;
    BEGIN
        FOREACH t IN ARRAY ARRAY['employees', 'decrees', 'certifications', 'portfolios'] LOOP
            IF NOT EXISTS (
                SELECT 1
                FROM pg_trigger
                WHERE tgname = 'set_' || t || '_updated_at' AND tgrelid = t::regclass
            ) THEN
                EXECUTE format('CREATE TRIGGER set_%s_updated_at BEFORE UPDATE ON %I FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()', t, t);
            END IF;
        END LOOP;
    END
    $$;
	`
	_, err := db.Exec(context.Background(), sql)
	if err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Println("AutoMigrate applied successfully")
	return nil
}
