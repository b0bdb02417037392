package testdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"pts/internal/config"
)

// Manager manages the per-node test databases. Every worker node runs its
// unit against its own database (DB_DATABASE=<prefix>_<n>).
type Manager struct {
	config *config.Config
}

// NewManager creates a new Manager
func NewManager(cfg *config.Config) *Manager {
	return &Manager{config: cfg}
}

// EnsureDatabases checks that a test database exists for every node and
// creates the missing ones. Returns the node numbers that have a database.
func (m *Manager) EnsureDatabases(nodeCount int) ([]int, error) {
	// Load .env from the project directory; absent file is fine, plain
	// environment variables still apply.
	envPath := filepath.Join(m.config.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		_ = err
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/", envOr("DB_USERNAME", "root"),
		os.Getenv("DB_PASSWORD"), envOr("DB_HOST", "127.0.0.1"), envOr("DB_PORT", "3306"))
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	nodes := make([]int, 0, nodeCount)
	for i := 1; i <= nodeCount; i++ {
		dbName := m.config.GetDatabaseName(i)

		exists, err := m.databaseExists(db, dbName)
		if err != nil {
			return nil, fmt.Errorf("failed to check database %s: %w", dbName, err)
		}
		if !exists {
			if err := m.createDatabase(db, dbName); err != nil {
				return nil, fmt.Errorf("failed to create database %s: %w", dbName, err)
			}
		}
		nodes = append(nodes, i)
	}

	return nodes, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// databaseExists checks if a database exists
func (m *Manager) databaseExists(db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRow(query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func (m *Manager) createDatabase(db *sql.DB, dbName string) error {
	if !isValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}
	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)
	_, err := db.Exec(query)
	return err
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	invalid := []string{"'", "\"", ";", "--", "/*", "*/", "DROP", "DELETE", "TRUNCATE"}
	upper := strings.ToUpper(name)
	for _, s := range invalid {
		if strings.Contains(upper, s) {
			return false
		}
	}
	return true
}
