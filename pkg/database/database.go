package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"task-api/configs"
	"task-api/pkg/logger"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Manager owns the single process-wide connection pool.
type Manager struct {
	cfg configs.Config

	mu sync.Mutex
	db *sql.DB
}

func NewManager(cfg configs.Config) *Manager {
	return &Manager{cfg: cfg}
}

// Connect opens a new pool and verifies it with a ping. A pool left over from
// an earlier call is closed first, so there is never more than one.
// There is no retry: the caller decides whether a failure is fatal.
func (m *Manager) Connect(ctx context.Context) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		if err := m.db.Close(); err != nil {
			logger.ErrorLogger.Error("Failed to close previous pool", zap.Error(err))
		}
		m.db = nil
	}

	driver, dsn, err := DataSource(m.cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == configs.DriverSQLite {
		// satu koneksi saja, sqlite menulis secara serial
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	m.db = db
	return db, nil
}

// DB returns the current pool, or nil before Connect succeeded.
func (m *Manager) DB() *sql.DB {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.db
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

// DataSource returns the database/sql driver name and DSN for cfg.
func DataSource(cfg configs.Config) (string, string, error) {
	switch cfg.DBDriver {
	case configs.DriverPostgres, "":
		return "postgres", postgresDSN(cfg), nil
	case configs.DriverSQLite:
		return "sqlite", sqliteDSN(cfg.DBName), nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func postgresDSN(cfg configs.Config) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.DBServer, strconv.Itoa(cfg.DBPort)),
		Path:   "/" + cfg.DBName,
	}
	// Trusted connection: tanpa user/password, libpq memakai user OS.
	if !cfg.DBTrustedConnection {
		if cfg.DBPassword != "" {
			u.User = url.UserPassword(cfg.DBUser, cfg.DBPassword)
		} else {
			u.User = url.User(cfg.DBUser)
		}
	}
	q := url.Values{}
	q.Set("sslmode", sslMode(cfg.DBEncrypt, cfg.DBTrustServerCert))
	u.RawQuery = q.Encode()
	return u.String()
}

func sslMode(encrypt, trustServerCert bool) string {
	switch {
	case !encrypt:
		return "disable"
	case trustServerCert:
		return "require"
	default:
		return "verify-full"
	}
}

func sqliteDSN(path string) string {
	return path + "?_pragma=busy_timeout(5000)"
}
