package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	supabase "github.com/supabase-community/supabase-go"
)

// SupabaseConfig configures the hosted-Postgres variant of the relational
// mirror target.
type SupabaseConfig struct {
	// ConnectionString is a full Supabase Postgres connection string. When
	// set it is used as-is; otherwise one is derived from ProjectURL and
	// Password.
	ConnectionString string

	// ProjectURL is the Supabase project URL, e.g.
	// "https://[project-ref].supabase.co".
	ProjectURL string

	// APIKey enables the Supabase SDK client for non-SQL features. Optional;
	// the mirror itself only needs the database connection.
	APIKey string

	// Password is the database password (not the API key), required when
	// ConnectionString is not set.
	Password string

	MaxOpenConns int
	MaxIdleConns int
	ConnMaxIdle  time.Duration
	ConnMaxLife  time.Duration
}

// SupabaseClient provides the raga mirror with a sql.DB handle backed by a
// Supabase-hosted Postgres. It satisfies DBProvider like PostgresClient.
type SupabaseClient struct {
	db  *sql.DB
	sdk *supabase.Client
	cfg SupabaseConfig
}

// NewSupabaseClient constructs a Supabase client.
func NewSupabaseClient(cfg SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{cfg: cfg}
}

// Connect derives the connection string, opens the database handle and
// verifies connectivity. When an API key is configured the SDK client is
// initialized as well.
func (c *SupabaseClient) Connect(ctx context.Context) error {
	connStr, err := c.connectionString()
	if err != nil {
		return err
	}

	// Supabase fronts connections with a pooler that rejects the extended
	// protocol's prepared statement cache, so force simple protocol.
	connStr = appendConnParam(connStr, "default_query_exec_mode", "simple_protocol")

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("open supabase postgres: %w", err)
	}

	if c.cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.cfg.MaxOpenConns)
	}
	if c.cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.cfg.MaxIdleConns)
	}
	if c.cfg.ConnMaxIdle > 0 {
		db.SetConnMaxIdleTime(c.cfg.ConnMaxIdle)
	}
	if c.cfg.ConnMaxLife > 0 {
		db.SetConnMaxLifetime(c.cfg.ConnMaxLife)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping supabase postgres: %w", err)
	}
	c.db = db

	if c.cfg.ProjectURL != "" && c.cfg.APIKey != "" {
		sdk, err := supabase.NewClient(c.cfg.ProjectURL, c.cfg.APIKey, nil)
		if err != nil {
			_ = db.Close()
			c.db = nil
			return fmt.Errorf("initialize supabase SDK: %w", err)
		}
		c.sdk = sdk
	}

	return nil
}

// Close closes the database connection.
func (c *SupabaseClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB exposes the underlying handle for query/exec operations.
func (c *SupabaseClient) DB() *sql.DB {
	return c.db
}

// SDK returns the Supabase SDK client, or nil when no API key was configured.
func (c *SupabaseClient) SDK() *supabase.Client {
	return c.sdk
}

// connectionString returns the configured connection string, deriving one
// from the project URL and database password when none is set.
func (c *SupabaseClient) connectionString() (string, error) {
	if c.cfg.ConnectionString != "" {
		return c.cfg.ConnectionString, nil
	}
	if c.cfg.ProjectURL == "" || c.cfg.Password == "" {
		return "", fmt.Errorf("supabase project URL and database password are required when no connection string is set")
	}

	parsed, err := url.Parse(c.cfg.ProjectURL)
	if err != nil {
		return "", fmt.Errorf("parse supabase project URL: %w", err)
	}

	// Host is [project-ref].supabase.co; the database lives at
	// db.[project-ref].supabase.co.
	parts := strings.Split(parsed.Host, ".")
	if len(parts) < 2 || parts[0] == "" {
		return "", fmt.Errorf("invalid supabase project URL %q: expected [project-ref].supabase.co", c.cfg.ProjectURL)
	}

	return fmt.Sprintf("postgresql://postgres:%s@db.%s.supabase.co:5432/postgres?sslmode=require",
		url.QueryEscape(c.cfg.Password), parts[0]), nil
}

// appendConnParam adds a query parameter to a connection string unless it is
// already present.
func appendConnParam(connStr, key, value string) string {
	if strings.Contains(connStr, key+"=") {
		return connStr
	}
	sep := "?"
	if strings.Contains(connStr, "?") {
		sep = "&"
	}
	return connStr + sep + key + "=" + value
}
