package db

import "database/sql"

// DBProvider is an interface for relational clients that expose a sql.DB
// handle. The replication flow accepts either PostgresClient or
// SupabaseClient through it.
type DBProvider interface {
	DB() *sql.DB
}


