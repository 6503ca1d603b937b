// Package db provides the PostgreSQL plumbing the custom-fields store
// builds on: a pgx connection pool with startup retries, goose-based
// schema migrations, and a transaction helper.
//
// Configuration is environment-driven so a host application can point the
// subsystem at its own database without code changes:
//
//	CUSTOMFIELDS_DB_URL               - PostgreSQL connection URL (required)
//	CUSTOMFIELDS_DB_MAX_CONNS         - Maximum open connections (default: 10)
//	CUSTOMFIELDS_DB_MIN_CONNS         - Minimum idle connections (default: 2)
//	CUSTOMFIELDS_DB_RETRY_ATTEMPTS    - Connection retry attempts (default: 3)
//	CUSTOMFIELDS_DB_RETRY_INTERVAL    - Base retry interval (default: 5s)
//	CUSTOMFIELDS_DB_MIGRATIONS_TABLE  - Migrations table (default: customfields_migrations)
//
// Usage:
//
//	pool, err := db.Connect(ctx, db.Config{URL: os.Getenv("CUSTOMFIELDS_DB_URL")})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, store.Migrations, "customfields_migrations", log); err != nil {
//	    return err
//	}
package db
