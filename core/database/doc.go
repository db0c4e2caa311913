// Package database provides the MySQL connection layer for the catalog.
//
// Connect opens the shared gorm handle with DSN building, pool tuning and a
// ping check. Pool manages checked-out connections on top of it: Acquire
// validates a candidate with a no-op statement, discards dead connections so
// the driver pool replaces them, and fails with ErrPoolExhausted once the
// bounded retry ceiling (the pool size) is reached.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	pool, err := database.NewPool(db, cfg.Database.PoolSize)
//	conn, err := pool.Acquire(ctx)
//	defer pool.Release(conn)
//	conn.DB().Find(&journals)
//
// The inspector utilities (GetTableColumns, VerifySchema) support startup
// schema verification and the db CLI commands.
package database
