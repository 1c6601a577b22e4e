package config

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

var (
	// DB is the shared mirror-store connection. The mirror is a best-effort
	// tier: a nil DB means every mirror attempt fails and the cascade falls
	// through, so connection errors are returned, never fatal.
	DB   *sql.DB
	dbMu sync.Mutex
)

// ConnectMirror initializes the shared mirror connection (idempotent).
func ConnectMirror(dsn string) (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB, nil
	}
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/railbook?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	DB = db
	return DB, nil
}

// EnsureMirror pings the shared connection, reconnecting when absent.
func EnsureMirror(dsn string) error {
	dbMu.Lock()
	if DB == nil {
		dbMu.Unlock()
		_, err := ConnectMirror(dsn)
		return err
	}
	defer dbMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return DB.PingContext(ctx)
}

func CloseMirror() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
