package config

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

// ConnectDB opens the shared connection used for the supplier-contact overlay
// table (idempotent). The directory works without it; an empty DSN means the
// YAML seed file is the only source.
func ConnectDB(dsn string) *sql.DB {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB
	}
	if dsn == "" {
		return nil
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("supplier db open failed, continuing without overlay: %v", err)
		return nil
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Printf("supplier db ping failed, continuing without overlay: %v", err)
		_ = db.Close()
		return nil
	}

	DB = db
	log.Println("connected to supplier database")
	return DB
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
