package db

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database wraps the SQLite connection. Batch writes are serialized through
// the writer mutex; readers go straight to the pool and proceed concurrently
// with a writer under WAL.
type Database struct {
	gorm    *gorm.DB
	writeMu sync.Mutex
}

// Open connects to the SQLite database at path and migrates the schema.
// The file is created if it does not exist.
func Open(path string) (*Database, error) {
	// Configure GORM logger
	newLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      false,
			Colorful:                  true,
		},
	)

	// WAL so CLI and UI processes can share the file; busy_timeout bounds
	// lock contention instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)", path)

	gdb, err := gorm.Open(gormlite.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := gdb.AutoMigrate(
		&Repack{},
		&MagnetLink{},
		&Category{},
		&PopularRepack{},
		&PopularViewState{},
		&Setting{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	return &Database{gorm: gdb}, nil
}

// transaction runs fn inside one serialized write transaction.
func (d *Database) transaction(fn func(tx *gorm.DB) error) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	return d.gorm.Transaction(fn)
}
