// Package history keeps a local ledger of processing runs in SQLite, so a
// user can see which files were already processed and with what mode.
package history

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry records one completed processing run.
type Entry struct {
	ID         uint      `gorm:"primarykey"`
	CreatedAt  time.Time `gorm:"index"`
	SourceFile string    `gorm:"size:512"`
	OutputFile string    `gorm:"size:512"`
	Mode       string    `gorm:"size:64;index"`
	Firmware   string    `gorm:"size:16"`
	Snapshots  int
	LinesIn    int
	LinesOut   int
	Warnings   int
	DurationMs int64
}

// Store is the run ledger. Safe for sequential use from one process.
type Store struct {
	db *gorm.DB
}

// Open opens or creates the ledger database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening history database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrating history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record appends one run to the ledger.
func (s *Store) Record(e *Entry) error {
	if err := s.db.Create(e).Error; err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}
	return nil
}

// Recent returns the latest n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	var entries []Entry
	err := s.db.Order("created_at desc, id desc").Limit(n).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing history entries: %w", err)
	}
	return entries, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
