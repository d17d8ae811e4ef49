package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// idLength matches the length of auto-generated document ids
const idLength = 20

// GormStore keeps saved cards in a SQL database. Every query is scoped by user id.
type GormStore struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the SQLite database at dsn
func Open(dsn string, log *zap.Logger) (*GormStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("store: empty database path")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := ensureDir(dsn); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(zap.NewStdLog(log), logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite sql: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return NewGormStore(db, log)
}

// NewGormStore wraps an open database and migrates the schema
func NewGormStore(db *gorm.DB, log *zap.Logger) (*GormStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := db.AutoMigrate(&SavedCard{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &GormStore{db: db, logger: log, now: time.Now}, nil
}

// Close closes the underlying connection
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save appends a snapshot to the user's collection and returns its new id
func (s *GormStore) Save(ctx context.Context, userID string, snap Snapshot) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}
	id, err := gonanoid.New(idLength)
	if err != nil {
		return "", fmt.Errorf("store: generate id: %w", err)
	}
	at := snap.Time
	if at.IsZero() {
		at = s.now()
	}

	rec := SavedCard{
		ID:           id,
		UserID:       userID,
		Title:        snap.Title,
		Quote:        snap.Quote,
		Image:        snap.Image,
		Time:         at.UTC(),
		AIReply:      snap.AIReply,
		UserQuestion: snap.UserQuestion,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", fmt.Errorf("store: save card: %w", err)
	}
	s.logger.Debug("card saved", zap.String("user", userID), zap.String("id", id))
	return id, nil
}

// List returns every card the user saved, in no particular order
func (s *GormStore) List(ctx context.Context, userID string) ([]SavedCard, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	var cards []SavedCard
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("store: list cards: %w", err)
	}
	return cards, nil
}

// Delete removes one of the user's cards
func (s *GormStore) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	res := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&SavedCard{})
	if res.Error != nil {
		return fmt.Errorf("store: delete card: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.logger.Debug("card deleted", zap.String("user", userID), zap.String("id", id))
	return nil
}

// ensureDir creates the parent directory of a file DSN
func ensureDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("store: create database directory: %w", err)
	}
	return nil
}
