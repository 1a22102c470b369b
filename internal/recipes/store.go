package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"recipebox/internal/config"
	"recipebox/internal/logging"
)

// Store manages recipe persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger

	// writeMu and lock together admit one writer at a time: writeMu within
	// this process, lock across processes sharing the database file.
	writeMu sync.Mutex
	lock    *flock.Flock

	searchLimit     int
	defaultCookbook string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	writerLockPollInterval  = 25 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Open initializes or connects to the recipe database. Schema bootstrap
// failures are returned as errors and the store must not be used.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("open recipe store: nil config")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	dsn := fmt.Sprintf(
		"%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		dbPath, cfg.Store.BusyTimeoutMS,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	store := &Store{
		db:              db,
		path:            dbPath,
		logger:          logging.NewComponentLogger(logger, "store"),
		lock:            flock.New(cfg.LockPath()),
		searchLimit:     cfg.Store.SearchLimit,
		defaultCookbook: cfg.Store.DefaultCookbook,
	}
	if store.searchLimit <= 0 {
		store.searchLimit = config.Default().Store.SearchLimit
	}

	ctx := context.Background()
	if err := store.withWriterLock(ctx, func() error {
		return store.initSchema(ctx)
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Ping verifies the database connection is usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ensureContext(ctx))
}

func (s *Store) withWriterLock(ctx context.Context, fn func() error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	locked, err := s.lock.TryLockContext(ctx, writerLockPollInterval)
	if err != nil {
		return fmt.Errorf("acquire writer lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire writer lock: %s is held by another process", s.lock.Path())
	}
	defer func() {
		if unlockErr := s.lock.Unlock(); unlockErr != nil {
			s.logger.Warn("release writer lock failed", logging.Error(unlockErr))
		}
	}()
	return fn()
}

// withTx runs fn inside one write transaction. Any error from fn rolls the
// whole transaction back. Classified errors pass through unchanged; anything
// else is reported as a storage failure for op.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	ctx = ensureContext(ctx)
	err := s.withWriterLock(ctx, func() error {
		return retryOnBusy(ctx, func() error {
			tx, err := s.db.BeginTx(ctx, nil)
			if err != nil {
				return err
			}
			if err := fn(tx); err != nil {
				_ = tx.Rollback()
				return err
			}
			return tx.Commit()
		})
	})
	if err != nil {
		return storageError(op, err)
	}
	return nil
}

// withReadTx runs fn against a single read snapshot so multi-query views
// never mix two committed states.
func (s *Store) withReadTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError(op, err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return storageError(op, err)
	}
	return nil
}
