package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type tokenSessions struct {
	db *bun.DB
}

var _ TokenSessions = (*tokenSessions)(nil)

// NewTokenSessionsRepository returns a bun backed TokenSessions store.
func NewTokenSessionsRepository(db *bun.DB) TokenSessions {
	return &tokenSessions{db: db}
}

// Put inserts one entry per refresh id. Re-inserting an existing id is
// a no-op so the operation stays idempotent.
func (s *tokenSessions) Put(ctx context.Context, refreshID, refreshToken string) error {
	record := &TokenSession{
		RefreshID:    refreshID,
		RefreshToken: refreshToken,
		CreatedAt:    time.Now(),
	}

	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (refresh_id) DO NOTHING").
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist refresh session")
	}

	return nil
}

func (s *tokenSessions) Get(ctx context.Context, refreshID string) (string, error) {
	record := &TokenSession{}
	err := s.db.NewSelect().
		Model(record).
		Where("refresh_id = ?", refreshID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSessionNotFound
		}
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to load refresh session")
	}

	return record.RefreshToken, nil
}

func (s *tokenSessions) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.NewDelete().
		Model((*TokenSession)(nil)).
		Where("created_at < ?", cutoff).
		Exec(ctx)

	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to sweep refresh sessions")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to count swept sessions")
	}

	return affected, nil
}

// SessionSweeper evicts refresh sessions older than the refresh token
// TTL. Entries would otherwise accumulate forever since the base flow
// has no delete path.
type SessionSweeper struct {
	sessions TokenSessions
	maxAge   time.Duration
	interval time.Duration
	logger   Logger
}

func NewSessionSweeper(sessions TokenSessions, maxAge, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionSweeper{
		sessions: sessions,
		maxAge:   maxAge,
		interval: interval,
		logger:   defLogger{},
	}
}

func (s *SessionSweeper) WithLogger(logger Logger) *SessionSweeper {
	s.logger = logger
	return s
}

// Run blocks, sweeping on each tick until the context is cancelled.
func (s *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.maxAge)
	deleted, err := s.sessions.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("session sweep failed: %v", err)
		return
	}

	if deleted > 0 {
		s.logger.Debug("session sweep removed %d expired entries", deleted)
	}
}
