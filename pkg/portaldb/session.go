package portaldb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// Session is one unit of work bound to a single portal's database.
// It wraps a transaction with an explicit-commit discipline: nothing
// persists unless Commit is called, and Close rolls back any uncommitted
// work. Sessions are not safe for concurrent use and must never be shared
// across requests.
type Session struct {
	tx       pgx.Tx
	portalID string
	closed   bool
}

// Tx exposes the underlying transaction for queries.
func (s *Session) Tx() pgx.Tx {
	return s.tx
}

// PortalID returns the portal this session is bound to.
func (s *Session) PortalID() string {
	return s.portalID
}

// Commit persists the session's work and finishes the session.
func (s *Session) Commit(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.tx.Commit(ctx); err != nil {
		return err
	}
	s.closed = true
	return nil
}

// Close releases the session, rolling back any uncommitted work. It is
// idempotent and safe to defer immediately after acquisition; after a
// successful Commit it is a no-op. Close must run on every exit path,
// including cancellation, so connections are never leaked.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
