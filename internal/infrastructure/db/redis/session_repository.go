package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/madahotspot/voucher-console/internal/core/domain"
)

const defaultSessionTTL = 12 * time.Hour

// SessionRepository persists console sessions in Redis, one key per session.
// It is the durable side of the session store: written through on every
// session mutation, deleted on logout, expiring on its own after the TTL.
// Key format: session:<sid>
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository wraps the given Redis client. ttl bounds how long a
// session survives without a refresh.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionRepository{client: client, ttl: ttl}
}

// Save writes the serialized session under its key, resetting the TTL.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	buf, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(session.ID), buf, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Find loads a persisted session. A missing or expired key maps to
// domain.ErrSessionExpired.
func (r *SessionRepository) Find(ctx context.Context, sid string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, r.key(sid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Delete invalidates a persisted session. Deleting an absent key is not an
// error: logout must be idempotent.
func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.key(sid)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) key(sid string) string {
	return "session:" + sid
}
