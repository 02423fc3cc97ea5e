package msglog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is a single line of a session transcript kept in Redis. It mirrors
// the persisted chat message but is cheap enough to rehydrate a widget
// without touching Postgres.
type Entry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Log is an append-only per-session transcript backed by a Redis sorted set
// scored by timestamp, so ReadAll returns entries in send order.
type Log struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLog(rdb *redis.Client, ttl time.Duration) *Log {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Log{rdb: rdb, ttl: ttl}
}

func key(sessionId string) string {
	return "chatlog:" + sessionId
}

// Append writes one entry and refreshes the session TTL.
func (l *Log) Append(ctx context.Context, sessionId string, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}

	k := key(sessionId)
	pipe := l.rdb.Pipeline()
	pipe.ZAdd(ctx, k, redis.Z{
		Score:  float64(entry.CreatedAt.UnixNano()),
		Member: string(data),
	})
	pipe.Expire(ctx, k, l.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}

// ReadAll returns the full transcript in chronological order.
func (l *Log) ReadAll(ctx context.Context, sessionId string) ([]Entry, error) {
	raw, err := l.rdb.ZRange(ctx, key(sessionId), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// DeleteSession drops a transcript, used when a guest session is migrated
// into a customer session and the old key must not linger.
func (l *Log) DeleteSession(ctx context.Context, sessionId string) error {
	if err := l.rdb.Del(ctx, key(sessionId)).Err(); err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	return nil
}
