package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"support-relay/internal/domain"
	"support-relay/internal/ports/output"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure RedisSessionStore implements SessionStore interface
var _ output.SessionStore = (*RedisSessionStore)(nil)

// RedisSessionStore struct - Output adapter for Redis-backed chat storage.
// Message histories live in a sorted set per session scored by sequence
// number; a per-session counter hands out sequences and a global sorted set
// scored by last-activity time backs the directory listing. Sequence
// assignment and the append run in one Lua script, so concurrent appends to
// the same session can neither collide nor leave gaps.
type RedisSessionStore struct {
	client *redis.Client
}

// appendScript atomically assigns the next sequence and stores the message.
// KEYS: messages zset, seq counter, sessions zset, session meta hash.
// ARGV: session id, sender, content, timestamp (RFC3339), activity score.
var appendScript = redis.NewScript(`
local seq = redis.call('INCR', KEYS[2]) - 1
local msg = cjson.encode({
  session_id = ARGV[1],
  sender = ARGV[2],
  content = ARGV[3],
  sequence = seq,
  timestamp = ARGV[4],
})
redis.call('ZADD', KEYS[1], seq, msg)
redis.call('ZADD', KEYS[3], ARGV[5], ARGV[1])
redis.call('HSETNX', KEYS[4], 'created_at', ARGV[4])
return seq
`)

// NewRedisSessionStore creates the store from a redis URL and verifies the
// connection before returning.
func NewRedisSessionStore(ctx context.Context, redisURL string) (*RedisSessionStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	logrus.Infof("Redis session store connected: %s", opts.Addr)
	return &RedisSessionStore{client: client}, nil
}

// sessionsKey returns the key for the directory's activity-ordered set.
func sessionsKey() string {
	return "chat:sessions"
}

// messagesKey returns the key for a session's message sorted set.
func messagesKey(sessionID string) string {
	return fmt.Sprintf("chat:session:%s:messages", sessionID)
}

// seqKey returns the key for a session's sequence counter.
func seqKey(sessionID string) string {
	return fmt.Sprintf("chat:session:%s:seq", sessionID)
}

// metaKey returns the key for a session's metadata hash.
func metaKey(sessionID string) string {
	return fmt.Sprintf("chat:session:%s", sessionID)
}

func validateSessionID(id string) error {
	if id == "" || len(id) > domain.MaxSessionIDLength {
		return domain.ErrInvalidSessionID
	}
	return nil
}

// EnsureSession returns the session for an id, creating its metadata when absent.
func (s *RedisSessionStore) EnsureSession(ctx context.Context, id string) (*domain.Session, error) {
	if err := validateSessionID(id); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339Nano)
	if err := s.client.HSetNX(ctx, metaKey(id), "created_at", stamp).Err(); err != nil {
		return nil, err
	}

	created, err := s.client.HGet(ctx, metaKey(id), "created_at").Result()
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		createdAt = now
	}

	updatedAt := createdAt
	if score, err := s.client.ZScore(ctx, sessionsKey(), id).Result(); err == nil {
		updatedAt = time.UnixMilli(int64(score)).UTC()
	}

	return &domain.Session{ID: id, CreatedAt: createdAt, UpdatedAt: updatedAt}, nil
}

// Append stores one message, assigning the next per-session sequence.
func (s *RedisSessionStore) Append(ctx context.Context, sessionID string, sender domain.Sender, content string) (*domain.Message, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	now := time.Now().UTC()
	keys := []string{messagesKey(sessionID), seqKey(sessionID), sessionsKey(), metaKey(sessionID)}
	args := []interface{}{
		sessionID,
		string(sender),
		content,
		now.Format(time.RFC3339Nano),
		now.UnixMilli(),
	}

	seq, err := appendScript.Run(ctx, s.client, keys, args...).Int64()
	if err != nil {
		return nil, err
	}

	return &domain.Message{
		SessionID: sessionID,
		Sender:    sender,
		Content:   content,
		Sequence:  seq,
		Timestamp: now,
	}, nil
}

// Messages returns a session's history ordered by sequence.
// Unknown ids yield an empty slice.
func (s *RedisSessionStore) Messages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	raw, err := s.client.ZRangeByScore(ctx, messagesKey(sessionID), &redis.ZRangeBy{
		Min: "-inf",
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, err
	}

	history := make([]domain.Message, 0, len(raw))
	for _, item := range raw {
		var msg domain.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			logrus.Warnf("Skipping malformed stored message in session %s: %v", sessionID, err)
			continue
		}
		history = append(history, msg)
	}
	return history, nil
}

// ListSessions returns directory rows ordered by most recent activity.
// Only sessions with at least one appended message are listed.
func (s *RedisSessionStore) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	entries, err := s.client.ZRevRangeWithScores(ctx, sessionsKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.SessionSummary, 0, len(entries))
	for _, entry := range entries {
		id, ok := entry.Member.(string)
		if !ok {
			continue
		}

		count, err := s.client.ZCard(ctx, messagesKey(id)).Result()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			continue
		}

		summary := domain.SessionSummary{
			ID:           id,
			MessageCount: count,
			UpdatedAt:    time.UnixMilli(int64(entry.Score)).UTC(),
		}

		last, err := s.client.ZRevRange(ctx, messagesKey(id), 0, 0).Result()
		if err != nil {
			return nil, err
		}
		if len(last) > 0 {
			var msg domain.Message
			if err := json.Unmarshal([]byte(last[0]), &msg); err == nil {
				summary.Preview = msg.Content
			}
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Exists reports whether a session id has been seen before.
func (s *RedisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, metaKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Ping checks the Redis connection.
func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}
