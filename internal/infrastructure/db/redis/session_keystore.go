package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

const (
	tokenKey = "session:token"
	userKey  = "session:user"
)

// SessionKeystore persists the gateway session in Redis under two string
// keys, the token and the JSON-serialised user profile. Both are written and
// cleared together so a restart never restores half a session.
type SessionKeystore struct {
	client *redis.Client
	prefix string
}

var _ ports.SessionKeystore = (*SessionKeystore)(nil)

// NewSessionKeystore creates a keystore. prefix namespaces the keys so
// multiple gateway instances can share one Redis.
func NewSessionKeystore(client *redis.Client, prefix string) *SessionKeystore {
	return &SessionKeystore{client: client, prefix: prefix}
}

func (k *SessionKeystore) Load(ctx context.Context) (*domain.Session, error) {
	vals, err := k.client.MGet(ctx, k.key(tokenKey), k.key(userKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}

	token, _ := vals[0].(string)
	rawUser, _ := vals[1].(string)
	if token == "" || rawUser == "" {
		return nil, domain.ErrSessionNotFound
	}

	var user domain.UserProfile
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, fmt.Errorf("session load: decode user: %w", err)
	}

	return &domain.Session{Token: token, User: &user}, nil
}

func (k *SessionKeystore) Save(ctx context.Context, session *domain.Session) error {
	if !session.Valid() {
		return errors.New("session save: token and user must both be present")
	}

	rawUser, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("session save: encode user: %w", err)
	}

	// Single MULTI/EXEC so a crash mid-write cannot leave one key without
	// the other.
	pipe := k.client.TxPipeline()
	pipe.Set(ctx, k.key(tokenKey), session.Token, 0)
	pipe.Set(ctx, k.key(userKey), string(rawUser), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (k *SessionKeystore) Clear(ctx context.Context) error {
	if err := k.client.Del(ctx, k.key(tokenKey), k.key(userKey)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

func (k *SessionKeystore) key(name string) string {
	if k.prefix == "" {
		return name
	}
	return k.prefix + ":" + name
}
