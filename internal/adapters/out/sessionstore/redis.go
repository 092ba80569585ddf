package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "makanapa"

// RedisStore keeps sessions as JSON under "<prefix>:session:<requester id>".
// A zero ttl keeps sessions until they are finished or abandoned.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

type sessionDTO struct {
	RequesterID  int64  `json:"requester_id"`
	State        string `json:"state"`
	Kind         string `json:"kind,omitempty"`
	FromCategory string `json:"from_category,omitempty"`
	From         string `json:"from,omitempty"`
	ToCategory   string `json:"to_category,omitempty"`
	To           string `json:"to,omitempty"`
}

func (s *RedisStore) Get(ctx context.Context, requesterID kernel.UserID) (*dialogue.Session, error) {
	payload, err := s.client.Get(ctx, s.key(requesterID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.NewObjectNotFoundError("session", requesterID.String())
	}
	if err != nil {
		return nil, err
	}

	var dto sessionDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		return nil, fmt.Errorf("failed to decode session of %s: %w", requesterID, err)
	}

	state, err := dialogue.ParseState(dto.State)
	if err != nil {
		return nil, err
	}
	return dialogue.RestoreSession(dialogue.Snapshot{
		RequesterID:  kernel.UserID(dto.RequesterID),
		State:        state,
		Kind:         order.DeliveryKind(dto.Kind),
		FromCategory: dialogue.Category(dto.FromCategory),
		From:         dto.From,
		ToCategory:   dialogue.Category(dto.ToCategory),
		To:           dto.To,
	})
}

func (s *RedisStore) Save(ctx context.Context, session *dialogue.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	snapshot := session.Snapshot()
	payload, err := json.Marshal(sessionDTO{
		RequesterID:  snapshot.RequesterID.Int64(),
		State:        snapshot.State.String(),
		Kind:         string(snapshot.Kind),
		FromCategory: string(snapshot.FromCategory),
		From:         snapshot.From,
		ToCategory:   string(snapshot.ToCategory),
		To:           snapshot.To,
	})
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key(snapshot.RequesterID), payload, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, requesterID kernel.UserID) error {
	return s.client.Del(ctx, s.key(requesterID)).Err()
}

func (s *RedisStore) key(requesterID kernel.UserID) string {
	return fmt.Sprintf("%s:session:%d", s.prefix, requesterID.Int64())
}
