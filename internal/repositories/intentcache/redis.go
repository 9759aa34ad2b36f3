package intentcache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/sagaforge/progression-api/internal/entities/saga"
	"github.com/sagaforge/progression-api/internal/errors"
	redisclient "github.com/sagaforge/progression-api/internal/redis"
)

const (
	intentKeyPrefix  = "intent:"
	indexKeyPrefix   = "intent:index:"
	defaultIntentTTL = 15 * time.Minute

	// Error messages
	errCharacterIDEmpty = "character ID cannot be empty"
	errPendingHashEmpty = "pending hash cannot be empty"
	errIntentNil        = "intent cannot be nil"
)

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis-backed intent cache
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{
		client: client,
		ttl:    defaultIntentTTL,
	}
}

func intentKey(characterID, pendingHash string) string {
	return intentKeyPrefix + characterID + ":" + pendingHash
}

func indexKey(characterID string) string {
	return indexKeyPrefix + characterID
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.PendingHash == "" {
		return nil, errors.InvalidArgument(errPendingHashEmpty)
	}

	result, err := r.client.Get(ctx, intentKey(input.CharacterID, input.PendingHash)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no cached intent for character %s", input.CharacterID)
		}
		return nil, errors.Wrapf(err, "failed to get cached intent")
	}

	var intent saga.BuildIntent
	if err := json.Unmarshal([]byte(result), &intent); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal cached intent")
	}

	return &GetOutput{Intent: &intent}, nil
}

func (r *redisRepository) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.PendingHash == "" {
		return nil, errors.InvalidArgument(errPendingHashEmpty)
	}
	if input.Intent == nil {
		return nil, errors.InvalidArgument(errIntentNil)
	}

	data, err := json.Marshal(input.Intent)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal intent")
	}

	key := intentKey(input.CharacterID, input.PendingHash)
	idx := indexKey(input.CharacterID)

	// The index set tracks every entry key for the character so
	// Invalidate can drop them all without a scan.
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, r.ttl)
	pipe.SAdd(ctx, idx, key)
	pipe.Expire(ctx, idx, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to cache intent")
	}

	return &SetOutput{}, nil
}

func (r *redisRepository) Invalidate(ctx context.Context, input InvalidateInput) (*InvalidateOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	idx := indexKey(input.CharacterID)
	keys, err := r.client.SMembers(ctx, idx).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to read intent index")
	}

	if len(keys) == 0 {
		return &InvalidateOutput{}, nil
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, keys...)
	pipe.Del(ctx, idx)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to invalidate cached intents")
	}

	return &InvalidateOutput{Dropped: int(del.Val())}, nil
}
