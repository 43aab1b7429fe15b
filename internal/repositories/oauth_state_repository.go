package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrStateNotFound = errors.New("oauth state not found")

// OAuthStateRepository holds the per-flow CSRF nonces for the OAuth
// authorization-code exchange. Each nonce is consumed exactly once; unredeemed
// nonces fall out via TTL.
type OAuthStateRepository interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) error
}

type oauthStateRepository struct {
	redis  redis.UniversalClient
	prefix string
}

func NewOAuthStateRepository(client redis.UniversalClient) OAuthStateRepository {
	return &oauthStateRepository{redis: client, prefix: "oauth:state"}
}

func (r *oauthStateRepository) key(state string) string {
	return r.prefix + ":" + state
}

func (r *oauthStateRepository) Save(ctx context.Context, state string, ttl time.Duration) error {
	if err := r.redis.Set(ctx, r.key(state), "1", ttl).Err(); err != nil {
		return fmt.Errorf("oauth state save: %w", err)
	}
	return nil
}

// Consume deletes the nonce as it reads it, so a replayed callback fails.
func (r *oauthStateRepository) Consume(ctx context.Context, state string) error {
	if err := r.redis.GetDel(ctx, r.key(state)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrStateNotFound
		}
		return fmt.Errorf("oauth state consume: %w", err)
	}
	return nil
}
