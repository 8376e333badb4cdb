package cohort

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/distspan/ist/pkg/errors"
)

// Redis is a [Transport] for genuinely separate OS processes, backed by a
// Redis list per worker rank: Send does RPUSH, Recv does a blocking BLPOP.
// This is the transport `ist build --transport=redis` wires up when the
// cohort's ranks are launched as independent binaries, mirroring the
// swappable-backend Store design of the session package (redis vs. file vs.
// memory) applied to message queuing instead of session storage.
type Redis struct {
	client *redis.Client
	keyFor func(rank int) string
}

// RedisConfig configures a Redis-backed transport.
type RedisConfig struct {
	Addr    string // host:port of the Redis server
	BuildID string // namespaces keys so concurrent builds don't collide
}

// NewRedis creates a Redis transport. It does not itself verify
// connectivity; the first Send or Recv surfaces any connection failure as
// an ErrCodeTransport error.
func NewRedis(cfg RedisConfig) *Redis {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	return &Redis{
		client: client,
		keyFor: func(rank int) string {
			return fmt.Sprintf("ist:build:%s:rank:%d", cfg.BuildID, rank)
		},
	}
}

// recvTimeout bounds each BLPOP poll; spec.md §5 defines no job-level
// timeout, so a poll that returns no value within recvTimeout is retried
// until ctx is canceled. Any other Redis error ends Recv.
const recvTimeout = 5 * time.Second

// Send RPUSHes the encoded payload onto its rank's list.
func (r *Redis) Send(ctx context.Context, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransport, err, "redis transport: encode payload for rank %d", payload.Rank)
	}
	if err := r.client.RPush(ctx, r.keyFor(payload.Rank), data).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeTransport, err, "redis transport: send from rank %d", payload.Rank)
	}
	return nil
}

// Recv blocks on BLPOP against fromRank's list until a payload arrives or
// ctx is canceled.
func (r *Redis) Recv(ctx context.Context, fromRank int) (Payload, error) {
	key := r.keyFor(fromRank)
	for {
		if err := ctx.Err(); err != nil {
			return Payload{}, errors.Wrap(errors.ErrCodeTransport, err, "redis transport: recv from rank %d canceled", fromRank)
		}

		res, err := r.client.BLPop(ctx, recvTimeout, key).Result()
		if err == redis.Nil {
			continue // no value within recvTimeout; poll again
		}
		if err != nil {
			return Payload{}, errors.Wrap(errors.ErrCodeTransport, err, "redis transport: recv from rank %d", fromRank)
		}

		// BLPop returns [key, value].
		if len(res) != 2 {
			return Payload{}, errors.New(errors.ErrCodeTransport, "redis transport: malformed BLPOP reply from rank %d", fromRank)
		}

		var payload Payload
		if err := json.Unmarshal([]byte(res[1]), &payload); err != nil {
			return Payload{}, errors.Wrap(errors.ErrCodeTransport, err, "redis transport: decode payload from rank %d", fromRank)
		}
		return payload, nil
	}
}

// Close closes the underlying Redis client.
func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeTransport, err, "redis transport: close")
	}
	return nil
}
