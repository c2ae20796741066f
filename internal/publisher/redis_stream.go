package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stream names consumed by downstream dashboards.
const (
	streamMatchesSaved         = "scoreline.matches.saved"
	streamExtractionsCompleted = "scoreline.extractions.completed"
)

// RedisPublisher publishes match lifecycle events to Redis streams
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishMatchSaved announces that a team's stats for a match were persisted
func (rp *RedisPublisher) PublishMatchSaved(ctx context.Context, event interface{}) error {
	return rp.publish(ctx, streamMatchesSaved, event)
}

// PublishExtractionCompleted announces a finished screenshot extraction,
// including per-image diagnostics
func (rp *RedisPublisher) PublishExtractionCompleted(ctx context.Context, event interface{}) error {
	return rp.publish(ctx, streamExtractionsCompleted, event)
}

func (rp *RedisPublisher) publish(ctx context.Context, stream string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
