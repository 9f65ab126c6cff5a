// Package cache holds the Redis-backed helpers: the provider message id index
// used by status callbacks and the sweep locks.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const indexPrefix = "dispatch:provider:"

// MessageIndex maps provider message ids to dispatch record ids.
type MessageIndex struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMessageIndex(client *redis.Client, ttl time.Duration) *MessageIndex {
	return &MessageIndex{client: client, ttl: ttl}
}

// Put remembers that providerID belongs to recordID.
func (i *MessageIndex) Put(ctx context.Context, providerID string, recordID int64) error {
	if err := i.client.Set(ctx, indexPrefix+providerID, recordID, i.ttl).Err(); err != nil {
		return fmt.Errorf("index provider message %s: %w", providerID, err)
	}
	return nil
}

// Lookup returns the record id for providerID. ok is false when the id is unknown or expired.
func (i *MessageIndex) Lookup(ctx context.Context, providerID string) (recordID int64, ok bool, err error) {
	val, err := i.client.Get(ctx, indexPrefix+providerID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup provider message %s: %w", providerID, err)
	}

	recordID, err = strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt index entry for %s: %w", providerID, err)
	}
	return recordID, true, nil
}
