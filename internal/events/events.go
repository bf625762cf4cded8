// Package events publishes marketplace changes on Redis pub/sub channels.
// Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event types, also used as channel names
const (
	JobCreated               = "EVENT_JOB_CREATED"
	JobClosed                = "EVENT_JOB_CLOSED"
	JobDeleted               = "EVENT_JOB_DELETED"
	JobUpdated               = "EVENT_JOB_UPDATED"
	JobSaved                 = "EVENT_JOB_SAVED"
	ApplicationSubmitted     = "EVENT_APPLICATION_SUBMITTED"
	ApplicationStatusChanged = "EVENT_APPLICATION_STATUS_CHANGED"
	UserRegistered           = "EVENT_USER_REGISTERED"
	UserDeleted              = "EVENT_USER_DELETED"
)

// Event is the JSON payload sent on a channel
type Event struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	UserID        int64     `json:"userId"`
	JobID         int64     `json:"jobId,omitempty"`
	ApplicationID int64     `json:"applicationId,omitempty"`
	Status        string    `json:"status,omitempty"`
	At            time.Time `json:"at"`
}

// New stamps an event with a fresh id and the current time
func New(eventType string, userID int64) Event {
	return Event{
		ID:     uuid.NewString(),
		Type:   eventType,
		UserID: userID,
		At:     time.Now().UTC().Truncate(time.Second),
	}
}

// Publisher delivers events to subscribers
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// RedisPublisher publishes each event on the channel named after its type
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher parses redisURL, connects and verifies the connection.
func NewRedisPublisher(ctx context.Context, redisURL string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisPublisher{rdb: rdb}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", e.Type, err)
	}
	if err := p.rdb.Publish(ctx, e.Type, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

// Subscribe opens a subscription on the given event channels
func (p *RedisPublisher) Subscribe(ctx context.Context, types ...string) *redis.PubSub {
	return p.rdb.Subscribe(ctx, types...)
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}

// Nop discards events. It is used when no Redis URL is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                        { return nil }

// Recorder keeps published events in memory
type Recorder struct {
	Events []Event
	Err    error // returned from every Publish when set
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Types lists the recorded event types in order
func (r *Recorder) Types() []string {
	types := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}
