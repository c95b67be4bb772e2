package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipemint/backend/internal/models"
)

// DefaultChannel is the Redis Pub/Sub channel ledger notifications go to
const DefaultChannel = "recipemint:events"

// Publisher delivers committed ledger events to external observers
type Publisher interface {
	Publish(ctx context.Context, evts []models.Event) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, evts []models.Event) error {
	return nil
}

// Message is the JSON envelope sent on the channel
type Message struct {
	ID      uint64          `json:"id"`
	EventID string          `json:"event_id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	At      int64           `json:"at"`
}

// NewMessage wraps an outbox row for the wire
func NewMessage(evt models.Event) Message {
	return Message{
		ID:      evt.ID,
		EventID: evt.EventID,
		Type:    evt.Type,
		Payload: json.RawMessage(evt.Payload),
		At:      evt.CreatedAt.Unix(),
	}
}

// RedisPublisher publishes events on a Redis Pub/Sub channel
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

// NewRedisPublisher creates a publisher; an empty channel uses DefaultChannel
func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{rdb: rdb, channel: channel}
}

// Publish sends the events in order, stopping at the first failure
func (p *RedisPublisher) Publish(ctx context.Context, evts []models.Event) error {
	for _, evt := range evts {
		body, err := json.Marshal(NewMessage(evt))
		if err != nil {
			return fmt.Errorf("failed to marshal event %d: %w", evt.ID, err)
		}
		if err := p.rdb.Publish(ctx, p.channel, body).Err(); err != nil {
			return fmt.Errorf("failed to publish event %d: %w", evt.ID, err)
		}
	}
	return nil
}

// AsyncPublisher queues events and forwards them to the wrapped publisher
// from a single goroutine, keeping commit order without making the caller
// wait on the broker.
type AsyncPublisher struct {
	next  Publisher
	queue chan []models.Event
	wg    sync.WaitGroup
	once  sync.Once
}

// NewAsyncPublisher starts the forwarding goroutine
func NewAsyncPublisher(next Publisher, buffer int) *AsyncPublisher {
	if buffer <= 0 {
		buffer = 1024
	}
	p := &AsyncPublisher{
		next:  next,
		queue: make(chan []models.Event, buffer),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

func (p *AsyncPublisher) run() {
	defer p.wg.Done()
	for batch := range p.queue {
		if err := p.next.Publish(context.Background(), batch); err != nil {
			log.Printf("[Events] publish failed for %d event(s): %v", len(batch), err)
		}
	}
}

// Publish enqueues the batch. A full queue drops the batch; the outbox
// table still has it for replay.
func (p *AsyncPublisher) Publish(ctx context.Context, evts []models.Event) error {
	if len(evts) == 0 {
		return nil
	}
	select {
	case p.queue <- evts:
		return nil
	default:
		log.Printf("[Events] queue full, dropped %d event(s) starting at id %d", len(evts), evts[0].ID)
		return fmt.Errorf("event queue full")
	}
}

// Close drains the queue and stops the goroutine
func (p *AsyncPublisher) Close() {
	p.once.Do(func() {
		close(p.queue)
	})
	p.wg.Wait()
}
