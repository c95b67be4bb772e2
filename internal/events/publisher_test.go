package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipemint/backend/internal/events"
	"github.com/pageza/recipemint/backend/internal/models"
)

func sampleEvents() []models.Event {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Event{
		{ID: 1, EventID: "a", Type: events.TypeRecipeSubmitted, Payload: `{"recipe_id":1,"creator":"0x01","title":"Soup"}`, CreatedAt: at},
		{ID: 2, EventID: "b", Type: events.TypeRecipeVoted, Payload: `{"recipe_id":1,"voter":"0x02"}`, CreatedAt: at},
	}
}

func TestRedisPublisher(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	sub := rdb.Subscribe(ctx, events.DefaultChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	msgs := sub.Channel()

	pub := events.NewRedisPublisher(rdb, "")
	require.NoError(t, pub.Publish(ctx, sampleEvents()))

	for _, want := range sampleEvents() {
		select {
		case msg := <-msgs:
			var got events.Message
			require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Type, got.Type)
			assert.JSONEq(t, want.Payload, string(got.Payload))
			assert.Equal(t, want.CreatedAt.Unix(), got.At)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", want.ID)
		}
	}
}

func TestRedisPublisherError(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	err = events.NewRedisPublisher(rdb, "custom").Publish(context.Background(), sampleEvents())
	assert.Error(t, err)
}

// collector records batches and can be told to fail
type collector struct {
	mu      sync.Mutex
	batches [][]models.Event
	fail    bool
	done    chan struct{}
}

func (c *collector) Publish(ctx context.Context, evts []models.Event) error {
	if c.done != nil {
		<-c.done
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, evts)
	if c.fail {
		return errors.New("broker down")
	}
	return nil
}

func TestAsyncPublisherKeepsOrder(t *testing.T) {
	next := &collector{}
	pub := events.NewAsyncPublisher(next, 16)

	for i := uint64(1); i <= 10; i++ {
		require.NoError(t, pub.Publish(context.Background(), []models.Event{{ID: i}}))
	}
	require.NoError(t, pub.Publish(context.Background(), nil))
	pub.Close()

	require.Len(t, next.batches, 10)
	for i, b := range next.batches {
		assert.Equal(t, uint64(i+1), b[0].ID)
	}
}

func TestAsyncPublisherQueueFull(t *testing.T) {
	next := &collector{done: make(chan struct{})}
	pub := events.NewAsyncPublisher(next, 1)

	// the first batch may be held by the forwarding goroutine, so fill
	// until a publish is refused
	var refused bool
	for i := uint64(1); i <= 3; i++ {
		if err := pub.Publish(context.Background(), []models.Event{{ID: i}}); err != nil {
			refused = true
		}
	}
	assert.True(t, refused)

	close(next.done)
	pub.Close()
	assert.NotEmpty(t, next.batches)
}

func TestAsyncPublisherSurvivesFailures(t *testing.T) {
	next := &collector{fail: true}
	pub := events.NewAsyncPublisher(next, 4)

	require.NoError(t, pub.Publish(context.Background(), sampleEvents()))
	pub.Close()
	pub.Close()

	assert.Len(t, next.batches, 1)
}
