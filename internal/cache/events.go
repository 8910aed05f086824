// Package cache puts a Redis read-through cache in front of the event store.
// Reads of the unfiltered event list and of single events are served from
// Redis when possible; every write path (event CRUD, booking creation) is
// passed through and invalidates the affected keys. Redis being down never
// fails a request: reads fall back to the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"smartBooking/internal/lib/logger/sl"
	"smartBooking/internal/models"
	"smartBooking/internal/storage"

	"github.com/redis/go-redis/v9"
)

const allEventsKey = "events:all"

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventStore
type EventStore interface {
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	GetAllEvents(ctx context.Context, filters storage.EventFilters) ([]models.Event, error)
	CreateEvent(ctx context.Context, p storage.CreateEventParams) (*models.Event, error)
	UpdateEvent(ctx context.Context, id int, p storage.UpdateEventParams) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int) error
	CreateBooking(ctx context.Context, p storage.CreateBookingParams) (*models.Booking, error)
}

type EventCache struct {
	log   *slog.Logger
	store EventStore
	rdb   *redis.Client
	ttl   time.Duration
}

func New(log *slog.Logger, store EventStore, rdb *redis.Client, ttl time.Duration) *EventCache {
	return &EventCache{
		log:   log,
		store: store,
		rdb:   rdb,
		ttl:   ttl,
	}
}

func eventKey(id int) string {
	return fmt.Sprintf("event:%d", id)
}

func (c *EventCache) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	const op = "cache.GetEvent"

	data, err := c.rdb.Get(ctx, eventKey(id)).Bytes()
	if err == nil {
		var event models.Event
		if err = json.Unmarshal(data, &event); err == nil {
			return &event, nil
		}
		c.log.Warn("failed to decode cached event", slog.String("op", op), sl.Err(err))
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("cache read failed", slog.String("op", op), sl.Err(err))
	}

	event, err := c.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	c.set(ctx, eventKey(id), event)

	return event, nil
}

func (c *EventCache) GetAllEvents(ctx context.Context, filters storage.EventFilters) ([]models.Event, error) {
	const op = "cache.GetAllEvents"

	// Filtered listings are too varied to be worth caching.
	if filters != (storage.EventFilters{}) {
		return c.store.GetAllEvents(ctx, filters)
	}

	data, err := c.rdb.Get(ctx, allEventsKey).Bytes()
	if err == nil {
		var events []models.Event
		if err = json.Unmarshal(data, &events); err == nil {
			return events, nil
		}
		c.log.Warn("failed to decode cached events", slog.String("op", op), sl.Err(err))
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("cache read failed", slog.String("op", op), sl.Err(err))
	}

	events, err := c.store.GetAllEvents(ctx, filters)
	if err != nil {
		return nil, err
	}

	c.set(ctx, allEventsKey, events)

	return events, nil
}

func (c *EventCache) CreateEvent(ctx context.Context, p storage.CreateEventParams) (*models.Event, error) {
	event, err := c.store.CreateEvent(ctx, p)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx, allEventsKey)

	return event, nil
}

func (c *EventCache) UpdateEvent(ctx context.Context, id int, p storage.UpdateEventParams) (*models.Event, error) {
	event, err := c.store.UpdateEvent(ctx, id, p)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx, eventKey(id), allEventsKey)

	return event, nil
}

func (c *EventCache) DeleteEvent(ctx context.Context, id int) error {
	if err := c.store.DeleteEvent(ctx, id); err != nil {
		return err
	}

	c.invalidate(ctx, eventKey(id), allEventsKey)

	return nil
}

// CreateBooking passes through to the storage transaction and drops the
// cached copies of the event whose seat counter the transaction changed.
func (c *EventCache) CreateBooking(ctx context.Context, p storage.CreateBookingParams) (*models.Booking, error) {
	booking, err := c.store.CreateBooking(ctx, p)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx, eventKey(p.EventID), allEventsKey)

	return booking, nil
}

func (c *EventCache) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("failed to encode cache value", slog.String("key", key), sl.Err(err))
		return
	}

	if err = c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", slog.String("key", key), sl.Err(err))
	}
}

func (c *EventCache) invalidate(ctx context.Context, keys ...string) {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidation failed", slog.Any("keys", keys), sl.Err(err))
	}
}
