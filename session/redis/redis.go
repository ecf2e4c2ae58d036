package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ayadlabs/propchat/models"
	"github.com/ayadlabs/propchat/session"
)

const sessionKeyPrefix = "session:"

func Conn(ctx context.Context, host, port, pass string, db int, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", host, port),
		DialTimeout: timeout,
		Password:    pass,
		DB:          db,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	if pong != "PONG" {
		return nil, fmt.Errorf("expected PONG, got %s", pong)
	}

	return client, nil
}

type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (store *Store) Ensure(ctx context.Context, id string) (*session.State, error) {
	if id == "" {
		id = uuid.NewString()
	}

	state, err := store.Get(ctx, id)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, models.ErrSessionNotFound) {
		return nil, err
	}

	state = session.NewState(id)
	if err := store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (store *Store) Get(ctx context.Context, id string) (*session.State, error) {
	val, err := store.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrSessionNotFound
		}
		return nil, err
	}

	var state session.State
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, err
	}
	if state.Preferences == nil {
		state.Preferences = make(map[string]string)
	}

	return &state, nil
}

func (store *Store) Save(ctx context.Context, state *session.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return store.client.Set(ctx, sessionKeyPrefix+state.ID, data, 0).Err()
}

func (store *Store) Reset(ctx context.Context, id string) error {
	return store.client.Del(ctx, sessionKeyPrefix+id).Err()
}
