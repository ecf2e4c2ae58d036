package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ayadlabs/propchat/models"
	sessredis "github.com/ayadlabs/propchat/session/redis"
)

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	redisC, err := tcRedis.RunContainer(ctx, testcontainers.WithWaitStrategy(wait.ForListeningPort("6379/tcp")))
	if err != nil {
		t.Fatalf("redis container: %v", err)
	}
	defer func() { _ = redisC.Terminate(ctx) }()

	host, err := redisC.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := redisC.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}

	client, err := sessredis.Conn(ctx, host, port.Port(), "", 0, 5*time.Second)
	if err != nil {
		t.Fatalf("conn: %v", err)
	}
	defer func() { _ = client.Close() }()

	store := sessredis.NewStore(client)

	state, err := store.Ensure(ctx, "whatsapp_123")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	state.Preferences["location"] = "Dubai"
	state.AppendTurn("user", "hello")
	state.TurnCount = 1
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Get(ctx, "whatsapp_123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Preferences["location"] != "Dubai" || loaded.TurnCount != 1 {
		t.Fatalf("state did not round-trip: %#v", loaded)
	}
	if len(loaded.History) != 1 || loaded.History[0].Content != "hello" {
		t.Fatalf("history did not round-trip: %#v", loaded.History)
	}

	if err := store.Reset(ctx, "whatsapp_123"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := store.Get(ctx, "whatsapp_123"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after reset, got %v", err)
	}

	fresh, err := store.Ensure(ctx, "whatsapp_123")
	if err != nil {
		t.Fatalf("ensure after reset: %v", err)
	}
	if fresh.TurnCount != 0 || len(fresh.History) != 0 {
		t.Fatalf("reset session carried old state: %#v", fresh)
	}
}
