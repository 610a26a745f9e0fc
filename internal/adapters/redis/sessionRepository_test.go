package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	sessionPort "blogcap/internal/ports/session"

	"github.com/go-redis/redis/v8"
)

func TestSessionKey(t *testing.T) {
	if got := sessionKey("abc"); got != "session:abc" {
		t.Errorf("expected session:abc, got %s", got)
	}
}

// Runs only against a real server: set TEST_REDIS_ADDR (DB 15 is used).
func TestSessionRepository_SaveGetDelete(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run real Redis test")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer client.Close()
	repo := NewSessionRepositoryRedis(client)
	ctx := context.Background()

	want := sessionPort.Session{UserID: "u-1", Kind: "admin", Role: "admin"}
	if err := repo.Save(ctx, "test-session", want, 2*time.Second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := repo.Get(ctx, "test-session")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if *got != want {
		t.Errorf("expected %+v, got %+v", want, *got)
	}
	ttl, err := client.TTL(ctx, sessionKey("test-session")).Result()
	if err != nil || ttl <= 0 {
		t.Errorf("expected a positive TTL, got %v (%v)", ttl, err)
	}

	if err := repo.Delete(ctx, "test-session"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, "test-session"); !errors.Is(err, sessionPort.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}
