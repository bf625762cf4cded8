package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/khrees2412/hireboard/internal/config"
	"github.com/khrees2412/hireboard/internal/events"
	"github.com/sirupsen/logrus"
)

func TestNewWiresComponents(t *testing.T) {
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "nested", "hireboard.db"), LogLevel: "warn"}

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	if _, ok := a.Events.(events.Nop); !ok {
		t.Errorf("expected Nop publisher without redis_url, got %T", a.Events)
	}
	if a.Log.GetLevel() != logrus.WarnLevel {
		t.Errorf("log level = %v, want warn", a.Log.GetLevel())
	}
	if a.Session.Active() {
		t.Error("new app must start without a session")
	}

	got, err := FromContext(WithApp(context.Background(), a))
	if err != nil || got != a {
		t.Errorf("FromContext = %v, %v; want the wired app", got, err)
	}
}

func TestFromContextWithoutApp(t *testing.T) {
	if _, err := FromContext(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("err = %v, want ErrNotInitialized", err)
	}
	if _, err := FromContext(WithApp(context.Background(), nil)); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("nil app: err = %v, want ErrNotInitialized", err)
	}
}

func TestNewFallsBackWhenRedisIsDown(t *testing.T) {
	cfg := &config.Config{
		DBPath:   filepath.Join(t.TempDir(), "hireboard.db"),
		RedisURL: "redis://127.0.0.1:1/0",
		LogLevel: "nonsense",
	}

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	if _, ok := a.Events.(events.Nop); !ok {
		t.Errorf("expected Nop publisher when redis is unreachable, got %T", a.Events)
	}
	if a.Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("invalid level should fall back to info, got %v", a.Log.GetLevel())
	}
}
