package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
	"github.com/eugenenazirov/cloakroom/internal/config"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(":8085")
	cfg.NumLockers = 12
	cfg.MaxItemsPerLocker = 9
	logger := zaptest.NewLogger(t)

	app, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if app.room.NumLockers() != 12 || app.room.MaxItemsPerLocker() != 9 {
		t.Fatalf("unexpected cloakroom layout %d/%d", app.room.NumLockers(), app.room.MaxItemsPerLocker())
	}
	if app.server == nil || app.server.Handler == nil || app.attendant == nil {
		t.Fatalf("expected server, root handler and attendant to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
	if app.Attendant() != app.attendant {
		t.Fatalf("Attendant accessor did not return underlying instance")
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig("9090")
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestNewReturnsErrorForInvalidLayout(t *testing.T) {
	cfg := baseTestConfig(":0")
	cfg.NumLockers = 0

	if _, err := New(cfg, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error for invalid layout")
	}
}

func TestRootHandlerServesAPIAndMetrics(t *testing.T) {
	app, err := New(baseTestConfig(":0"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := app.Attendant().Deposit(context.Background(), cloakroom.Items{Coats: 1}); err != nil {
		t.Fatalf("Deposit returned error: %v", err)
	}
	handler := app.Server().Handler

	t.Run("forwards api traffic", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/lockers/1", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("exposes metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `cloakroom_lockers{state="closed"} 1`) {
			t.Fatalf("expected locker gauge in metrics output")
		}
		if !strings.Contains(body, `cloakroom_operations_total{operation="deposit",outcome="ok"} 1`) {
			t.Fatalf("expected operation counter in metrics output")
		}
	})

	t.Run("returns not found for unknown paths", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

func baseTestConfig(port string) config.Config {
	return config.Config{
		Port:                 port,
		NumLockers:           5,
		MaxItemsPerLocker:    10,
		LogLevel:             "info",
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}
