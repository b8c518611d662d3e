package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected default HTTP addr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected default redis addr, got %s", cfg.RedisAddr)
	}
	if cfg.SaleTxRetries != 3 {
		t.Errorf("expected 3 retries, got %d", cfg.SaleTxRetries)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected 5s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("MYSQL_DSN", "user:pass@tcp(db:3306)/shop?parseTime=true")
	t.Setenv("MYSQL_MAX_OPEN_CONNS", "10")
	t.Setenv("MYSQL_CONN_MAX_LIFETIME", "60")
	t.Setenv("SALE_TX_RETRIES", "5")

	cfg := Load()

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.HTTPAddr)
	}
	if cfg.MySQLDSN != "user:pass@tcp(db:3306)/shop?parseTime=true" {
		t.Errorf("unexpected DSN: %s", cfg.MySQLDSN)
	}
	if cfg.MaxOpenConns != 10 {
		t.Errorf("expected 10 open conns, got %d", cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime != time.Minute {
		t.Errorf("expected 1m lifetime, got %s", cfg.ConnMaxLifetime)
	}
	if cfg.SaleTxRetries != 5 {
		t.Errorf("expected 5 retries, got %d", cfg.SaleTxRetries)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MYSQL_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()
	if cfg.MaxOpenConns != 50 {
		t.Errorf("expected default 50 on malformed value, got %d", cfg.MaxOpenConns)
	}
}
