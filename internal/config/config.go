// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds configuration knobs for the HTTP server and the backing
// MySQL and Redis connections.
type Config struct {
	HTTPAddr        string
	MySQLDSN        string
	RedisAddr       string
	RedisPoolSize   int
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ShutdownTimeout time.Duration
	SaleTxRetries   int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults. A .env
// file in the working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:        getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/commerce?parseTime=true"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		RedisPoolSize:   atoienv("REDIS_POOL_SIZE", 100),
		MaxOpenConns:    atoienv("MYSQL_MAX_OPEN_CONNS", 50),
		MaxIdleConns:    atoienv("MYSQL_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: durenvs("MYSQL_CONN_MAX_LIFETIME", 300),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 5),
		SaleTxRetries:   atoienv("SALE_TX_RETRIES", 3),
	}
}
