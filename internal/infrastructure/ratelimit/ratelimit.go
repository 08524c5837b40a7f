// Package ratelimit implementa el limitador de intentos de login sobre Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/invorya/bodega-api/pkg/config"
	"github.com/invorya/bodega-api/pkg/logger"
)

// LoginLimiter ventana deslizante por clave (IP) usando un sorted set por clave:
// cada intento es un miembro con score = timestamp; los fuera de ventana se
// recortan antes de contar. Con REDIS_ADDR vacío queda deshabilitado y todo
// intento pasa.
type LoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	log    *logger.Logger
}

// NewLoginLimiter construye el limitador y verifica la conexión.
func NewLoginLimiter(cfg config.RedisConfig, log *logger.Logger) (*LoginLimiter, error) {
	l := &LoginLimiter{
		limit:  cfg.LoginLimit,
		window: time.Duration(cfg.LoginWindowSec) * time.Second,
		log:    log,
	}
	if cfg.Addr == "" {
		return l, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	l.client = client
	return l, nil
}

// Enabled indica si hay Redis configurado.
func (l *LoginLimiter) Enabled() bool { return l.client != nil }

// Allow registra el intento y decide si pasa. Ante un fallo de Redis el login
// sigue funcionando: el limitador protege contra fuerza bruta, no es crítico
// para la disponibilidad.
func (l *LoginLimiter) Allow(ctx context.Context, key string) bool {
	if l.client == nil || l.limit <= 0 {
		return true
	}
	now := time.Now()
	redisKey := "login_attempts:" + key
	cutoff := now.Add(-l.window)

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", cutoff.UnixNano()))
	pipe.ZAdd(ctx, redisKey, &redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.New().String(),
	})
	count := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.log.Error().Err(err).Str("key", key).Msg("rate limiter: fallo de redis, intento permitido")
		return true
	}
	return count.Val() <= int64(l.limit)
}

// Close libera la conexión.
func (l *LoginLimiter) Close() error {
	if l.client == nil {
		return nil
	}
	return l.client.Close()
}
