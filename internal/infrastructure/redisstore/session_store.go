// Package redisstore implementa el SessionStore sobre Redis: cada sesión es
// una clave "session:<token>" con el snapshot del usuario en JSON y el TTL
// configurado. Redis maneja la expiración; no hay limpieza propia.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
	"github.com/mdelorenc/tienda-api/pkg/config"
)

const sessionKeyPrefix = "session:"

var _ repository.SessionStore = (*SessionStore)(nil)

// NewClient crea el cliente Redis desde la configuración y verifica la
// conexión con un ping antes de devolverlo.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// SessionStore adaptador Redis del puerto repository.SessionStore.
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore construye el store con un cliente ya conectado.
func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Set guarda el snapshot bajo el token con el TTL dado.
func (s *SessionStore) Set(ctx context.Context, token string, sess *entity.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+token, data, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Get devuelve el snapshot del token, o (nil, nil) si no existe o expiró.
func (s *SessionStore) Get(ctx context.Context, token string) (*entity.Session, error) {
	data, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var sess entity.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete destruye la sesión: es la única forma de hacer logout.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
