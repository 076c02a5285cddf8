package repository

import (
	"context"
	"time"

	"github.com/mdelorenc/tienda-api/internal/domain/entity"
)

// SessionStore define el puerto del almacén de sesiones server-side:
// token opaco -> snapshot del usuario. La implementación de producción es
// Redis; los tests usan miniredis detrás del mismo puerto.
type SessionStore interface {
	Set(ctx context.Context, token string, s *entity.Session, ttl time.Duration) error
	// Get devuelve (nil, nil) si el token no existe o expiró.
	Get(ctx context.Context, token string) (*entity.Session, error)
	Delete(ctx context.Context, token string) error
}
