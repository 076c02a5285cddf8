package repository

import "github.com/mdelorenc/tienda-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) cuando la cuenta no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	UpdatePassword(email, passwordHash string) error
	UpdateRole(email, role string) error
	// Delete es idempotente: borrar un email inexistente devuelve
	// (false, nil) y se reporta igualmente como éxito.
	Delete(email string) (found bool, err error)
}
