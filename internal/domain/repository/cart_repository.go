package repository

import "github.com/mdelorenc/tienda-api/internal/domain/entity"

// CartRepository define el puerto de persistencia para Cart (DIP).
// El carrito se crea de forma diferida en el primer add: GetByID devuelve
// (nil, nil) hasta entonces.
type CartRepository interface {
	Create(cart *entity.Cart) error
	GetByID(id string) (*entity.Cart, error)
	// SaveItems reemplaza las líneas del carrito conservando su orden.
	SaveItems(cartID string, items []entity.CartItem) error
	Clear(cartID string) error
}
