package entity

import "time"

// cartSuffix se concatena al email para derivar el ID del carrito.
const cartSuffix = "_cart"

// CartID deriva la clave del carrito de un usuario: un carrito por cuenta.
func CartID(email string) string {
	return email + cartSuffix
}

// CartItem es una línea del carrito: producto + cantidad (siempre >= 1;
// una línea con cantidad cero se elimina, no se retiene).
type CartItem struct {
	ProductID string
	Quantity  int
}

// Cart es el carrito de un usuario. Items conserva el orden de inserción.
type Cart struct {
	ID        string
	UserEmail string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Find devuelve el índice de la línea del producto, o -1 si no está.
func (c *Cart) Find(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Remove quita la línea completa del producto sin importar la cantidad.
// Si la línea no existe no hace nada.
func (c *Cart) Remove(productID string) {
	i := c.Find(productID)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}
