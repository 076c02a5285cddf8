package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
// Un carrito por usuario (id derivado del email); las líneas viven en
// cart_items con una columna position que conserva el orden de inserción.
type CartRepo struct {
	db querier
}

// NewCartRepository construye el adaptador de persistencia para carritos.
func NewCartRepository(db querier) *CartRepo {
	return &CartRepo{db: db}
}

// Create persiste un carrito vacío (creación diferida en el primer add).
func (r *CartRepo) Create(cart *entity.Cart) error {
	query := `INSERT INTO carts (id, user_email, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(context.Background(), query,
		cart.ID, cart.UserEmail, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

// GetByID carga el carrito con sus líneas ordenadas. Devuelve (nil, nil) si no existe.
func (r *CartRepo) GetByID(id string) (*entity.Cart, error) {
	ctx := context.Background()
	var c entity.Cart
	err := r.db.QueryRow(ctx,
		`SELECT id, user_email, created_at, updated_at FROM carts WHERE id = $1`, id).Scan(
		&c.ID, &c.UserEmail, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT product_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		c.Items = append(c.Items, it)
	}
	return &c, rows.Err()
}

// SaveItems reemplaza las líneas del carrito conservando su orden.
func (r *CartRepo) SaveItems(cartID string, items []entity.CartItem) error {
	ctx := context.Background()
	if _, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	for pos, it := range items {
		_, err := r.db.Exec(ctx,
			`INSERT INTO cart_items (cart_id, product_id, quantity, position) VALUES ($1, $2, $3, $4)`,
			cartID, it.ProductID, it.Quantity, pos)
		if err != nil {
			return fmt.Errorf("insert cart item: %w", err)
		}
	}
	if _, err := r.db.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("touch cart: %w", err)
	}
	return nil
}

// Clear vacía todas las líneas (el carrito sigue existiendo).
func (r *CartRepo) Clear(cartID string) error {
	if _, err := r.db.Exec(context.Background(),
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
