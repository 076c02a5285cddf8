package usecase

import (
	"context"
	"time"

	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/policy"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
	"github.com/mdelorenc/tienda-api/pkg/logger"
)

// TxRunner ejecuta un callback con repos atados a una transacción. La compra
// lo usa para que descontar stock y soltar la línea sean atómicos por línea.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error) error
}

// CartUseCase casos de uso del carrito: un carrito por usuario, creado de
// forma diferida en el primer add.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	tx       TxRunner
	log      *logger.Logger
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository, tx TxRunner, log *logger.Logger) *CartUseCase {
	return &CartUseCase{carts: carts, products: products, tx: tx, log: log}
}

// loadOrCreate trae el carrito del usuario o lo crea vacío.
func (uc *CartUseCase) loadOrCreate(actor *entity.Session) (*entity.Cart, error) {
	id := entity.CartID(actor.Email)
	cart, err := uc.carts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	now := time.Now()
	cart = &entity.Cart{ID: id, UserEmail: actor.Email, CreatedAt: now, UpdatedAt: now}
	if err := uc.carts.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Add agrega el producto al carrito del actor: si ya es una línea suma 1 a
// la cantidad, si no agrega una línea nueva con cantidad 1. Rechaza sin
// mutar nada cuando el producto pertenece al propio actor.
func (uc *CartUseCase) Add(actor *entity.Session, productID string) error {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if !policy.Can(actor, policy.CartAddLine, product) {
		return domain.ErrOwnProduct
	}

	cart, err := uc.loadOrCreate(actor)
	if err != nil {
		return err
	}
	if i := cart.Find(productID); i >= 0 {
		cart.Items[i].Quantity++
	} else {
		cart.Items = append(cart.Items, entity.CartItem{ProductID: productID, Quantity: 1})
	}
	return uc.carts.SaveItems(cart.ID, cart.Items)
}

// Increment suma amount (entero positivo) a la cantidad de una línea
// existente. Si el producto no está en el carrito devuelve ErrNotInCart:
// incrementar no crea líneas.
func (uc *CartUseCase) Increment(actor *entity.Session, productID string, amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	cart, err := uc.loadOrCreate(actor)
	if err != nil {
		return err
	}
	i := cart.Find(productID)
	if i < 0 {
		return domain.ErrNotInCart
	}
	cart.Items[i].Quantity += amount
	return uc.carts.SaveItems(cart.ID, cart.Items)
}

// RemoveLine quita la línea completa sin importar la cantidad. Si la línea
// no existe es un no-op, no un error.
func (uc *CartUseCase) RemoveLine(actor *entity.Session, productID string) error {
	cart, err := uc.loadOrCreate(actor)
	if err != nil {
		return err
	}
	if cart.Find(productID) < 0 {
		return nil
	}
	cart.Remove(productID)
	return uc.carts.SaveItems(cart.ID, cart.Items)
}

// Clear vacía todas las líneas del carrito.
func (uc *CartUseCase) Clear(actor *entity.Session) error {
	cart, err := uc.loadOrCreate(actor)
	if err != nil {
		return err
	}
	return uc.carts.Clear(cart.ID)
}

// Get devuelve el carrito del actor (vacío si aún no existe).
func (uc *CartUseCase) Get(actor *entity.Session) (*entity.Cart, error) {
	cart, err := uc.carts.GetByID(entity.CartID(actor.Email))
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &entity.Cart{ID: entity.CartID(actor.Email), UserEmail: actor.Email}, nil
	}
	return cart, nil
}

// Purchase recorre las líneas: cuando el stock alcanza, descuenta y suelta
// la línea; cuando no, la línea queda en el carrito. El descuento de stock y
// la eliminación de la línea se hacen en la misma transacción, así un fallo
// a mitad de la compra nunca deja una línea cumplida en el carrito (que al
// reintentar descontaría el stock dos veces). Sin rollback entre líneas: el
// cumplimiento es parcial a propósito.
func (uc *CartUseCase) Purchase(ctx context.Context, actor *entity.Session) error {
	cart, err := uc.loadOrCreate(actor)
	if err != nil {
		return err
	}

	remaining := append([]entity.CartItem(nil), cart.Items...)
	for _, line := range cart.Items {
		fulfilled := false
		err := uc.tx.Run(ctx, func(products repository.ProductRepository, carts repository.CartRepository) error {
			product, err := products.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.Stock < line.Quantity {
				return nil // la línea queda en el carrito
			}
			if err := products.UpdateStock(product.ID, product.Stock-line.Quantity); err != nil {
				return err
			}
			if err := carts.SaveItems(cart.ID, dropLine(remaining, line.ProductID)); err != nil {
				return err
			}
			fulfilled = true
			return nil
		})
		if err != nil {
			return err
		}
		if fulfilled {
			remaining = dropLine(remaining, line.ProductID)
		} else {
			uc.log.Warn().
				Str("product_id", line.ProductID).
				Int("quantity", line.Quantity).
				Msg("línea sin stock suficiente, queda en el carrito")
		}
	}
	return nil
}

// dropLine devuelve las líneas sin la del producto dado.
func dropLine(items []entity.CartItem, productID string) []entity.CartItem {
	out := make([]entity.CartItem, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}
