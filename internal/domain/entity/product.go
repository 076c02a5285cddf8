package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerAdmin es el owner centinela para productos publicados por el sistema.
const OwnerAdmin = "admin"

// Product representa un producto publicado en el catálogo.
// Owner es el email del usuario premium que lo creó (o el centinela OwnerAdmin)
// y determina quién puede editarlo o eliminarlo.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       decimal.Decimal // nunca negativo
	Stock       int             // nunca negativo; se descuenta en la compra
	Category    string
	Owner       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
