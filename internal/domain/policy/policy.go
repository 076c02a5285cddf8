// Package policy concentra las reglas de autorización en un predicado
// (actor, acción, recurso) -> permitir/denegar, testeable sin HTTP.
// Los handlers y casos de uso consultan Can en lugar de repetir
// condicionales de rol/ownership.
package policy

import "github.com/mdelorenc/tienda-api/internal/domain/entity"

// Action es una operación sujeta a autorización.
type Action string

const (
	ProductCreate Action = "product:create"
	ProductDelete Action = "product:delete"
	ProductUpdate Action = "product:update"
	CartAddLine   Action = "cart:add_line"
	UserSetRole   Action = "user:set_role"
	UserDelete    Action = "user:delete"
)

// Can decide si el actor (snapshot de sesión) puede ejecutar la acción
// sobre el recurso. resource es el Product afectado cuando aplica
// ownership; nil para acciones que solo dependen del rol.
func Can(actor *entity.Session, action Action, resource *entity.Product) bool {
	if actor == nil {
		return false
	}
	switch action {
	case ProductCreate:
		return actor.Role == entity.RolePremium || actor.Role == entity.RoleAdmin
	case ProductDelete, ProductUpdate:
		if actor.Role == entity.RoleAdmin {
			return true
		}
		return resource != nil && resource.Owner == actor.Email
	case CartAddLine:
		// Un usuario no puede agregar su propio producto a su carrito.
		return resource != nil && resource.Owner != actor.Email
	case UserSetRole, UserDelete:
		return actor.Role == entity.RoleAdmin
	}
	return false
}
