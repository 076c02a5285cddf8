package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/policy"
)

func session(email, role string) *entity.Session {
	return &entity.Session{Email: email, Role: role}
}

func product(owner string) *entity.Product {
	return &entity.Product{ID: "p1", Title: "Teclado", Owner: owner}
}

func TestCan_CrearProducto(t *testing.T) {
	assert.True(t, policy.Can(session("a@x.com", entity.RolePremium), policy.ProductCreate, nil),
		"premium puede publicar productos")
	assert.True(t, policy.Can(session("root@x.com", entity.RoleAdmin), policy.ProductCreate, nil))
	assert.False(t, policy.Can(session("b@x.com", entity.RoleUser), policy.ProductCreate, nil),
		"rol user no puede publicar")
}

func TestCan_EliminarProducto_OwnerOAdmin(t *testing.T) {
	p := product("a@x.com")

	assert.True(t, policy.Can(session("a@x.com", entity.RolePremium), policy.ProductDelete, p),
		"el owner elimina su producto")
	assert.True(t, policy.Can(session("root@x.com", entity.RoleAdmin), policy.ProductDelete, p),
		"admin elimina cualquier producto")
	assert.False(t, policy.Can(session("c@x.com", entity.RolePremium), policy.ProductDelete, p),
		"otro premium no puede eliminar un producto ajeno")
}

func TestCan_AgregarAlCarrito_ProductoPropio(t *testing.T) {
	p := product("a@x.com")

	assert.False(t, policy.Can(session("a@x.com", entity.RolePremium), policy.CartAddLine, p),
		"el owner no puede agregar su propio producto")
	assert.True(t, policy.Can(session("b@x.com", entity.RoleUser), policy.CartAddLine, p))
}

func TestCan_SinSesion_SiempreDeniega(t *testing.T) {
	assert.False(t, policy.Can(nil, policy.ProductCreate, nil))
	assert.False(t, policy.Can(nil, policy.CartAddLine, product("a@x.com")))
}

func TestCan_GestionDeUsuarios_SoloAdmin(t *testing.T) {
	assert.True(t, policy.Can(session("root@x.com", entity.RoleAdmin), policy.UserSetRole, nil))
	assert.False(t, policy.Can(session("a@x.com", entity.RolePremium), policy.UserSetRole, nil))
	assert.False(t, policy.Can(session("a@x.com", entity.RoleUser), policy.UserDelete, nil))
}
