package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrOwnProduct         = errors.New("no puedes agregar tu propio producto al carrito")
	ErrNotInCart          = errors.New("el producto no está en el carrito")
	ErrSamePassword       = errors.New("la nueva contraseña no debe ser la misma que la anterior")
	ErrExpiredToken       = errors.New("el enlace ha expirado")
	ErrInvalidToken       = errors.New("el token de recuperación no es válido")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)
