package entity

import "time"

// Roles válidos para User.
const (
	RoleUser    = "user"
	RolePremium = "premium"
	RoleAdmin   = "admin"
)

// User representa una cuenta de la tienda. El email es la identidad única.
type User struct {
	Email        string
	FirstName    string
	LastName     string
	Age          int
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // user, premium, admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session es el snapshot de un usuario autenticado que se guarda en el
// session store: solo los campos seguros de exponer, nunca el hash.
type Session struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
	Role      string `json:"role"`
}

// NewSession arma el snapshot a partir de la cuenta completa.
func NewSession(u *User) *Session {
	return &Session{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Age:       u.Age,
		Role:      u.Role,
	}
}
