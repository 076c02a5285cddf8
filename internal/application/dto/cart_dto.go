package dto

// IncrementRequest entrada para sumar cantidad a una línea existente.
type IncrementRequest struct {
	ProductID string `json:"product_id" form:"product_id"`
	Quantity  int    `json:"quantity" form:"quantity"`
}

// CartItemResponse una línea del carrito.
type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartResponse el carrito completo de un usuario.
type CartResponse struct {
	ID    string             `json:"id"`
	Items []CartItemResponse `json:"items"`
}
