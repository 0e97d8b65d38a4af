package dto

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,objectid"`
	Quantity  int64  `json:"quantity" validate:"gte=0"`
}

type CartResponse struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId"`
	CartItems  []CartItemResponse `json:"cartItems"`
	TotalPrice float64            `json:"totalPrice"`
	TotalItems int64              `json:"totalItems"`
}

type CartItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	Product   *ProductResponse `json:"product,omitempty"`
	Price     float64          `json:"price"`
	Quantity  int64            `json:"quantity"`
}
