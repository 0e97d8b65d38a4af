package dto

import "time"

type OrderResponse struct {
	ID                string                 `json:"id"`
	UserID            string                 `json:"userId"`
	User              *UserResponse          `json:"user,omitempty"`
	OrderItems        []OrderItemResponse    `json:"orderItems"`
	ShippingAddressID string                 `json:"shippingAddressId"`
	ShippingAddress   *AddressResponse       `json:"shippingAddress,omitempty"`
	TotalPrice        float64                `json:"totalPrice"`
	TotalItems        int64                  `json:"totalItems"`
	PaymentDetails    PaymentDetailsResponse `json:"paymentDetails"`
	OrderStatus       string                 `json:"orderStatus"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

type OrderItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	Product   *ProductResponse `json:"product,omitempty"`
	Price     float64          `json:"price"`
	Quantity  int64            `json:"quantity"`
}

type PaymentDetailsResponse struct {
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentID     *string   `json:"paymentId"`
	PaymentDate   time.Time `json:"paymentDate"`
}

type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type AddressResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	Mobile        string `json:"mobile"`
}

type OrderHistoryResponse struct {
	EventID     string `json:"eventId"`
	EventType   string `json:"eventType"`
	OrderStatus string `json:"orderStatus"`
	OccurredAt  int64  `json:"occurredAt"`
}
