package dto

type OrderRequest struct {
	ShippingAddress *ShippingAddressRequest `json:"shippingAddress"`
	IsDirect        bool                    `json:"isDirect"`
	Products        []OrderProductRequest   `json:"products" validate:"dive"`
	TotalPrice      float64                 `json:"totalPrice" validate:"gte=0"`
	PaymentMethod   string                  `json:"paymentMethod"`
	PaymentInfo     *PaymentInfoRequest     `json:"paymentInfo"`
}

// ShippingAddressRequest either references a stored address by ID or carries
// the fields of a new one.
type ShippingAddressRequest struct {
	ID            string `json:"_id" validate:"omitempty,objectid"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	Mobile        string `json:"mobile"`
}

type ProductReference struct {
	ID string `json:"_id"`
}

type OrderProductRequest struct {
	ID            string            `json:"_id"`
	Product       *ProductReference `json:"product"`
	Price         float64           `json:"price" validate:"gte=0"`
	ExpectedPrice float64           `json:"expectedPrice" validate:"gte=0"`
	Quantity      int64             `json:"quantity" validate:"gte=0"`
}

// ProductID accepts both the flat and the nested product shape sent by clients.
func (p OrderProductRequest) ProductID() string {
	if p.ID != "" {
		return p.ID
	}

	if p.Product != nil {
		return p.Product.ID
	}

	return ""
}

type PaymentInfoRequest struct {
	TransactionID string `json:"transactionId"`
}

// Requester identifies the authenticated caller of an order operation.
type Requester struct {
	UserID string
	Role   string
}
