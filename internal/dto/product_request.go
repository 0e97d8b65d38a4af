package dto

type ProductRequest struct {
	Title               string  `json:"title" validate:"required"`
	Description         string  `json:"description"`
	Price               float64 `json:"price" validate:"gte=0"`
	ImageURL            string  `json:"imageUrl"`
	TopLevelCategory    string  `json:"topLevelCategory" validate:"required"`
	SecondLevelCategory string  `json:"secondLevelCategory" validate:"required"`
}

// ApprovedProductRequest is a seller request that an admin has accepted.
type ApprovedProductRequest struct {
	ProductName        string           `json:"productName" validate:"required"`
	ProductDescription string           `json:"productDescription"`
	ExpectedPrice      float64          `json:"expectedPrice" validate:"gte=0"`
	Category           ProductReference `json:"category"`
	Images             []ProductImage   `json:"images"`
}

type ProductImage struct {
	ImageURL string `json:"imageUrl"`
}

// UpdateProductRequest only touches the fields that are present.
type UpdateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"imageUrl"`
	State       *string  `json:"state" validate:"omitempty,oneof=Unsold Sold Request_Approved Request_Pending"`
}

type ProductFilter struct {
	Category   string
	ExtraTerms []string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
	PageNumber *int
	PageSize   *int
}
