package dto

import "time"

type ProductResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	ImageURL    string            `json:"imageURL"`
	State       string            `json:"state"`
	CategoryID  string            `json:"categoryId,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type CategoryResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Level            int    `json:"level"`
	ParentCategoryID string `json:"parentCategoryId,omitempty"`
}

type ProductPageResponse struct {
	Content     []ProductResponse `json:"content"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
	TotalItems  int64             `json:"totalItems"`
}
