package service

import (
	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/AatishKamble/swapify/internal/dto"
	"github.com/AatishKamble/swapify/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errs.ErrClient
	}

	return objectID, nil
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}

	return id.Hex()
}

func toCategoryResponse(category *domain.Category) *dto.CategoryResponse {
	if category == nil {
		return nil
	}

	return &dto.CategoryResponse{
		ID:               category.ID.Hex(),
		Name:             category.Name,
		Level:            category.Level,
		ParentCategoryID: hexOrEmpty(category.ParentCategoryID),
	}
}

func toProductResponse(product domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          product.ID.Hex(),
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		State:       string(product.State),
		CategoryID:  hexOrEmpty(product.CategoryID),
		Category:    toCategoryResponse(product.Category),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toProductResponsePtr(product *domain.Product) *dto.ProductResponse {
	if product == nil {
		return nil
	}

	resp := toProductResponse(*product)
	return &resp
}

func toOrderResponse(detail domain.OrderDetail) dto.OrderResponse {
	order := detail.Order

	resp := dto.OrderResponse{
		ID:                order.ID.Hex(),
		UserID:            order.UserID.Hex(),
		OrderItems:        []dto.OrderItemResponse{},
		ShippingAddressID: hexOrEmpty(order.ShippingAddressID),
		TotalPrice:        order.TotalPrice,
		TotalItems:        order.TotalItems,
		PaymentDetails: dto.PaymentDetailsResponse{
			PaymentMethod: string(order.PaymentDetails.PaymentMethod),
			PaymentStatus: string(order.PaymentDetails.PaymentStatus),
			PaymentID:     order.PaymentDetails.PaymentID,
			PaymentDate:   order.PaymentDetails.PaymentDate,
		},
		OrderStatus: string(order.OrderStatus),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}

	if detail.User != nil {
		resp.User = &dto.UserResponse{
			ID:        detail.User.ID.Hex(),
			FirstName: detail.User.FirstName,
			LastName:  detail.User.LastName,
			Email:     detail.User.Email,
		}
	}

	if detail.ShippingAddress != nil {
		resp.ShippingAddress = toAddressResponse(*detail.ShippingAddress)
	}

	for _, item := range detail.Items {
		resp.OrderItems = append(resp.OrderItems, dto.OrderItemResponse{
			ID:        item.ID.Hex(),
			ProductID: item.ProductID.Hex(),
			Product:   toProductResponsePtr(item.Product),
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return resp
}

func toAddressResponse(address domain.Address) *dto.AddressResponse {
	return &dto.AddressResponse{
		ID:            address.ID.Hex(),
		FirstName:     address.FirstName,
		LastName:      address.LastName,
		StreetAddress: address.StreetAddress,
		City:          address.City,
		State:         address.State,
		ZipCode:       address.ZipCode,
		Mobile:        address.Mobile,
	}
}

func toCartResponse(cart domain.Cart) dto.CartResponse {
	resp := dto.CartResponse{
		ID:         cart.ID.Hex(),
		UserID:     cart.UserID.Hex(),
		CartItems:  []dto.CartItemResponse{},
		TotalPrice: cart.TotalPrice,
		TotalItems: cart.TotalItems,
	}

	for _, item := range cart.CartItems {
		resp.CartItems = append(resp.CartItems, dto.CartItemResponse{
			ID:        item.ID.Hex(),
			ProductID: item.ProductID.Hex(),
			Product:   toProductResponsePtr(item.Product),
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return resp
}
