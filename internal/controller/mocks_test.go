package controller

import (
	"context"

	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/AatishKamble/swapify/internal/dto"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) orderResult(args mock.Arguments) (dto.OrderResponse, error) {
	resp, _ := args.Get(0).(dto.OrderResponse)
	return resp, args.Error(1)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, userID string, req dto.OrderRequest) (dto.OrderResponse, error) {
	return m.orderResult(m.Called(userID, req))
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, orderID string) (dto.OrderResponse, error) {
	return m.orderResult(m.Called(orderID))
}

func (m *mockOrderService) ConfirmOrder(ctx context.Context, orderID string) (dto.OrderResponse, error) {
	return m.orderResult(m.Called(orderID))
}

func (m *mockOrderService) ShipOrder(ctx context.Context, orderID string) (dto.OrderResponse, error) {
	return m.orderResult(m.Called(orderID))
}

func (m *mockOrderService) DeliverOrder(ctx context.Context, orderID string) (dto.OrderResponse, error) {
	return m.orderResult(m.Called(orderID))
}

func (m *mockOrderService) CancelOrder(ctx context.Context, requester dto.Requester, orderID string) (dto.OrderResponse, error) {
	return m.orderResult(m.Called(requester, orderID))
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, requester dto.Requester, orderID string) (dto.OrderResponse, error) {
	return m.orderResult(m.Called(requester, orderID))
}

func (m *mockOrderService) UserOrderHistory(ctx context.Context, userID string) ([]dto.OrderResponse, error) {
	args := m.Called(userID)
	resp, _ := args.Get(0).([]dto.OrderResponse)
	return resp, args.Error(1)
}

func (m *mockOrderService) GetAllOrders(ctx context.Context) ([]dto.OrderResponse, error) {
	args := m.Called()
	resp, _ := args.Get(0).([]dto.OrderResponse)
	return resp, args.Error(1)
}

func (m *mockOrderService) DeleteOrder(ctx context.Context, orderID string) error {
	return m.Called(orderID).Error(0)
}

func (m *mockOrderService) GetOrderHistory(ctx context.Context, requester dto.Requester, orderID string) ([]dto.OrderHistoryResponse, error) {
	args := m.Called(requester, orderID)
	resp, _ := args.Get(0).([]dto.OrderHistoryResponse)
	return resp, args.Error(1)
}

func (m *mockOrderService) VerifyPayment(ctx context.Context, req dto.PaymentNotification) error {
	return m.Called(req).Error(0)
}

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) GetAllProducts(ctx context.Context, filter dto.ProductFilter) (dto.ProductPageResponse, error) {
	args := m.Called(filter)
	resp, _ := args.Get(0).(dto.ProductPageResponse)
	return resp, args.Error(1)
}

func (m *mockProductService) CreateProduct(ctx context.Context, req dto.ProductRequest) (dto.ProductResponse, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(dto.ProductResponse)
	return resp, args.Error(1)
}

func (m *mockProductService) CreateMultipleProducts(ctx context.Context, reqs []dto.ProductRequest) ([]dto.ProductResponse, error) {
	args := m.Called(reqs)
	resp, _ := args.Get(0).([]dto.ProductResponse)
	return resp, args.Error(1)
}

func (m *mockProductService) AddApprovedProduct(ctx context.Context, req dto.ApprovedProductRequest) (dto.ProductResponse, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(dto.ProductResponse)
	return resp, args.Error(1)
}

func (m *mockProductService) FindProductByID(ctx context.Context, productID string) (dto.ProductResponse, error) {
	args := m.Called(productID)
	resp, _ := args.Get(0).(dto.ProductResponse)
	return resp, args.Error(1)
}

func (m *mockProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (dto.ProductResponse, error) {
	args := m.Called(productID, req)
	resp, _ := args.Get(0).(dto.ProductResponse)
	return resp, args.Error(1)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, productID string) error {
	return m.Called(productID).Error(0)
}

type mockCartService struct {
	mock.Mock
}

func (m *mockCartService) cartResult(args mock.Arguments) (dto.CartResponse, error) {
	resp, _ := args.Get(0).(dto.CartResponse)
	return resp, args.Error(1)
}

func (m *mockCartService) FindUserCart(ctx context.Context, userID string) (dto.CartResponse, error) {
	return m.cartResult(m.Called(userID))
}

func (m *mockCartService) AddCartItem(ctx context.Context, userID string, req dto.AddCartItemRequest) (dto.CartResponse, error) {
	return m.cartResult(m.Called(userID, req))
}

func (m *mockCartService) RemoveCartItem(ctx context.Context, userID string, cartItemID string) (dto.CartResponse, error) {
	return m.cartResult(m.Called(userID, cartItemID))
}

func (m *mockCartService) LoadUserCart(ctx context.Context, userID primitive.ObjectID) (domain.Cart, error) {
	args := m.Called(userID)
	cart, _ := args.Get(0).(domain.Cart)
	return cart, args.Error(1)
}

func (m *mockCartService) DeleteUserCartItem(ctx context.Context, userID, cartItemID primitive.ObjectID) (domain.Cart, error) {
	args := m.Called(userID, cartItemID)
	cart, _ := args.Get(0).(domain.Cart)
	return cart, args.Error(1)
}
