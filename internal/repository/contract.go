package repository

import (
	"context"
	"time"

	"github.com/AatishKamble/swapify/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transactor runs fn inside a MongoDB transaction. Calls made with a context
// that already carries a session join the running transaction.
type Transactor interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProductRepository interface {
	Transactor
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error)
	GetProducts(ctx context.Context, query ProductQuery) (data []domain.Product, err error)
	CountProducts(ctx context.Context, query ProductQuery) (total int64, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) (err error)
	ReserveProduct(ctx context.Context, data domain.Product) (err error)
	ReleaseProduct(ctx context.Context, id primitive.ObjectID) (err error)
}

type CategoryRepository interface {
	AddCategory(ctx context.Context, data domain.Category) (id primitive.ObjectID, err error)
	GetCategoryByID(ctx context.Context, id primitive.ObjectID) (category domain.Category, err error)
	GetTopLevelCategoryByName(ctx context.Context, name string) (category domain.Category, err error)
	GetChildCategoryByName(ctx context.Context, name string, parentID primitive.ObjectID) (category domain.Category, err error)
	GetCategoriesByNamePattern(ctx context.Context, pattern string) (data []domain.Category, err error)
	GetChildCategories(ctx context.Context, parentIDs []primitive.ObjectID) (data []domain.Category, err error)
}

type CartRepository interface {
	Transactor
	AddCart(ctx context.Context, data domain.Cart) (id primitive.ObjectID, err error)
	GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (cart domain.Cart, err error)
	UpdateCart(ctx context.Context, data domain.Cart) (err error)
	AddCartItem(ctx context.Context, data domain.CartItem) (id primitive.ObjectID, err error)
	GetCartItemByID(ctx context.Context, id primitive.ObjectID) (item domain.CartItem, err error)
	GetCartItemByProduct(ctx context.Context, cartID, productID primitive.ObjectID) (item domain.CartItem, err error)
	GetCartItemsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.CartItem, err error)
	DeleteCartItem(ctx context.Context, id primitive.ObjectID) (err error)
}

type OrderRepository interface {
	Transactor
	AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error)
	AddOrderItem(ctx context.Context, data domain.OrderItem) (id primitive.ObjectID, err error)
	GetOrderByID(ctx context.Context, id primitive.ObjectID) (order domain.Order, err error)
	GetOrdersByUserID(ctx context.Context, userID primitive.ObjectID) (data []domain.Order, err error)
	GetOrders(ctx context.Context) (data []domain.Order, err error)
	GetOrderItemsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.OrderItem, err error)
	UpdateOrderStatus(ctx context.Context, data domain.Order) (err error)
	DeleteOrderItems(ctx context.Context, ids []primitive.ObjectID) (err error)
	DeleteOrder(ctx context.Context, id primitive.ObjectID) (err error)
}

type UserRepository interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (user domain.User, err error)
	AddUserAddress(ctx context.Context, userID, addressID primitive.ObjectID) (err error)
}

type AddressRepository interface {
	AddAddress(ctx context.Context, data domain.Address) (id primitive.ObjectID, err error)
	GetAddressByID(ctx context.Context, id primitive.ObjectID) (address domain.Address, err error)
}

type WishlistRepository interface {
	DeleteWishlistEntry(ctx context.Context, userID, productID primitive.ObjectID) (err error)
}

type OutboxRepository interface {
	AddEvent(ctx context.Context, data domain.OutboxEvent) (err error)
	GetUnpublishedEvents(ctx context.Context, limit int) (data []domain.OutboxEvent, err error)
	MarkEventPublished(ctx context.Context, id primitive.ObjectID, publishedAt time.Time) (err error)
	IncrementEventAttempts(ctx context.Context, id primitive.ObjectID) (err error)
}

type OrderHistoryRepository interface {
	AddHistory(ctx context.Context, data domain.OrderStatusHistory) (err error)
	GetHistoriesByOrderID(ctx context.Context, orderID string) (data []domain.OrderStatusHistory, err error)
}
