package service

import (
	"context"
	"errors"
	"maps"
	"regexp"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/AatishKamble/swapify/internal/repository"
	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/gomail.v2"
)

// memoryDB implements every repository contract in memory. HandleTrx restores
// the previous state when fn fails.
type memoryDB struct {
	products   map[primitive.ObjectID]domain.Product
	categories map[primitive.ObjectID]domain.Category
	carts      map[primitive.ObjectID]domain.Cart
	cartItems  map[primitive.ObjectID]domain.CartItem
	orders     map[primitive.ObjectID]domain.Order
	orderItems map[primitive.ObjectID]domain.OrderItem
	users      map[primitive.ObjectID]domain.User
	addresses  map[primitive.ObjectID]domain.Address
	wishlists  []domain.WishlistEntry
	outbox     []domain.OutboxEvent
	histories  []domain.OrderStatusHistory

	inTrx       bool
	seq         int64
	wishlistErr error
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		products:   map[primitive.ObjectID]domain.Product{},
		categories: map[primitive.ObjectID]domain.Category{},
		carts:      map[primitive.ObjectID]domain.Cart{},
		cartItems:  map[primitive.ObjectID]domain.CartItem{},
		orders:     map[primitive.ObjectID]domain.Order{},
		orderItems: map[primitive.ObjectID]domain.OrderItem{},
		users:      map[primitive.ObjectID]domain.User{},
		addresses:  map[primitive.ObjectID]domain.Address{},
	}
}

func (m *memoryDB) clone() *memoryDB {
	return &memoryDB{
		products:    maps.Clone(m.products),
		categories:  maps.Clone(m.categories),
		carts:       maps.Clone(m.carts),
		cartItems:   maps.Clone(m.cartItems),
		orders:      maps.Clone(m.orders),
		orderItems:  maps.Clone(m.orderItems),
		users:       maps.Clone(m.users),
		addresses:   maps.Clone(m.addresses),
		wishlists:   slices.Clone(m.wishlists),
		outbox:      slices.Clone(m.outbox),
		histories:   slices.Clone(m.histories),
		seq:         m.seq,
		wishlistErr: m.wishlistErr,
	}
}

func (m *memoryDB) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.inTrx {
		return fn(ctx)
	}

	snapshot := m.clone()
	m.inTrx = true
	err := fn(ctx)
	m.inTrx = false

	if err != nil {
		*m = *snapshot
	}

	return err
}

// nextTime keeps insertion order observable through createdAt.
func (m *memoryDB) nextTime() time.Time {
	m.seq++
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Minute)
}

func (m *memoryDB) seedProduct(title string, price float64, state domain.ProductState, categoryID primitive.ObjectID) domain.Product {
	product := domain.Product{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Price:      price,
		State:      state,
		CategoryID: categoryID,
		CreatedAt:  m.nextTime(),
	}
	m.products[product.ID] = product

	return product
}

func (m *memoryDB) seedCategory(name string, level int, parentID primitive.ObjectID) domain.Category {
	category := domain.Category{ID: primitive.NewObjectID(), Name: name, Level: level, ParentCategoryID: parentID}
	m.categories[category.ID] = category

	return category
}

func (m *memoryDB) seedUser() domain.User {
	user := domain.User{ID: primitive.NewObjectID(), FirstName: "Asha", Email: "asha@swapify.app", Role: "CUSTOMER"}
	m.users[user.ID] = user

	return user
}

// products

func (m *memoryDB) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = m.nextTime()
	}
	m.products[data.ID] = data

	return data.ID, nil
}

func (m *memoryDB) GetProductByID(ctx context.Context, id primitive.ObjectID) (domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return domain.Product{}, errs.ErrNotFound
	}

	return product, nil
}

func (m *memoryDB) matchProducts(query repository.ProductQuery) []domain.Product {
	var matched []domain.Product
	for _, product := range m.products {
		if !product.State.IsListable() {
			continue
		}
		if len(query.CategoryIDs) > 0 && !slices.Contains(query.CategoryIDs, product.CategoryID) {
			continue
		}
		if product.Price < query.MinPrice || product.Price > query.MaxPrice {
			continue
		}
		matched = append(matched, product)
	}

	return matched
}

func (m *memoryDB) GetProducts(ctx context.Context, query repository.ProductQuery) ([]domain.Product, error) {
	matched := m.matchProducts(query)

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if query.SortOrder == repository.SortDescending {
			a, b = b, a
		}
		if query.SortField == "price" {
			return a.Price < b.Price
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	if query.Limit > 0 {
		start := min(int(query.Skip), len(matched))
		end := min(start+int(query.Limit), len(matched))
		matched = matched[start:end]
	}

	return matched, nil
}

func (m *memoryDB) CountProducts(ctx context.Context, query repository.ProductQuery) (int64, error) {
	return int64(len(m.matchProducts(query))), nil
}

func (m *memoryDB) UpdateProduct(ctx context.Context, data domain.Product) error {
	stored, ok := m.products[data.ID]
	if !ok {
		return errs.ErrNotFound
	}

	data.Version = stored.Version + 1
	m.products[data.ID] = data

	return nil
}

func (m *memoryDB) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.products[id]; !ok {
		return errs.ErrNotFound
	}
	delete(m.products, id)

	return nil
}

func (m *memoryDB) ReserveProduct(ctx context.Context, data domain.Product) error {
	stored, ok := m.products[data.ID]
	if !ok || stored.Version != data.Version || stored.State == domain.ProductStateSold {
		return errs.ErrProductSold
	}

	stored.State = domain.ProductStateSold
	stored.Version++
	m.products[data.ID] = stored

	return nil
}

func (m *memoryDB) ReleaseProduct(ctx context.Context, id primitive.ObjectID) error {
	stored, ok := m.products[id]
	if !ok {
		return errs.ErrNotFound
	}

	stored.State = domain.ProductStateUnsold
	stored.Version++
	m.products[id] = stored

	return nil
}

// categories

func (m *memoryDB) AddCategory(ctx context.Context, data domain.Category) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	m.categories[data.ID] = data

	return data.ID, nil
}

func (m *memoryDB) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (domain.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return domain.Category{}, errs.ErrNotFound
	}

	return category, nil
}

func (m *memoryDB) GetTopLevelCategoryByName(ctx context.Context, name string) (domain.Category, error) {
	for _, category := range m.categories {
		if category.Name == name && category.Level == domain.CategoryLevelTop {
			return category, nil
		}
	}

	return domain.Category{}, errs.ErrNotFound
}

func (m *memoryDB) GetChildCategoryByName(ctx context.Context, name string, parentID primitive.ObjectID) (domain.Category, error) {
	for _, category := range m.categories {
		if category.Name == name && category.ParentCategoryID == parentID {
			return category, nil
		}
	}

	return domain.Category{}, errs.ErrNotFound
}

func (m *memoryDB) GetCategoriesByNamePattern(ctx context.Context, pattern string) ([]domain.Category, error) {
	re := regexp.MustCompile("(?i)" + pattern)

	var data []domain.Category
	for _, category := range m.categories {
		if re.MatchString(category.Name) {
			data = append(data, category)
		}
	}

	return data, nil
}

func (m *memoryDB) GetChildCategories(ctx context.Context, parentIDs []primitive.ObjectID) ([]domain.Category, error) {
	var data []domain.Category
	for _, category := range m.categories {
		if slices.Contains(parentIDs, category.ParentCategoryID) {
			data = append(data, category)
		}
	}

	return data, nil
}

// carts

func (m *memoryDB) AddCart(ctx context.Context, data domain.Cart) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	data.CartItems = nil
	m.carts[data.ID] = data

	return data.ID, nil
}

func (m *memoryDB) GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (domain.Cart, error) {
	for _, cart := range m.carts {
		if cart.UserID == userID {
			return cart, nil
		}
	}

	return domain.Cart{}, errs.ErrNotFound
}

func (m *memoryDB) UpdateCart(ctx context.Context, data domain.Cart) error {
	if _, ok := m.carts[data.ID]; !ok {
		return errs.ErrNotFound
	}

	data.CartItemIDs = slices.Clone(data.CartItemIDs)
	data.CartItems = nil
	m.carts[data.ID] = data

	return nil
}

func (m *memoryDB) AddCartItem(ctx context.Context, data domain.CartItem) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	data.Product = nil
	m.cartItems[data.ID] = data

	return data.ID, nil
}

func (m *memoryDB) GetCartItemByID(ctx context.Context, id primitive.ObjectID) (domain.CartItem, error) {
	item, ok := m.cartItems[id]
	if !ok {
		return domain.CartItem{}, errs.ErrNotFound
	}

	return item, nil
}

func (m *memoryDB) GetCartItemByProduct(ctx context.Context, cartID, productID primitive.ObjectID) (domain.CartItem, error) {
	for _, item := range m.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			return item, nil
		}
	}

	return domain.CartItem{}, errs.ErrNotFound
}

func (m *memoryDB) GetCartItemsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.CartItem, error) {
	data := []domain.CartItem{}
	for _, id := range ids {
		if item, ok := m.cartItems[id]; ok {
			data = append(data, item)
		}
	}

	return data, nil
}

func (m *memoryDB) DeleteCartItem(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.cartItems[id]; !ok {
		return errs.ErrNotFound
	}
	delete(m.cartItems, id)

	return nil
}

// orders

func (m *memoryDB) AddOrder(ctx context.Context, data domain.Order) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	data.CreatedAt = m.nextTime()
	m.orders[data.ID] = data

	return data.ID, nil
}

func (m *memoryDB) AddOrderItem(ctx context.Context, data domain.OrderItem) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	m.orderItems[data.ID] = data

	return data.ID, nil
}

func (m *memoryDB) GetOrderByID(ctx context.Context, id primitive.ObjectID) (domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return domain.Order{}, errs.ErrNotFound
	}

	return order, nil
}

func (m *memoryDB) sortedOrders(keep func(domain.Order) bool) []domain.Order {
	data := []domain.Order{}
	for _, order := range m.orders {
		if keep(order) {
			data = append(data, order)
		}
	}

	sort.Slice(data, func(i, j int) bool { return data[i].CreatedAt.After(data[j].CreatedAt) })

	return data
}

func (m *memoryDB) GetOrdersByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	return m.sortedOrders(func(order domain.Order) bool { return order.UserID == userID }), nil
}

func (m *memoryDB) GetOrders(ctx context.Context) ([]domain.Order, error) {
	return m.sortedOrders(func(domain.Order) bool { return true }), nil
}

func (m *memoryDB) GetOrderItemsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.OrderItem, error) {
	data := []domain.OrderItem{}
	for _, id := range ids {
		if item, ok := m.orderItems[id]; ok {
			data = append(data, item)
		}
	}

	return data, nil
}

func (m *memoryDB) UpdateOrderStatus(ctx context.Context, data domain.Order) error {
	stored, ok := m.orders[data.ID]
	if !ok || stored.Version != data.Version {
		return errs.ErrConflict
	}

	stored.OrderStatus = data.OrderStatus
	stored.PaymentDetails = data.PaymentDetails
	stored.Version++
	m.orders[data.ID] = stored

	return nil
}

func (m *memoryDB) DeleteOrderItems(ctx context.Context, ids []primitive.ObjectID) error {
	for _, id := range ids {
		delete(m.orderItems, id)
	}

	return nil
}

func (m *memoryDB) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	order, ok := m.orders[id]
	if !ok {
		return errs.ErrNotFound
	}

	for _, itemID := range order.OrderItemIDs {
		if _, ok := m.orderItems[itemID]; ok {
			return errs.ErrConflict
		}
	}
	delete(m.orders, id)

	return nil
}

// accounts

func (m *memoryDB) GetUserByID(ctx context.Context, id primitive.ObjectID) (domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, errs.ErrNotFound
	}

	return user, nil
}

func (m *memoryDB) AddUserAddress(ctx context.Context, userID, addressID primitive.ObjectID) error {
	user, ok := m.users[userID]
	if !ok {
		return errs.ErrNotFound
	}

	user.AddressIDs = append(slices.Clone(user.AddressIDs), addressID)
	m.users[userID] = user

	return nil
}

func (m *memoryDB) AddAddress(ctx context.Context, data domain.Address) (primitive.ObjectID, error) {
	data.ID = primitive.NewObjectID()
	m.addresses[data.ID] = data

	return data.ID, nil
}

func (m *memoryDB) GetAddressByID(ctx context.Context, id primitive.ObjectID) (domain.Address, error) {
	address, ok := m.addresses[id]
	if !ok {
		return domain.Address{}, errs.ErrNotFound
	}

	return address, nil
}

func (m *memoryDB) DeleteWishlistEntry(ctx context.Context, userID, productID primitive.ObjectID) error {
	if m.wishlistErr != nil {
		return m.wishlistErr
	}

	for i, entry := range m.wishlists {
		if entry.UserID == userID && entry.ProductID == productID {
			m.wishlists = slices.Delete(m.wishlists, i, i+1)
			return nil
		}
	}

	return nil
}

// outbox and history

func (m *memoryDB) AddEvent(ctx context.Context, data domain.OutboxEvent) error {
	data.ID = primitive.NewObjectID()
	m.outbox = append(m.outbox, data)

	return nil
}

func (m *memoryDB) GetUnpublishedEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	data := []domain.OutboxEvent{}
	for _, event := range m.outbox {
		if event.PublishedAt == nil && len(data) < limit {
			data = append(data, event)
		}
	}

	return data, nil
}

func (m *memoryDB) MarkEventPublished(ctx context.Context, id primitive.ObjectID, publishedAt time.Time) error {
	for i := range m.outbox {
		if m.outbox[i].ID == id {
			m.outbox[i].PublishedAt = &publishedAt
		}
	}

	return nil
}

func (m *memoryDB) IncrementEventAttempts(ctx context.Context, id primitive.ObjectID) error {
	for i := range m.outbox {
		if m.outbox[i].ID == id {
			m.outbox[i].Attempts++
		}
	}

	return nil
}

func (m *memoryDB) AddHistory(ctx context.Context, data domain.OrderStatusHistory) error {
	for _, history := range m.histories {
		if history.EventID == data.EventID {
			return nil
		}
	}

	data.ID = int64(len(m.histories) + 1)
	m.histories = append(m.histories, data)

	return nil
}

func (m *memoryDB) GetHistoriesByOrderID(ctx context.Context, orderID string) ([]domain.OrderStatusHistory, error) {
	data := []domain.OrderStatusHistory{}
	for _, history := range m.histories {
		if history.OrderID == orderID {
			data = append(data, history)
		}
	}

	return data, nil
}

func (m *memoryDB) eventTypes() []string {
	var types []string
	for _, event := range m.outbox {
		types = append(types, event.EventType)
	}

	return types
}

type fakePaymentGateway struct {
	status *coreapi.TransactionStatusResponse
	err    *midtrans.Error
}

func (g *fakePaymentGateway) CheckTransaction(param string) (*coreapi.TransactionStatusResponse, *midtrans.Error) {
	return g.status, g.err
}

type fakeMessageWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	failures int
	err      error
}

func (w *fakeMessageWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		return errors.New("write without deadline")
	}

	if w.failures > 0 {
		w.failures--
		return w.err
	}

	w.messages = append(w.messages, msgs...)

	return nil
}

type fakeMessageReader struct {
	messages []kafka.Message
	failures int
	err      error
	reads    int
}

func (r *fakeMessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.reads++
	if r.failures > 0 {
		r.failures--
		return kafka.Message{}, r.err
	}

	if len(r.messages) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}

	msg := r.messages[0]
	r.messages = r.messages[1:]

	return msg, nil
}

type fakeMailer struct {
	sent []*gomail.Message
	err  error
}

func (m *fakeMailer) From() string {
	return "orders@swapify.app"
}

func (m *fakeMailer) Send(message *gomail.Message) error {
	if m.err != nil {
		return m.err
	}

	m.sent = append(m.sent, message)

	return nil
}
