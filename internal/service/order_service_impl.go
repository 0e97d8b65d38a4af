package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/AatishKamble/swapify/internal/dto"
	"github.com/AatishKamble/swapify/internal/repository"
	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/AatishKamble/swapify/pkg/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	transactionSettlement = "settlement"
	transactionCapture    = "capture"
	transactionDeny       = "deny"
	transactionCancel     = "cancel"
	transactionExpire     = "expire"
	fraudAccept           = "accept"
)

// systemRequester acts on behalf of admin routes and payment callbacks.
var systemRequester = dto.Requester{Role: utils.RoleAdmin}

type OrderServiceImpl struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	userRepo       repository.UserRepository
	addressRepo    repository.AddressRepository
	wishlistRepo   repository.WishlistRepository
	outboxRepo     repository.OutboxRepository
	historyRepo    repository.OrderHistoryRepository
	cartService    CartService
	paymentGateway PaymentGateway
}

func CreateOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, addressRepo repository.AddressRepository, wishlistRepo repository.WishlistRepository, outboxRepo repository.OutboxRepository, historyRepo repository.OrderHistoryRepository, cartService CartService, paymentGateway PaymentGateway) OrderService {
	return &OrderServiceImpl{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		userRepo:       userRepo,
		addressRepo:    addressRepo,
		wishlistRepo:   wishlistRepo,
		outboxRepo:     outboxRepo,
		historyRepo:    historyRepo,
		cartService:    cartService,
		paymentGateway: paymentGateway,
	}
}

func (s *OrderServiceImpl) CreateOrder(ctx context.Context, userID string, req dto.OrderRequest) (resp dto.OrderResponse, err error) {
	uid, err := parseObjectID(userID)
	if err != nil {
		return
	}

	if req.ShippingAddress == nil {
		return resp, errs.ErrShippingAddressRequired
	}

	var order domain.Order
	var items []domain.OrderItem

	err = s.orderRepo.HandleTrx(ctx, func(ctx context.Context) error {
		addressID, err := s.resolveShippingAddress(ctx, uid, *req.ShippingAddress)
		if err != nil {
			return err
		}

		if req.IsDirect {
			items, err = s.directOrderItems(ctx, uid, req.Products)
		} else {
			items, err = s.cartOrderItems(ctx, uid)
		}
		if err != nil {
			return err
		}

		order = buildOrder(ctx, uid, addressID, items, req)

		order.ID, err = s.orderRepo.AddOrder(ctx, order)
		if err != nil {
			return err
		}

		return s.recordEvent(ctx, domain.EventOrderCreated, order)
	})
	if err != nil {
		return
	}

	s.cleanupWishlist(ctx, uid, items)

	detail := domain.OrderDetail{Order: order}
	for _, item := range items {
		detail.Items = append(detail.Items, domain.OrderItemDetail{OrderItem: item})
	}

	return toOrderResponse(detail), nil
}

// resolveShippingAddress returns the referenced address, or stores the given
// fields as a new address on the user.
func (s *OrderServiceImpl) resolveShippingAddress(ctx context.Context, userID primitive.ObjectID, req dto.ShippingAddressRequest) (primitive.ObjectID, error) {
	if req.ID != "" {
		addressID, err := parseObjectID(req.ID)
		if err != nil {
			return primitive.NilObjectID, err
		}

		address, err := s.addressRepo.GetAddressByID(ctx, addressID)
		if err != nil {
			return primitive.NilObjectID, err
		}

		return address.ID, nil
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	addressID, err := s.addressRepo.AddAddress(ctx, domain.Address{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Mobile:        req.Mobile,
		UserID:        user.ID,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	err = s.userRepo.AddUserAddress(ctx, user.ID, addressID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	return addressID, nil
}

func (s *OrderServiceImpl) directOrderItems(ctx context.Context, userID primitive.ObjectID, products []dto.OrderProductRequest) ([]domain.OrderItem, error) {
	if len(products) == 0 {
		return nil, errs.ErrNoProducts
	}

	items := make([]domain.OrderItem, 0, len(products))
	for _, req := range products {
		if req.ProductID() == "" {
			return nil, fmt.Errorf("%w: missing product id", errs.ErrClient)
		}

		productID, err := parseObjectID(req.ProductID())
		if err != nil {
			return nil, err
		}

		product, err := s.productRepo.GetProductByID(ctx, productID)
		if err != nil {
			return nil, err
		}

		price := req.Price
		if price == 0 {
			price = req.ExpectedPrice
		}
		if price == 0 {
			price = product.Price
		}

		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}

		item, err := s.addOrderItem(ctx, product, price, quantity, userID)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *OrderServiceImpl) cartOrderItems(ctx context.Context, userID primitive.ObjectID) ([]domain.OrderItem, error) {
	cart, err := s.cartService.LoadUserCart(ctx, userID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	if len(cart.CartItems) == 0 {
		return nil, errs.ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(cart.CartItems))
	for _, cartItem := range cart.CartItems {
		if cartItem.Product == nil {
			return nil, fmt.Errorf("%w: product of cart item %s", errs.ErrNotFound, cartItem.ID.Hex())
		}

		item, err := s.addOrderItem(ctx, *cartItem.Product, cartItem.Price, cartItem.Quantity, userID)
		if err != nil {
			return nil, err
		}

		_, err = s.cartService.DeleteUserCartItem(ctx, userID, cartItem.ID)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// addOrderItem reserves the product and stores the purchase snapshot.
func (s *OrderServiceImpl) addOrderItem(ctx context.Context, product domain.Product, price float64, quantity int64, userID primitive.ObjectID) (domain.OrderItem, error) {
	err := s.productRepo.ReserveProduct(ctx, product)
	if err != nil {
		return domain.OrderItem{}, err
	}

	item := domain.OrderItem{
		ProductID: product.ID,
		Price:     price,
		Quantity:  quantity,
		UserID:    userID,
	}

	item.ID, err = s.orderRepo.AddOrderItem(ctx, item)
	if err != nil {
		return domain.OrderItem{}, err
	}

	return item, nil
}

func buildOrder(ctx context.Context, userID, addressID primitive.ObjectID, items []domain.OrderItem, req dto.OrderRequest) domain.Order {
	var itemsTotal float64
	itemIDs := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
		itemsTotal += item.Price * float64(item.Quantity)
	}

	totalPrice := req.TotalPrice
	switch {
	case totalPrice == 0:
		totalPrice = itemsTotal
	case totalPrice != itemsTotal:
		log.Ctx(ctx).Warn().Str("component", "CreateOrder").Float64("requested_total", totalPrice).Float64("items_total", itemsTotal).Msg("order total differs from item snapshots")
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = domain.PaymentMethodCOD
	}

	paymentStatus := domain.PaymentStatusCompleted
	if method == domain.PaymentMethodCOD {
		paymentStatus = domain.PaymentStatusPending
	}

	var paymentID *string
	if req.PaymentInfo != nil && req.PaymentInfo.TransactionID != "" {
		transactionID := req.PaymentInfo.TransactionID
		paymentID = &transactionID
	}

	now := time.Now()

	return domain.Order{
		UserID:            userID,
		OrderItemIDs:      itemIDs,
		ShippingAddressID: addressID,
		TotalPrice:        totalPrice,
		TotalItems:        int64(len(items)),
		PaymentDetails: domain.PaymentDetails{
			PaymentMethod: method,
			PaymentStatus: paymentStatus,
			PaymentID:     paymentID,
			PaymentDate:   now,
		},
		OrderStatus: domain.OrderStatusPlaced,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// cleanupWishlist drops the purchased products from the buyer's wishlist.
// Failures do not affect the committed order.
func (s *OrderServiceImpl) cleanupWishlist(ctx context.Context, userID primitive.ObjectID, items []domain.OrderItem) {
	for _, item := range items {
		err := errs.NewSideEffectError("wishlist cleanup", s.wishlistRepo.DeleteWishlistEntry(ctx, userID, item.ProductID))
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "CreateOrder").Str("product_id", item.ProductID.Hex()).Msg("")
		}
	}
}

func (s *OrderServiceImpl) PlaceOrder(ctx context.Context, orderID string) (resp dto.OrderResponse, err error) {
	return s.transition(ctx, systemRequester, orderID, domain.OrderStatusPlaced, domain.EventOrderStatusUpdated, func(ctx context.Context, order *domain.Order) error {
		order.PaymentDetails.PaymentStatus = domain.PaymentStatusCompleted
		return nil
	})
}

func (s *OrderServiceImpl) ConfirmOrder(ctx context.Context, orderID string) (resp dto.OrderResponse, err error) {
	return s.transition(ctx, systemRequester, orderID, domain.OrderStatusConfirmed, domain.EventOrderStatusUpdated, nil)
}

func (s *OrderServiceImpl) ShipOrder(ctx context.Context, orderID string) (resp dto.OrderResponse, err error) {
	return s.transition(ctx, systemRequester, orderID, domain.OrderStatusShipped, domain.EventOrderStatusUpdated, nil)
}

func (s *OrderServiceImpl) DeliverOrder(ctx context.Context, orderID string) (resp dto.OrderResponse, err error) {
	return s.transition(ctx, systemRequester, orderID, domain.OrderStatusDelivered, domain.EventOrderStatusUpdated, nil)
}

// CancelOrder puts every purchased product back on sale. Products that no
// longer exist are skipped.
func (s *OrderServiceImpl) CancelOrder(ctx context.Context, requester dto.Requester, orderID string) (resp dto.OrderResponse, err error) {
	return s.transition(ctx, requester, orderID, domain.OrderStatusCancelled, domain.EventOrderCancelled, func(ctx context.Context, order *domain.Order) error {
		items, err := s.orderRepo.GetOrderItemsByIDs(ctx, order.OrderItemIDs)
		if err != nil {
			return err
		}

		for _, item := range items {
			err = s.productRepo.ReleaseProduct(ctx, item.ProductID)
			if errors.Is(err, errs.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *OrderServiceImpl) transition(ctx context.Context, requester dto.Requester, orderID string, target domain.OrderStatus, eventType string, apply func(ctx context.Context, order *domain.Order) error) (resp dto.OrderResponse, err error) {
	id, err := parseObjectID(orderID)
	if err != nil {
		return
	}

	var order domain.Order
	err = s.orderRepo.HandleTrx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetOrderByID(ctx, id)
		if err != nil {
			return err
		}

		if err := authorizeOrder(requester, order); err != nil {
			return err
		}

		if !domain.CanTransition(order.OrderStatus, target) {
			return fmt.Errorf("%w: %s to %s", errs.ErrInvalidTransition, order.OrderStatus, target)
		}

		if apply != nil {
			if err := apply(ctx, &order); err != nil {
				return err
			}
		}

		order.OrderStatus = target
		err = s.orderRepo.UpdateOrderStatus(ctx, order)
		if err != nil {
			return err
		}

		order.Version++
		order.UpdatedAt = time.Now()

		return s.recordEvent(ctx, eventType, order)
	})
	if err != nil {
		return
	}

	detail, err := s.populate(ctx, order)
	if err != nil {
		return
	}

	return toOrderResponse(detail), nil
}

// authorizeOrder lets admins through and otherwise requires the caller to be
// the buyer.
func authorizeOrder(requester dto.Requester, order domain.Order) error {
	if requester.Role == utils.RoleAdmin {
		return nil
	}

	if requester.UserID == "" || requester.UserID != order.UserID.Hex() {
		return errs.ErrUnauthorized
	}

	return nil
}

func (s *OrderServiceImpl) GetOrderByID(ctx context.Context, requester dto.Requester, orderID string) (resp dto.OrderResponse, err error) {
	id, err := parseObjectID(orderID)
	if err != nil {
		return
	}

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	if err = authorizeOrder(requester, order); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "GetOrderByID").Str("order_id", orderID).Str("user_id", requester.UserID).Msg("")
		return
	}

	detail, err := s.populate(ctx, order)
	if err != nil {
		return
	}

	return toOrderResponse(detail), nil
}

func (s *OrderServiceImpl) UserOrderHistory(ctx context.Context, userID string) (resp []dto.OrderResponse, err error) {
	uid, err := parseObjectID(userID)
	if err != nil {
		return
	}

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, uid)
	if err != nil {
		return
	}

	return s.populateAll(ctx, orders)
}

func (s *OrderServiceImpl) GetAllOrders(ctx context.Context) (resp []dto.OrderResponse, err error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		return
	}

	return s.populateAll(ctx, orders)
}

// DeleteOrder removes the order items before the order itself.
func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, orderID string) (err error) {
	id, err := parseObjectID(orderID)
	if err != nil {
		return
	}

	return s.orderRepo.HandleTrx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetOrderByID(ctx, id)
		if err != nil {
			return err
		}

		err = s.orderRepo.DeleteOrderItems(ctx, order.OrderItemIDs)
		if err != nil {
			return err
		}

		err = s.orderRepo.DeleteOrder(ctx, id)
		if err != nil {
			return err
		}

		return s.recordEvent(ctx, domain.EventOrderDeleted, order)
	})
}

func (s *OrderServiceImpl) GetOrderHistory(ctx context.Context, requester dto.Requester, orderID string) (resp []dto.OrderHistoryResponse, err error) {
	id, err := parseObjectID(orderID)
	if err != nil {
		return
	}

	// Admins may read the history of an order that has since been deleted.
	if requester.Role != utils.RoleAdmin {
		order, err := s.orderRepo.GetOrderByID(ctx, id)
		if err != nil {
			return resp, err
		}

		if err = authorizeOrder(requester, order); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "GetOrderHistory").Str("order_id", orderID).Str("user_id", requester.UserID).Msg("")
			return resp, err
		}
	}

	histories, err := s.historyRepo.GetHistoriesByOrderID(ctx, orderID)
	if err != nil {
		return
	}

	resp = make([]dto.OrderHistoryResponse, 0, len(histories))
	for _, history := range histories {
		resp = append(resp, dto.OrderHistoryResponse{
			EventID:     history.EventID,
			EventType:   history.EventType,
			OrderStatus: history.OrderStatus,
			OccurredAt:  history.OccurredAt,
		})
	}

	return resp, nil
}

// VerifyPayment asks Midtrans for the transaction status instead of trusting
// the notification body.
func (s *OrderServiceImpl) VerifyPayment(ctx context.Context, req dto.PaymentNotification) (err error) {
	status, midtransErr := s.paymentGateway.CheckTransaction(req.OrderID)
	if midtransErr != nil {
		log.Ctx(ctx).Error().Str("component", "VerifyPayment").Str("order_id", req.OrderID).Msg(midtransErr.Message)
		return errs.ErrPaymentVerification
	}

	if status == nil {
		return errs.ErrPaymentVerification
	}

	switch status.TransactionStatus {
	case transactionSettlement:
		_, err = s.PlaceOrder(ctx, req.OrderID)
	case transactionCapture:
		if status.FraudStatus != fraudAccept {
			log.Ctx(ctx).Info().Str("component", "VerifyPayment").Str("order_id", req.OrderID).Str("fraud_status", status.FraudStatus).Msg("capture not accepted")
			return nil
		}
		_, err = s.PlaceOrder(ctx, req.OrderID)
	case transactionDeny, transactionCancel, transactionExpire:
		_, err = s.CancelOrder(ctx, systemRequester, req.OrderID)
	default:
		log.Ctx(ctx).Info().Str("component", "VerifyPayment").Str("order_id", req.OrderID).Str("transaction_status", status.TransactionStatus).Msg("ignored")
		return nil
	}

	// Redelivered notifications for an order that already moved on are acknowledged.
	if errors.Is(err, errs.ErrInvalidTransition) {
		log.Ctx(ctx).Info().Err(err).Str("component", "VerifyPayment").Str("order_id", req.OrderID).Msg("")
		return nil
	}

	return err
}

func (s *OrderServiceImpl) recordEvent(ctx context.Context, eventType string, order domain.Order) error {
	now := time.Now()

	return s.outboxRepo.AddEvent(ctx, domain.OutboxEvent{
		EventID:     ulid.Make().String(),
		EventType:   eventType,
		AggregateID: order.ID.Hex(),
		Payload: domain.OrderEventPayload{
			OrderID:     order.ID.Hex(),
			UserID:      order.UserID.Hex(),
			OrderStatus: order.OrderStatus,
			TotalPrice:  order.TotalPrice,
			TotalItems:  order.TotalItems,
			OccurredAt:  now.UnixMilli(),
		},
		CreatedAt: now,
	})
}

func (s *OrderServiceImpl) populateAll(ctx context.Context, orders []domain.Order) ([]dto.OrderResponse, error) {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		detail, err := s.populate(ctx, order)
		if err != nil {
			return nil, err
		}

		resp = append(resp, toOrderResponse(detail))
	}

	return resp, nil
}

// populate resolves the buyer, the shipping address and the purchased
// products. References to deleted documents stay unresolved.
func (s *OrderServiceImpl) populate(ctx context.Context, order domain.Order) (domain.OrderDetail, error) {
	detail := domain.OrderDetail{Order: order}

	user, err := s.userRepo.GetUserByID(ctx, order.UserID)
	switch {
	case err == nil:
		detail.User = &user
	case !errors.Is(err, errs.ErrNotFound):
		return detail, err
	}

	address, err := s.addressRepo.GetAddressByID(ctx, order.ShippingAddressID)
	switch {
	case err == nil:
		detail.ShippingAddress = &address
	case !errors.Is(err, errs.ErrNotFound):
		return detail, err
	}

	items, err := s.orderRepo.GetOrderItemsByIDs(ctx, order.OrderItemIDs)
	if err != nil {
		return detail, err
	}

	for _, item := range items {
		itemDetail := domain.OrderItemDetail{OrderItem: item}

		product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
		switch {
		case err == nil:
			itemDetail.Product = &product
		case !errors.Is(err, errs.ErrNotFound):
			return detail, err
		}

		detail.Items = append(detail.Items, itemDetail)
	}

	return detail, nil
}
