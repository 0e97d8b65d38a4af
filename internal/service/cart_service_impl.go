package service

import (
	"context"
	"errors"

	"github.com/AatishKamble/swapify/internal/domain"
	"github.com/AatishKamble/swapify/internal/dto"
	"github.com/AatishKamble/swapify/internal/repository"
	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func CreateCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &CartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *CartServiceImpl) FindUserCart(ctx context.Context, userID string) (resp dto.CartResponse, err error) {
	uid, err := parseObjectID(userID)
	if err != nil {
		return
	}

	cart, err := s.getOrCreateCart(ctx, uid)
	if err != nil {
		return
	}

	cart, err = s.populate(ctx, cart)
	if err != nil {
		return
	}

	err = s.cartRepo.UpdateCart(ctx, cart)
	if err != nil {
		return
	}

	return toCartResponse(cart), nil
}

func (s *CartServiceImpl) AddCartItem(ctx context.Context, userID string, req dto.AddCartItemRequest) (resp dto.CartResponse, err error) {
	uid, err := parseObjectID(userID)
	if err != nil {
		return
	}

	productID, err := parseObjectID(req.ProductID)
	if err != nil {
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	var cart domain.Cart
	err = s.cartRepo.HandleTrx(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.GetProductByID(ctx, productID)
		if err != nil {
			return err
		}

		if !product.State.IsListable() {
			return errs.ErrProductUnavailable
		}

		cart, err = s.getOrCreateCart(ctx, uid)
		if err != nil {
			return err
		}

		_, err = s.cartRepo.GetCartItemByProduct(ctx, cart.ID, productID)
		switch {
		case err == nil:
			// already in the cart
		case errors.Is(err, errs.ErrNotFound):
			itemID, err := s.cartRepo.AddCartItem(ctx, domain.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				Price:     product.Price,
				Quantity:  quantity,
				UserID:    uid,
			})
			if err != nil {
				return err
			}

			cart.CartItemIDs = append(cart.CartItemIDs, itemID)
		default:
			return err
		}

		cart, err = s.populate(ctx, cart)
		if err != nil {
			return err
		}

		return s.cartRepo.UpdateCart(ctx, cart)
	})
	if err != nil {
		return
	}

	return toCartResponse(cart), nil
}

func (s *CartServiceImpl) RemoveCartItem(ctx context.Context, userID string, cartItemID string) (resp dto.CartResponse, err error) {
	uid, err := parseObjectID(userID)
	if err != nil {
		return
	}

	itemID, err := parseObjectID(cartItemID)
	if err != nil {
		return
	}

	cart, err := s.DeleteUserCartItem(ctx, uid, itemID)
	if err != nil {
		return
	}

	return toCartResponse(cart), nil
}

func (s *CartServiceImpl) LoadUserCart(ctx context.Context, userID primitive.ObjectID) (cart domain.Cart, err error) {
	cart, err = s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return
	}

	return s.populate(ctx, cart)
}

func (s *CartServiceImpl) DeleteUserCartItem(ctx context.Context, userID, cartItemID primitive.ObjectID) (cart domain.Cart, err error) {
	err = s.cartRepo.HandleTrx(ctx, func(ctx context.Context) error {
		item, err := s.cartRepo.GetCartItemByID(ctx, cartItemID)
		if err != nil {
			return err
		}

		if item.UserID != userID {
			log.Ctx(ctx).Warn().Str("component", "DeleteUserCartItem").Str("cart_item_id", cartItemID.Hex()).Msg("cart item belongs to another user")
			return errs.ErrUnauthorized
		}

		cart, err = s.cartRepo.GetCartByUserID(ctx, userID)
		if err != nil {
			return err
		}

		remaining := make([]primitive.ObjectID, 0, len(cart.CartItemIDs))
		for _, id := range cart.CartItemIDs {
			if id != cartItemID {
				remaining = append(remaining, id)
			}
		}
		cart.CartItemIDs = remaining

		err = s.cartRepo.DeleteCartItem(ctx, cartItemID)
		if err != nil {
			return err
		}

		cart, err = s.populate(ctx, cart)
		if err != nil {
			return err
		}

		return s.cartRepo.UpdateCart(ctx, cart)
	})

	return cart, err
}

func (s *CartServiceImpl) getOrCreateCart(ctx context.Context, userID primitive.ObjectID) (cart domain.Cart, err error) {
	cart, err = s.cartRepo.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	if !errors.Is(err, errs.ErrNotFound) {
		return
	}

	cart = domain.Cart{
		UserID:      userID,
		CartItemIDs: []primitive.ObjectID{},
	}

	cart.ID, err = s.cartRepo.AddCart(ctx, cart)

	return cart, err
}

// populate resolves the cart items and their products and refreshes the
// cached totals. Products that no longer exist are left unresolved.
func (s *CartServiceImpl) populate(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	items, err := s.cartRepo.GetCartItemsByIDs(ctx, cart.CartItemIDs)
	if err != nil {
		return cart, err
	}

	for i := range items {
		product, err := s.productRepo.GetProductByID(ctx, items[i].ProductID)
		if errors.Is(err, errs.ErrNotFound) {
			continue
		}
		if err != nil {
			return cart, err
		}

		items[i].Product = &product
	}

	cart.CartItems = items
	cart.RecalculateTotals()

	return cart, nil
}
