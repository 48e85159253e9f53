package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/domain/model"
	"github.com/polkiloo/iowasensors/internal/domain/repository"
)

// KeyCart is the storage key of the device cart.
const KeyCart = "cart"

// CartUseCase keeps the shopping cart persisted on the device.
//
// Every change is a read-modify-write of the whole cart under one lock.
type CartUseCase struct {
	store  repository.KeyValueStore
	logger *slog.Logger

	mu sync.Mutex
}

func NewCartUseCase(store repository.KeyValueStore, logger *slog.Logger) *CartUseCase {
	return &CartUseCase{store: store, logger: logger}
}

// Items returns the stored cart. A cart that cannot be decoded counts as empty.
func (u *CartUseCase) Items(ctx context.Context) (model.Cart, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.load(ctx)
}

// Add puts quantity units of item into the cart, merging with an existing line.
func (u *CartUseCase) Add(ctx context.Context, item model.CartItem, quantity int) (model.Cart, error) {
	if err := validateForm(item); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, invalid("quantity", "quantity must be at least 1")
	}

	return u.update(ctx, func(cart model.Cart) (model.Cart, error) {
		for i := range cart {
			if cart[i].ID == item.ID {
				cart[i].Quantity += quantity
				return cart, nil
			}
		}
		item.Quantity = quantity
		return append(cart, item), nil
	})
}

// Remove drops the line of product id. Removing an absent product is a no-op.
func (u *CartUseCase) Remove(ctx context.Context, id int64) (model.Cart, error) {
	return u.update(ctx, func(cart model.Cart) (model.Cart, error) {
		out := cart[:0]
		for _, item := range cart {
			if item.ID != id {
				out = append(out, item)
			}
		}
		return out, nil
	})
}

// UpdateQuantity sets the quantity of the line of product id.
func (u *CartUseCase) UpdateQuantity(ctx context.Context, id int64, quantity int) (model.Cart, error) {
	if quantity < 1 {
		return nil, invalid("quantity", "quantity must be at least 1")
	}
	return u.update(ctx, func(cart model.Cart) (model.Cart, error) {
		for i := range cart {
			if cart[i].ID == id {
				cart[i].Quantity = quantity
				return cart, nil
			}
		}
		return nil, fmt.Errorf("cart item %d: %w", id, domainErrors.ErrNotFound)
	})
}

// Clear removes the stored cart.
func (u *CartUseCase) Clear(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := u.store.Delete(ctx, KeyCart); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (u *CartUseCase) update(ctx context.Context, fn func(model.Cart) (model.Cart, error)) (model.Cart, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	cart, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	cart, err = fn(cart)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	if err := u.store.Set(ctx, KeyCart, raw); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func (u *CartUseCase) load(ctx context.Context) (model.Cart, error) {
	raw, err := u.store.Get(ctx, KeyCart)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return model.Cart{}, nil
		}
		return nil, fmt.Errorf("read cart: %w", err)
	}

	var cart model.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		u.logger.Warn("stored cart cannot be decoded", slog.String("error", err.Error()))
		return model.Cart{}, nil
	}
	if cart == nil {
		cart = model.Cart{}
	}
	return cart, nil
}
