package dto

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/iowasensors/internal/domain/model"
)

// AddCartItemRequest adds quantity units of a catalog product to the cart.
type AddCartItemRequest struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

func (r AddCartItemRequest) Item() model.CartItem {
	return model.CartItem{ID: r.ID, Name: r.Name, Price: r.Price, Image: r.Image}
}

type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart with its derived totals.
type CartResponse struct {
	Items model.Cart      `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func NewCartResponse(cart model.Cart) CartResponse {
	if cart == nil {
		cart = model.Cart{}
	}
	return CartResponse{Items: cart, Count: cart.Count(), Total: cart.Total()}
}
