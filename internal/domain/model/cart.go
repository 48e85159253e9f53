package model

import "github.com/shopspring/decimal"

// CartItem is one product line of the device cart.
type CartItem struct {
	ID       int64           `json:"id" validate:"gt=0"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
	Quantity int             `json:"quantity"`
}

// Cart is the ordered list of lines persisted on the device.
type Cart []CartItem

// Total sums price times quantity over all lines.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Count sums quantities over all lines.
func (c Cart) Count() int {
	n := 0
	for _, item := range c {
		n += item.Quantity
	}
	return n
}
