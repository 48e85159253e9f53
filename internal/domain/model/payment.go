package model

import "github.com/shopspring/decimal"

// CheckoutConfirmation is the backend answer to a checkout session confirmation.
type CheckoutConfirmation struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Product is an item of the store catalog.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}
