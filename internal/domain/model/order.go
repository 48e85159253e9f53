package model

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// OrderStatus is the raw status code reported by the store backend.
type OrderStatus string

const (
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// BucketName labels one of the three delivery groups shown on the admin board.
type BucketName string

const (
	BucketOutForDelivery BucketName = "Out for Delivery"
	BucketProcessing     BucketName = "Processing"
	BucketCanceled       BucketName = "Canceled"
)

// BucketNames lists buckets in display order.
var BucketNames = []BucketName{BucketOutForDelivery, BucketProcessing, BucketCanceled}

// BucketFor maps a raw status code to its bucket. Unknown codes land in Processing.
func BucketFor(status OrderStatus) BucketName {
	switch status {
	case OrderStatusOutForDelivery:
		return BucketOutForDelivery
	case OrderStatusCancelled:
		return BucketCanceled
	default:
		return BucketProcessing
	}
}

// Customer is the customer summary embedded into an order.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// OrderItem is a single order line.
type OrderItem struct {
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
}

// Order describes a store order as returned by the admin endpoints.
type Order struct {
	ID              int64           `json:"id"`
	PaymentMethodID *string         `json:"stripe_payment_method_id"`
	ShippingAddress string          `json:"shipping_address"`
	City            string          `json:"city"`
	State           string          `json:"state"`
	ZipCode         string          `json:"zip_code"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          OrderStatus     `json:"status"`
	TrackingNumber  *string         `json:"tracking_number"`
	CreatedAt       string          `json:"created_at"`
	User            Customer        `json:"user"`
	Items           []OrderItem     `json:"items"`
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	c := o
	if o.PaymentMethodID != nil {
		v := *o.PaymentMethodID
		c.PaymentMethodID = &v
	}
	if o.TrackingNumber != nil {
		v := *o.TrackingNumber
		c.TrackingNumber = &v
	}
	if o.Items != nil {
		c.Items = append([]OrderItem(nil), o.Items...)
	}
	return c
}

// OrderPage is one page of the paginated admin orders listing.
type OrderPage struct {
	Results []Order         `json:"results"`
	Next    json.RawMessage `json:"next"`
}

// HasNext reports whether the "next" field is truthy.
func (p *OrderPage) HasNext() bool {
	return truthy(p.Next)
}

// Buckets is a snapshot of the admin board grouped by bucket.
type Buckets map[BucketName][]Order

// NewBuckets returns a bucket map with every bucket present and empty.
func NewBuckets() Buckets {
	b := make(Buckets, len(BucketNames))
	for _, name := range BucketNames {
		b[name] = []Order{}
	}
	return b
}

// Total returns the number of orders across all buckets.
func (b Buckets) Total() int {
	n := 0
	for _, orders := range b {
		n += len(orders)
	}
	return n
}

// OrderStatusUpdate is the body of the order update endpoint.
type OrderStatusUpdate struct {
	Status         OrderStatus `json:"status"`
	TrackingNumber string      `json:"tracking_number"`
}

func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch string(raw) {
	case "null", "false", `""`:
		return false
	}
	if raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9') {
		f, err := strconv.ParseFloat(string(raw), 64)
		return err != nil || f != 0
	}
	return true
}
