package model

import (
	"encoding/json"
	"testing"
)

func TestBucketFor(t *testing.T) {
	cases := []struct {
		status OrderStatus
		want   BucketName
	}{
		{OrderStatusOutForDelivery, BucketOutForDelivery},
		{OrderStatusCancelled, BucketCanceled},
		{OrderStatusProcessing, BucketProcessing},
		{"pending", BucketProcessing},
		{"", BucketProcessing},
		{"CANCELLED", BucketProcessing},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			if got := BucketFor(tc.status); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestOrderPageHasNext(t *testing.T) {
	cases := []struct {
		next string
		want bool
	}{
		{`null`, false},
		{`false`, false},
		{`""`, false},
		{`0`, false},
		{`0.0`, false},
		{`"http://api/orders/admin/?page=2"`, true},
		{`true`, true},
		{`2`, true},
		{`{}`, true},
		{`[]`, true},
	}

	for _, tc := range cases {
		t.Run(tc.next, func(t *testing.T) {
			var page OrderPage
			if err := json.Unmarshal([]byte(`{"results":[],"next":`+tc.next+`}`), &page); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := page.HasNext(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	var missing OrderPage
	if err := json.Unmarshal([]byte(`{"results":[]}`), &missing); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if missing.HasNext() {
		t.Fatal("expected missing next to be falsy")
	}
}

func TestOrderDecodesDecimalText(t *testing.T) {
	payload := `{"id":7,"stripe_payment_method_id":null,"total_price":"19.90","status":"processing",
		"tracking_number":null,"user":{"first_name":"Ada","last_name":"L","email":"ada@example.com"},
		"items":[{"product_name":"Sensor","product_price":"9.95","quantity":2}]}`
	var o Order
	if err := json.Unmarshal([]byte(payload), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if o.TotalPrice.String() != "19.9" {
		t.Fatalf("unexpected total %s", o.TotalPrice)
	}
	if o.PaymentMethodID != nil || o.TrackingNumber != nil {
		t.Fatalf("expected nullable fields to stay nil")
	}
	if len(o.Items) != 1 || o.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", o.Items)
	}

	out, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	_ = json.Unmarshal(out, &back)
	if _, ok := back["total_price"].(string); !ok {
		t.Fatalf("expected total_price to be serialized as text, got %T", back["total_price"])
	}
}

func TestOrderCloneIsDeep(t *testing.T) {
	tracking := "TRK"
	o := Order{ID: 1, TrackingNumber: &tracking, Items: []OrderItem{{ProductName: "a"}}}
	c := o.Clone()
	*c.TrackingNumber = "changed"
	c.Items[0].ProductName = "b"
	if *o.TrackingNumber != "TRK" || o.Items[0].ProductName != "a" {
		t.Fatal("clone shares memory with original")
	}
}

func TestNewBucketsHasEveryBucket(t *testing.T) {
	b := NewBuckets()
	for _, name := range BucketNames {
		if orders, ok := b[name]; !ok || orders == nil {
			t.Fatalf("bucket %q missing", name)
		}
	}
	if b.Total() != 0 {
		t.Fatalf("expected empty buckets")
	}
}
