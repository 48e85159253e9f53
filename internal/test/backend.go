package test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/polkiloo/iowasensors/internal/adapter/backend"
	"github.com/polkiloo/iowasensors/internal/domain/model"
)

// BackendStub is an in-process store backend. Zero value answers every call
// successfully with empty data.
type BackendStub struct {
	AdminOrdersFn func(context.Context, string, int) (*model.OrderPage, error)
	UpdateOrderFn func(context.Context, string, int64, model.OrderStatusUpdate) (*model.Order, error)
	ConfirmFn     func(context.Context, string) (*model.CheckoutConfirmation, error)
	RegisterFn    func(context.Context, model.Registration) error
	ObtainTokenFn func(context.Context, model.Credentials) (string, error)
	MeFn          func(context.Context, string) (json.RawMessage, error)
	ResetFn       func(context.Context, model.PasswordReset) error
	ProductsFn    func(context.Context) ([]model.Product, error)
	AddSensorFn   func(context.Context, string, model.SensorAddition) (*model.SensorResult, error)
	RegSensorFn   func(context.Context, string, model.SensorRegistration) (*model.SensorResult, error)

	mu     sync.Mutex
	Tokens []string
}

func (s *BackendStub) record(token string) {
	s.mu.Lock()
	s.Tokens = append(s.Tokens, token)
	s.mu.Unlock()
}

// SeenTokens returns the auth tokens passed to authenticated calls.
func (s *BackendStub) SeenTokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Tokens...)
}

func (s *BackendStub) AdminOrders(ctx context.Context, token string, page int) (*model.OrderPage, error) {
	s.record(token)
	if s.AdminOrdersFn != nil {
		return s.AdminOrdersFn(ctx, token, page)
	}
	return &model.OrderPage{Results: []model.Order{}}, nil
}

func (s *BackendStub) UpdateOrder(ctx context.Context, token string, orderID int64, update model.OrderStatusUpdate) (*model.Order, error) {
	s.record(token)
	if s.UpdateOrderFn != nil {
		return s.UpdateOrderFn(ctx, token, orderID, update)
	}
	tracking := update.TrackingNumber
	return &model.Order{ID: orderID, Status: update.Status, TrackingNumber: &tracking}, nil
}

func (s *BackendStub) ConfirmCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutConfirmation, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, sessionID)
	}
	return &model.CheckoutConfirmation{Result: "success"}, nil
}

func (s *BackendStub) Register(ctx context.Context, reg model.Registration) error {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return nil
}

// ObtainToken returns "token-<username>" unless overridden.
func (s *BackendStub) ObtainToken(ctx context.Context, creds model.Credentials) (string, error) {
	if s.ObtainTokenFn != nil {
		return s.ObtainTokenFn(ctx, creds)
	}
	return "token-" + creds.Username, nil
}

// Me returns a staff profile unless overridden.
func (s *BackendStub) Me(ctx context.Context, token string) (json.RawMessage, error) {
	s.record(token)
	if s.MeFn != nil {
		return s.MeFn(ctx, token)
	}
	return json.RawMessage(`{"id":1,"username":"admin","is_staff":true}`), nil
}

func (s *BackendStub) ResetPassword(ctx context.Context, req model.PasswordReset) error {
	if s.ResetFn != nil {
		return s.ResetFn(ctx, req)
	}
	return nil
}

func (s *BackendStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{}, nil
}

func (s *BackendStub) AddSensor(ctx context.Context, token string, req model.SensorAddition) (*model.SensorResult, error) {
	s.record(token)
	if s.AddSensorFn != nil {
		return s.AddSensorFn(ctx, token, req)
	}
	return &model.SensorResult{Message: "Sensor added"}, nil
}

func (s *BackendStub) RegisterSensor(ctx context.Context, token string, req model.SensorRegistration) (*model.SensorResult, error) {
	s.record(token)
	if s.RegSensorFn != nil {
		return s.RegSensorFn(ctx, token, req)
	}
	return &model.SensorResult{Message: "Sensor registered"}, nil
}

var _ backend.Client = (*BackendStub)(nil)
