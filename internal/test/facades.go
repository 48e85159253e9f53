package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/domain/model"
)

// SessionFacadeStub simulates sign in interactions.
type SessionFacadeStub struct {
	LoginFn    func(context.Context, model.Credentials) (*model.UserInfo, error)
	LogoutFn   func(context.Context) error
	CurrentFn  func(context.Context) (*model.UserInfo, error)
	SignedInFn func(context.Context) (bool, error)
}

// Login returns a staff profile unless overridden.
func (s SessionFacadeStub) Login(ctx context.Context, creds model.Credentials) (*model.UserInfo, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, creds)
	}
	return &model.UserInfo{ID: 1, Username: creds.Username, IsStaff: true}, nil
}

func (s SessionFacadeStub) Logout(ctx context.Context) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx)
	}
	return nil
}

// CurrentUser reports ErrNotAuthenticated unless overridden.
func (s SessionFacadeStub) CurrentUser(ctx context.Context) (*model.UserInfo, error) {
	if s.CurrentFn != nil {
		return s.CurrentFn(ctx)
	}
	return nil, domainErrors.ErrNotAuthenticated
}

// SignedIn reports a stored session unless overridden.
func (s SessionFacadeStub) SignedIn(ctx context.Context) (bool, error) {
	if s.SignedInFn != nil {
		return s.SignedInFn(ctx)
	}
	return true, nil
}

// AccountFacadeStub simulates registration and password reset.
type AccountFacadeStub struct {
	RegisterFn func(context.Context, model.Registration) error
	ResetFn    func(context.Context, model.PasswordReset) error
}

func (s AccountFacadeStub) Register(ctx context.Context, reg model.Registration) error {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return nil
}

func (s AccountFacadeStub) ResetPassword(ctx context.Context, req model.PasswordReset) error {
	if s.ResetFn != nil {
		return s.ResetFn(ctx, req)
	}
	return nil
}

// StoreFacadeStub serves the catalog and checkout confirmation.
type StoreFacadeStub struct {
	ProductsFn func(context.Context) ([]model.Product, error)
	ConfirmFn  func(context.Context, string) (string, error)
}

func (s StoreFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{}, nil
}

func (s StoreFacadeStub) ConfirmCheckout(ctx context.Context, sessionID string) (string, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, sessionID)
	}
	return "/payment-method", nil
}

// AdminFacadeStub records board calls and serves a fixed snapshot.
type AdminFacadeStub struct {
	FetchFn    func(context.Context, int) (*model.OrderPage, error)
	CompleteFn func(context.Context, int64, string) (*model.Order, error)
	Board      model.Buckets
	Loading    bool
	More       bool

	mu      sync.Mutex
	Fetched []int
}

func (s *AdminFacadeStub) FetchOrders(ctx context.Context, page int) (*model.OrderPage, error) {
	s.mu.Lock()
	s.Fetched = append(s.Fetched, page)
	s.mu.Unlock()
	if s.FetchFn != nil {
		return s.FetchFn(ctx, page)
	}
	return &model.OrderPage{}, nil
}

func (s *AdminFacadeStub) CompleteOrder(ctx context.Context, orderID int64, trackingNumber string) (*model.Order, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, orderID, trackingNumber)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusOutForDelivery, TrackingNumber: &trackingNumber}, nil
}

func (s *AdminFacadeStub) Buckets() model.Buckets {
	if s.Board == nil {
		return model.NewBuckets()
	}
	return s.Board
}

func (s *AdminFacadeStub) OrdersLoading() bool { return s.Loading }

func (s *AdminFacadeStub) HasMoreOrders() bool { return s.More }

// FetchedPages returns the pages requested so far.
func (s *AdminFacadeStub) FetchedPages() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.Fetched...)
}

// ChatFacadeStub keeps chat view state in memory.
type ChatFacadeStub struct {
	MountFn func(context.Context, string) error
	SendFn  func() error

	Friend   int64
	Mounted  bool
	State    model.ConnState
	Messages []model.ChatMessage
	Input    string
}

func (s *ChatFacadeStub) MountChat(ctx context.Context, friendID string) error {
	if s.MountFn != nil {
		if err := s.MountFn(ctx, friendID); err != nil {
			return err
		}
	}
	s.Mounted = true
	s.State = model.ConnOpen
	return nil
}

func (s *ChatFacadeStub) UnmountChat() {
	s.Mounted = false
	s.State = model.ConnClosed
}

func (s *ChatFacadeStub) ChatFriend() (int64, bool) { return s.Friend, s.Mounted }

func (s *ChatFacadeStub) ChatState() model.ConnState {
	if s.State == "" {
		return model.ConnIdle
	}
	return s.State
}

func (s *ChatFacadeStub) ChatMessages() []model.ChatMessage { return s.Messages }

func (s *ChatFacadeStub) ChatInput() string { return s.Input }

func (s *ChatFacadeStub) SetChatInput(text string) { s.Input = text }

// SendChat clears the input like a successful write unless overridden.
func (s *ChatFacadeStub) SendChat() error {
	if s.SendFn != nil {
		return s.SendFn()
	}
	if !s.Mounted {
		return domainErrors.ErrNotMounted
	}
	s.Input = ""
	return nil
}

// CartFacadeStub keeps the cart in memory. Quantities are not validated.
type CartFacadeStub struct {
	Items model.Cart
	Err   error
}

func (s *CartFacadeStub) Cart(context.Context) (model.Cart, error) {
	return s.Items, s.Err
}

func (s *CartFacadeStub) AddToCart(_ context.Context, item model.CartItem, quantity int) (model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == item.ID {
			s.Items[i].Quantity += quantity
			return s.Items, nil
		}
	}
	item.Quantity = quantity
	s.Items = append(s.Items, item)
	return s.Items, nil
}

func (s *CartFacadeStub) RemoveFromCart(_ context.Context, id int64) (model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := model.Cart{}
	for _, item := range s.Items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	s.Items = out
	return s.Items, nil
}

// UpdateCartQuantity reports ErrNotFound for products not in the cart.
func (s *CartFacadeStub) UpdateCartQuantity(_ context.Context, id int64, quantity int) (model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items[i].Quantity = quantity
			return s.Items, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CartFacadeStub) ClearCart(context.Context) error {
	if s.Err != nil {
		return s.Err
	}
	s.Items = nil
	return nil
}

// SensorFacadeStub acknowledges sensor operations.
type SensorFacadeStub struct {
	AddFn      func(context.Context, model.SensorAddition) (string, error)
	RegisterFn func(context.Context, model.SensorRegistration) (string, error)
}

func (s SensorFacadeStub) AddSensor(ctx context.Context, req model.SensorAddition) (string, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, req)
	}
	return "Sensor added", nil
}

func (s SensorFacadeStub) RegisterSensor(ctx context.Context, req model.SensorRegistration) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, req)
	}
	return "Sensor registered", nil
}

type HealthFacadeStub struct {
	HealthFn func(context.Context) error
}

func (s HealthFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// CompanionFacadeStub aggregates facade stubs for HTTP layer tests.
type CompanionFacadeStub struct {
	SessionFacadeStub
	AccountFacadeStub
	StoreFacadeStub
	*AdminFacadeStub
	*ChatFacadeStub
	*CartFacadeStub
	SensorFacadeStub
	HealthFacadeStub
}

// NewCompanionFacadeStub returns a stub with every part initialised.
func NewCompanionFacadeStub() CompanionFacadeStub {
	return CompanionFacadeStub{
		AdminFacadeStub: &AdminFacadeStub{},
		ChatFacadeStub:  &ChatFacadeStub{},
		CartFacadeStub:  &CartFacadeStub{},
	}
}
