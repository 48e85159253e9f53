package handlers

import (
	"context"

	"github.com/polkiloo/iowasensors/internal/domain/model"
)

// SessionFacade describes sign in capabilities required by handlers.
type SessionFacade interface {
	Login(ctx context.Context, creds model.Credentials) (*model.UserInfo, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*model.UserInfo, error)
	SignedIn(ctx context.Context) (bool, error)
}

// AccountFacade covers account forms that work without a session.
type AccountFacade interface {
	Register(ctx context.Context, reg model.Registration) error
	ResetPassword(ctx context.Context, req model.PasswordReset) error
}

// StoreFacade exposes the catalog and checkout confirmation.
type StoreFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	ConfirmCheckout(ctx context.Context, sessionID string) (string, error)
}

// AdminFacade encapsulates the admin order board.
type AdminFacade interface {
	FetchOrders(ctx context.Context, page int) (*model.OrderPage, error)
	CompleteOrder(ctx context.Context, orderID int64, trackingNumber string) (*model.Order, error)
	Buckets() model.Buckets
	OrdersLoading() bool
	HasMoreOrders() bool
}

// ChatFacade drives the direct conversation view.
type ChatFacade interface {
	MountChat(ctx context.Context, friendID string) error
	UnmountChat()
	ChatFriend() (int64, bool)
	ChatState() model.ConnState
	ChatMessages() []model.ChatMessage
	ChatInput() string
	SetChatInput(text string)
	SendChat() error
}

// CartFacade manages the cart persisted on the device.
type CartFacade interface {
	Cart(ctx context.Context) (model.Cart, error)
	AddToCart(ctx context.Context, item model.CartItem, quantity int) (model.Cart, error)
	RemoveFromCart(ctx context.Context, id int64) (model.Cart, error)
	UpdateCartQuantity(ctx context.Context, id int64, quantity int) (model.Cart, error)
	ClearCart(ctx context.Context) error
}

type SensorFacade interface {
	AddSensor(ctx context.Context, req model.SensorAddition) (string, error)
	RegisterSensor(ctx context.Context, req model.SensorRegistration) (string, error)
}

type HealthFacade interface {
	Health(ctx context.Context) error
}

// CompanionFacade aggregates the full set of operations used across handlers.
type CompanionFacade interface {
	SessionFacade
	AccountFacade
	StoreFacade
	AdminFacade
	ChatFacade
	CartFacade
	SensorFacade
	HealthFacade
}
