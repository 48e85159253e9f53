package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/iowasensors/internal/chat"
	"github.com/polkiloo/iowasensors/internal/domain/model"
	"github.com/polkiloo/iowasensors/internal/domain/repository"
	"github.com/polkiloo/iowasensors/internal/usecase"
)

// Components are the view-models and use cases behind the facade.
type Components struct {
	fx.In

	Account *usecase.AccountUseCase
	Catalog *usecase.CatalogUseCase
	Payment *usecase.PaymentUseCase
	Cart    *usecase.CartUseCase
	Sensors *usecase.SensorUseCase
	Board   *usecase.OrderBoard
	Chat    *chat.View
	Store   repository.KeyValueStore
}

// CompanionFacade exposes the view-models to the console API.
type CompanionFacade struct {
	account *usecase.AccountUseCase
	catalog *usecase.CatalogUseCase
	payment *usecase.PaymentUseCase
	cart    *usecase.CartUseCase
	sensors *usecase.SensorUseCase
	board   *usecase.OrderBoard
	chat    *chat.View
	store   repository.KeyValueStore
}

func NewCompanionFacade(c Components) *CompanionFacade {
	return &CompanionFacade{
		account: c.Account,
		catalog: c.Catalog,
		payment: c.Payment,
		cart:    c.Cart,
		sensors: c.Sensors,
		board:   c.Board,
		chat:    c.Chat,
		store:   c.Store,
	}
}

func (f *CompanionFacade) Login(ctx context.Context, creds model.Credentials) (*model.UserInfo, error) {
	return f.account.Login(ctx, creds)
}

// Logout forgets the session first, then drops the chat socket and the orders
// loaded with the previous token.
func (f *CompanionFacade) Logout(ctx context.Context) error {
	err := f.account.Logout(ctx)
	f.chat.Unmount()
	f.board.Reset()
	return err
}

func (f *CompanionFacade) CurrentUser(ctx context.Context) (*model.UserInfo, error) {
	return f.account.Current(ctx)
}

func (f *CompanionFacade) SignedIn(ctx context.Context) (bool, error) {
	return f.account.SignedIn(ctx)
}

func (f *CompanionFacade) Register(ctx context.Context, reg model.Registration) error {
	return f.account.Register(ctx, reg)
}

func (f *CompanionFacade) ResetPassword(ctx context.Context, req model.PasswordReset) error {
	return f.account.ResetPassword(ctx, req)
}

func (f *CompanionFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.Products(ctx)
}

func (f *CompanionFacade) ConfirmCheckout(ctx context.Context, sessionID string) (string, error) {
	return f.payment.ConfirmCheckout(ctx, sessionID)
}

func (f *CompanionFacade) FetchOrders(ctx context.Context, page int) (*model.OrderPage, error) {
	return f.board.FetchOrders(ctx, page)
}

func (f *CompanionFacade) CompleteOrder(ctx context.Context, orderID int64, trackingNumber string) (*model.Order, error) {
	return f.board.CompleteOrder(ctx, orderID, trackingNumber)
}

func (f *CompanionFacade) Buckets() model.Buckets {
	return f.board.Buckets()
}

func (f *CompanionFacade) OrdersLoading() bool {
	return f.board.Loading()
}

func (f *CompanionFacade) HasMoreOrders() bool {
	return f.board.HasMore()
}

func (f *CompanionFacade) MountChat(ctx context.Context, friendID string) error {
	return f.chat.Mount(ctx, friendID)
}

func (f *CompanionFacade) UnmountChat() {
	f.chat.Unmount()
}

func (f *CompanionFacade) ChatFriend() (int64, bool) {
	return f.chat.FriendID()
}

func (f *CompanionFacade) ChatState() model.ConnState {
	return f.chat.State()
}

func (f *CompanionFacade) ChatMessages() []model.ChatMessage {
	return f.chat.Messages()
}

func (f *CompanionFacade) ChatInput() string {
	return f.chat.Input()
}

func (f *CompanionFacade) SetChatInput(text string) {
	f.chat.SetInput(text)
}

func (f *CompanionFacade) SendChat() error {
	return f.chat.Send()
}

func (f *CompanionFacade) Cart(ctx context.Context) (model.Cart, error) {
	return f.cart.Items(ctx)
}

func (f *CompanionFacade) AddToCart(ctx context.Context, item model.CartItem, quantity int) (model.Cart, error) {
	return f.cart.Add(ctx, item, quantity)
}

func (f *CompanionFacade) RemoveFromCart(ctx context.Context, id int64) (model.Cart, error) {
	return f.cart.Remove(ctx, id)
}

func (f *CompanionFacade) UpdateCartQuantity(ctx context.Context, id int64, quantity int) (model.Cart, error) {
	return f.cart.UpdateQuantity(ctx, id, quantity)
}

func (f *CompanionFacade) ClearCart(ctx context.Context) error {
	return f.cart.Clear(ctx)
}

func (f *CompanionFacade) AddSensor(ctx context.Context, req model.SensorAddition) (string, error) {
	return f.sensors.Add(ctx, req)
}

func (f *CompanionFacade) RegisterSensor(ctx context.Context, req model.SensorRegistration) (string, error) {
	return f.sensors.Register(ctx, req)
}

// Health pings the device storage.
func (f *CompanionFacade) Health(ctx context.Context) error {
	return f.store.HealthCheck(ctx)
}
