package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/polkiloo/iowasensors/internal/chat"
	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/domain/model"
	"github.com/polkiloo/iowasensors/internal/pkg/auth"
	"github.com/polkiloo/iowasensors/internal/session"
	"github.com/polkiloo/iowasensors/internal/storage/memory"
	testhelpers "github.com/polkiloo/iowasensors/internal/test"
	"github.com/polkiloo/iowasensors/internal/usecase"
)

type refusingDialer struct {
	urls []string
}

func (d *refusingDialer) DialContext(_ context.Context, url string, _ http.Header) (*websocket.Conn, *http.Response, error) {
	d.urls = append(d.urls, url)
	return nil, nil, errors.New("connection refused")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newFacade(t *testing.T) (*CompanionFacade, *testhelpers.BackendStub, *refusingDialer) {
	t.Helper()
	logger := discardLogger()
	sealer, err := auth.NewAEADSealer("device-secret", auth.Options{})
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	store := memory.New()
	sess := session.New(store, sealer, logger)
	backend := &testhelpers.BackendStub{}
	dialer := &refusingDialer{}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	board := usecase.NewOrderBoard(ctx, backend, sess, logger, nil)
	view := chat.NewView(ctx, dialer, sess, chat.Options{Host: "127.0.0.1"}, logger, nil)
	t.Cleanup(view.Close)

	facade := NewCompanionFacade(Components{
		Account: usecase.NewAccountUseCase(backend, sess, logger),
		Catalog: usecase.NewCatalogUseCase(backend),
		Payment: usecase.NewPaymentUseCase(backend, logger),
		Cart:    usecase.NewCartUseCase(store, logger),
		Sensors: usecase.NewSensorUseCase(backend, sess, logger),
		Board:   board,
		Chat:    view,
		Store:   store,
	})
	return facade, backend, dialer
}

func TestCompanionFacadeSession(t *testing.T) {
	facade, _, _ := newFacade(t)
	ctx := context.Background()

	if ok, err := facade.SignedIn(ctx); err != nil || ok {
		t.Fatalf("expected signed out, got %v %v", ok, err)
	}
	if _, err := facade.CurrentUser(ctx); !errors.Is(err, domainErrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}

	info, err := facade.Login(ctx, model.Credentials{Username: "admin", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !info.IsStaff {
		t.Fatalf("expected staff profile, got %+v", info)
	}
	if ok, _ := facade.SignedIn(ctx); !ok {
		t.Fatal("expected signed in after login")
	}
	current, err := facade.CurrentUser(ctx)
	if err != nil || current.Username != "admin" {
		t.Fatalf("unexpected current user %+v %v", current, err)
	}

	if err := facade.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if ok, _ := facade.SignedIn(ctx); ok {
		t.Fatal("expected signed out after logout")
	}
}

func TestCompanionFacadeAccountAndStore(t *testing.T) {
	facade, backend, _ := newFacade(t)
	ctx := context.Background()

	var registered model.Registration
	backend.RegisterFn = func(_ context.Context, reg model.Registration) error {
		registered = reg
		return nil
	}
	err := facade.Register(ctx, model.Registration{
		FirstName: "A", LastName: "B", Username: "ab", Email: "ab@example.com", Password: "pw", ConfirmPassword: "pw",
	})
	if err != nil || registered.Username != "ab" {
		t.Fatalf("unexpected register result %+v %v", registered, err)
	}

	err = facade.ResetPassword(ctx, model.PasswordReset{Email: "bad", Token: "t", NewPassword: "a", ConfirmNewPassword: "a"})
	if !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	products, err := facade.Products(ctx)
	if err != nil || products == nil {
		t.Fatalf("unexpected products %v %v", products, err)
	}

	redirect, err := facade.ConfirmCheckout(ctx, "cs_test")
	if err != nil || redirect != usecase.PaymentMethodRoute {
		t.Fatalf("unexpected redirect %q %v", redirect, err)
	}
}

func TestCompanionFacadeBoard(t *testing.T) {
	facade, backend, _ := newFacade(t)
	ctx := context.Background()

	backend.AdminOrdersFn = func(_ context.Context, _ string, page int) (*model.OrderPage, error) {
		return &model.OrderPage{Results: []model.Order{
			{ID: 1, Status: model.OrderStatusProcessing},
			{ID: 2, Status: model.OrderStatusCancelled},
		}}, nil
	}

	page, err := facade.FetchOrders(ctx, 1)
	if err != nil || page != nil {
		t.Fatalf("expected silent skip while signed out, got %v %v", page, err)
	}

	if _, err := facade.Login(ctx, model.Credentials{Username: "admin", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := facade.FetchOrders(ctx, 1); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	buckets := facade.Buckets()
	if len(buckets[model.BucketProcessing]) != 1 || len(buckets[model.BucketCanceled]) != 1 {
		t.Fatalf("unexpected buckets %+v", buckets)
	}
	if facade.OrdersLoading() || facade.HasMoreOrders() {
		t.Fatal("expected idle board without more pages")
	}

	order, err := facade.CompleteOrder(ctx, 1, "TRK")
	if err != nil || order.Status != model.OrderStatusOutForDelivery {
		t.Fatalf("unexpected complete result %+v %v", order, err)
	}
	buckets = facade.Buckets()
	if len(buckets[model.BucketProcessing]) != 0 || len(buckets[model.BucketOutForDelivery]) != 1 {
		t.Fatalf("expected order moved to out for delivery, got %+v", buckets)
	}
	tokens := backend.SeenTokens()
	if tokens[len(tokens)-1] != "token-admin" {
		t.Fatalf("expected stored token forwarded, got %v", tokens)
	}
}

func TestCompanionFacadeChat(t *testing.T) {
	facade, _, dialer := newFacade(t)
	ctx := context.Background()

	if err := facade.MountChat(ctx, "5"); !errors.Is(err, domainErrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated before login, got %v", err)
	}
	if _, err := facade.Login(ctx, model.Credentials{Username: "admin", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := facade.MountChat(ctx, "5"); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if len(dialer.urls) != 1 || dialer.urls[0] != "ws://127.0.0.1:8000/ws/chat/5/?token=token-admin" {
		t.Fatalf("unexpected dial urls %v", dialer.urls)
	}
	if facade.ChatState() != model.ConnFailed {
		t.Fatalf("expected failed state after refused dial, got %s", facade.ChatState())
	}
	if id, ok := facade.ChatFriend(); !ok || id != 5 {
		t.Fatalf("unexpected friend %d %v", id, ok)
	}

	facade.SetChatInput("hi")
	if facade.ChatInput() != "hi" {
		t.Fatalf("unexpected input %q", facade.ChatInput())
	}
	if err := facade.SendChat(); !errors.Is(err, domainErrors.ErrNotMounted) {
		t.Fatalf("expected not mounted without socket, got %v", err)
	}
	if len(facade.ChatMessages()) != 0 {
		t.Fatal("expected no messages")
	}

	facade.UnmountChat()
	if _, ok := facade.ChatFriend(); ok {
		t.Fatal("expected chat unmounted")
	}
}

func TestCompanionFacadeLogoutClearsBoard(t *testing.T) {
	facade, backend, _ := newFacade(t)
	ctx := context.Background()

	backend.AdminOrdersFn = func(_ context.Context, token string, _ int) (*model.OrderPage, error) {
		if token != "token-admin" {
			return nil, errors.New("forbidden")
		}
		return &model.OrderPage{Results: []model.Order{{ID: 1, Status: model.OrderStatusProcessing}}, Next: []byte(`"next"`)}, nil
	}

	if _, err := facade.Login(ctx, model.Credentials{Username: "admin", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := facade.FetchOrders(ctx, 1); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(facade.Buckets()[model.BucketProcessing]) != 1 || !facade.HasMoreOrders() {
		t.Fatal("expected populated board before logout")
	}

	if err := facade.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := facade.Login(ctx, model.Credentials{Username: "guest", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := facade.FetchOrders(ctx, 1); err == nil {
		t.Fatal("expected non-admin fetch to fail")
	}

	for name, orders := range facade.Buckets() {
		if len(orders) != 0 {
			t.Fatalf("expected empty %s bucket after logout, got %d orders", name, len(orders))
		}
	}
	if facade.HasMoreOrders() {
		t.Fatal("expected no more pages after logout")
	}
}

func TestCompanionFacadeCartSensorsAndHealth(t *testing.T) {
	facade, _, _ := newFacade(t)
	ctx := context.Background()

	if err := facade.Health(ctx); err != nil {
		t.Fatalf("health: %v", err)
	}

	if _, err := facade.AddToCart(ctx, model.CartItem{ID: 1, Name: "Air sensor"}, 2); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if err := facade.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	cart, err := facade.Cart(ctx)
	if err != nil || cart.Count() != 2 {
		t.Fatalf("expected cart to survive logout, got %+v %v", cart, err)
	}

	if _, err := facade.AddSensor(ctx, model.SensorAddition{SensorID: "S-1"}); !errors.Is(err, domainErrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
	if _, err := facade.Login(ctx, model.Credentials{Username: "admin", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	msg, err := facade.RegisterSensor(ctx, model.SensorRegistration{SensorID: "S-2", SensorType: model.SensorTypeSoil, Address: "1 Main St"})
	if err != nil || msg != "Sensor registered" {
		t.Fatalf("unexpected register result %q %v", msg, err)
	}
}
