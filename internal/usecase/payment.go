package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/polkiloo/iowasensors/internal/domain/model"
)

// PaymentMethodRoute is where the client goes once a checkout is confirmed.
const PaymentMethodRoute = "/payment-method"

type CheckoutBackend interface {
	ConfirmCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutConfirmation, error)
}

// PaymentUseCase confirms hosted checkout sessions.
type PaymentUseCase struct {
	backend CheckoutBackend
	logger  *slog.Logger
}

func NewPaymentUseCase(backend CheckoutBackend, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{backend: backend, logger: logger}
}

// ConfirmCheckout verifies a session and returns the redirect target.
func (u *PaymentUseCase) ConfirmCheckout(ctx context.Context, sessionID string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", invalid("session_id", "session id is required")
	}

	res, err := u.backend.ConfirmCheckoutSession(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("confirm checkout: %w", err)
	}
	u.logger.Info("payment confirmed", slog.String("session_id", sessionID), slog.String("result", res.Result))
	return PaymentMethodRoute, nil
}
