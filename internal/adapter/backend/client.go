package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/domain/model"
	"github.com/polkiloo/iowasensors/internal/metrics"
)

// StatusError is returned for every non-2xx answer of the store backend.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Code, e.Message())
}

func (e *StatusError) Unwrap() error {
	return domainErrors.ErrUnexpectedStatus
}

// Message extracts a readable message from the response body. Field errors of
// the form {"errors": {"field": ["msg"]}} are flattened one per line.
func (e *StatusError) Message() string {
	var payload struct {
		Errors         map[string]json.RawMessage `json:"errors"`
		Error          string                     `json:"error"`
		Detail         string                     `json:"detail"`
		NonFieldErrors []string                   `json:"non_field_errors"`
	}
	if err := json.Unmarshal(e.Body, &payload); err == nil {
		if len(payload.Errors) > 0 {
			fields := make([]string, 0, len(payload.Errors))
			for field := range payload.Errors {
				fields = append(fields, field)
			}
			sort.Strings(fields)

			var lines []string
			for _, field := range fields {
				lines = append(lines, fieldMessages(payload.Errors[field])...)
			}
			if len(lines) > 0 {
				return strings.Join(lines, "\n")
			}
		}
		switch {
		case payload.Error != "":
			return payload.Error
		case payload.Detail != "":
			return payload.Detail
		case len(payload.NonFieldErrors) > 0:
			return strings.Join(payload.NonFieldErrors, "\n")
		}
	}
	if text := strings.TrimSpace(string(e.Body)); text != "" && len(text) <= 200 {
		return text
	}
	return http.StatusText(e.Code)
}

func fieldMessages(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}
	return nil
}

// Client exposes the store backend operations used by the companion.
type Client interface {
	AdminOrders(ctx context.Context, token string, page int) (*model.OrderPage, error)
	UpdateOrder(ctx context.Context, token string, orderID int64, update model.OrderStatusUpdate) (*model.Order, error)
	ConfirmCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutConfirmation, error)
	Register(ctx context.Context, reg model.Registration) error
	ObtainToken(ctx context.Context, creds model.Credentials) (string, error)
	Me(ctx context.Context, token string) (json.RawMessage, error)
	ResetPassword(ctx context.Context, req model.PasswordReset) error
	Products(ctx context.Context) ([]model.Product, error)
	AddSensor(ctx context.Context, token string, req model.SensorAddition) (*model.SensorResult, error)
	RegisterSensor(ctx context.Context, token string, req model.SensorRegistration) (*model.SensorResult, error)
}

// HTTPClient implements Client via the backend REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a backend client. Non-positive timeouts fall back to 10s.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("backend url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		metrics: m,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// AdminOrders fetches one page of the admin order listing.
func (c *HTTPClient) AdminOrders(ctx context.Context, token string, page int) (*model.OrderPage, error) {
	var out model.OrderPage
	query := url.Values{"page": []string{strconv.Itoa(page)}}
	if err := c.do(ctx, call{name: "admin_orders", method: http.MethodGet, path: "/api/store/orders/admin/", query: query, token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrder changes the status of an order and returns the updated record.
func (c *HTTPClient) UpdateOrder(ctx context.Context, token string, orderID int64, update model.OrderStatusUpdate) (*model.Order, error) {
	var out model.Order
	p := fmt.Sprintf("/api/store/orders/update/%d/", orderID)
	if err := c.do(ctx, call{name: "update_order", method: http.MethodPost, path: p, token: token, body: update}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmCheckoutSession asks the backend to verify a completed checkout.
func (c *HTTPClient) ConfirmCheckoutSession(ctx context.Context, sessionID string) (*model.CheckoutConfirmation, error) {
	var out model.CheckoutConfirmation
	query := url.Values{"session_id": []string{sessionID}}
	if err := c.do(ctx, call{name: "confirm_checkout", method: http.MethodGet, path: "/api/payment/confirm-checkout-session/", query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account.
func (c *HTTPClient) Register(ctx context.Context, reg model.Registration) error {
	return c.do(ctx, call{name: "register", method: http.MethodPost, path: "/api/users/register/", body: reg}, nil)
}

// ObtainToken exchanges credentials for an auth token.
func (c *HTTPClient) ObtainToken(ctx context.Context, creds model.Credentials) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, call{name: "obtain_token", method: http.MethodPost, path: "/api/users/api-token-auth/", body: creds}, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("obtain token: empty token in response")
	}
	return out.Token, nil
}

// Me returns the raw profile of the token owner.
func (c *HTTPClient) Me(ctx context.Context, token string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, call{name: "me", method: http.MethodGet, path: "/api/users/me/", token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResetPassword completes a password reset with the emailed token.
func (c *HTTPClient) ResetPassword(ctx context.Context, req model.PasswordReset) error {
	return c.do(ctx, call{name: "reset_password", method: http.MethodPost, path: "/api/users/auth/reset-password/", body: req}, nil)
}

// Products lists the store catalog.
func (c *HTTPClient) Products(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.do(ctx, call{name: "products", method: http.MethodGet, path: "/api/store/products/"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddSensor links an existing sensor to the token owner.
func (c *HTTPClient) AddSensor(ctx context.Context, token string, req model.SensorAddition) (*model.SensorResult, error) {
	var out model.SensorResult
	if err := c.do(ctx, call{name: "add_sensor", method: http.MethodPost, path: "/api/sensors/add/", token: token, body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterSensor registers a new sensor for the token owner.
func (c *HTTPClient) RegisterSensor(ctx context.Context, token string, req model.SensorRegistration) (*model.SensorResult, error) {
	var out model.SensorResult
	if err := c.do(ctx, call{name: "register_sensor", method: http.MethodPost, path: "/api/sensors/register/", token: token, body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type call struct {
	name   string
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

func (c *HTTPClient) do(ctx context.Context, req call, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + req.path
	if req.query != nil {
		endpoint.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", req.name, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("%s: %w", req.name, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Token "+req.token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveBackend(req.name, 0, time.Since(started))
		return fmt.Errorf("%s: %w", req.name, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackend(req.name, resp.StatusCode, time.Since(started))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", req.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode, Body: data}
		c.logger.Error("backend request failed",
			slog.String("endpoint", req.name),
			slog.Int("status", resp.StatusCode),
			slog.String("body", statusErr.Message()),
		)
		return statusErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode body: %w", req.name, err)
	}
	return nil
}
