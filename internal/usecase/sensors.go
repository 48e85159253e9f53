package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/domain/model"
)

type SensorsBackend interface {
	AddSensor(ctx context.Context, token string, req model.SensorAddition) (*model.SensorResult, error)
	RegisterSensor(ctx context.Context, token string, req model.SensorRegistration) (*model.SensorResult, error)
}

// SensorUseCase links existing sensors to the account and registers new ones.
type SensorUseCase struct {
	backend SensorsBackend
	tokens  TokenSource
	logger  *slog.Logger
}

func NewSensorUseCase(backend SensorsBackend, tokens TokenSource, logger *slog.Logger) *SensorUseCase {
	return &SensorUseCase{backend: backend, tokens: tokens, logger: logger}
}

// Add links a sensor by id and returns the backend message.
func (u *SensorUseCase) Add(ctx context.Context, req model.SensorAddition) (string, error) {
	req.SensorID = strings.TrimSpace(req.SensorID)
	req.Nickname = strings.TrimSpace(req.Nickname)
	if err := validateForm(req); err != nil {
		return "", err
	}
	token, err := u.token(ctx)
	if err != nil {
		return "", err
	}

	res, err := u.backend.AddSensor(ctx, token, req)
	if err != nil {
		return "", fmt.Errorf("add sensor: %w", err)
	}
	u.logger.Info("sensor added", slog.String("sensor_id", req.SensorID))
	return res.Message, nil
}

// Register registers a new sensor and returns the backend message.
func (u *SensorUseCase) Register(ctx context.Context, req model.SensorRegistration) (string, error) {
	req.SensorID = strings.TrimSpace(req.SensorID)
	req.Nickname = strings.TrimSpace(req.Nickname)
	req.Address = strings.TrimSpace(req.Address)
	if err := validateForm(req); err != nil {
		return "", err
	}
	token, err := u.token(ctx)
	if err != nil {
		return "", err
	}

	res, err := u.backend.RegisterSensor(ctx, token, req)
	if err != nil {
		return "", fmt.Errorf("register sensor: %w", err)
	}
	u.logger.Info("sensor registered", slog.String("sensor_id", req.SensorID), slog.String("type", string(req.SensorType)))
	return res.Message, nil
}

func (u *SensorUseCase) token(ctx context.Context) (string, error) {
	token, ok, err := u.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return "", domainErrors.ErrNotAuthenticated
	}
	return token, nil
}
