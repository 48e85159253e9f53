package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress   string
	BackendURL   string
	ChatHost     string
	ChatPort     int
	DatabaseURI  string
	DeviceSecret string
	LogLevel     slog.Level

	HTTPTimeout          time.Duration
	OrderRefreshInterval time.Duration
	OrderMaxPages        int
	ShutdownTimeout      time.Duration

	ChatReconnectAttempts int
	ChatReconnectDelay    time.Duration
	ChatReconnectMaxDelay time.Duration
}

const (
	defaultRunAddress            = "127.0.0.1:8081"
	defaultChatPort              = 8000
	defaultDeviceSecret          = "change-me-on-every-device"
	defaultHTTPTimeout           = 10 * time.Second
	defaultOrderRefreshInterval  = 30 * time.Second
	defaultOrderMaxPages         = 5
	defaultShutdownTimeout       = 10 * time.Second
	defaultChatReconnectDelay    = time.Second
	defaultChatReconnectMaxDelay = 30 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		BackendURL:            getString(lookup, "BACKEND_URL", ""),
		ChatHost:              getString(lookup, "CHAT_HOST", ""),
		ChatPort:              getInt(lookup, "CHAT_PORT", defaultChatPort),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		DeviceSecret:          getString(lookup, "DEVICE_SECRET", defaultDeviceSecret),
		HTTPTimeout:           getDuration(lookup, "HTTP_TIMEOUT", defaultHTTPTimeout),
		OrderRefreshInterval:  getDuration(lookup, "ORDER_REFRESH_INTERVAL", defaultOrderRefreshInterval),
		OrderMaxPages:         getInt(lookup, "ORDER_MAX_PAGES", defaultOrderMaxPages),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		ChatReconnectAttempts: getInt(lookup, "CHAT_RECONNECT_ATTEMPTS", 0),
		ChatReconnectDelay:    getDuration(lookup, "CHAT_RECONNECT_DELAY", defaultChatReconnectDelay),
		ChatReconnectMaxDelay: getDuration(lookup, "CHAT_RECONNECT_MAX_DELAY", defaultChatReconnectMaxDelay),
	}

	fs := flag.NewFlagSet("iowasensors", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		refreshStr  = cfg.OrderRefreshInterval.String()
		shutdownStr = cfg.ShutdownTimeout.String()
		timeoutStr  = cfg.HTTPTimeout.String()
		logLevelStr = getString(lookup, "LOG_LEVEL", "info")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "Console HTTP listen address")
	fs.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "Store backend base URL")
	fs.StringVar(&cfg.ChatHost, "chat-host", cfg.ChatHost, "Chat WebSocket host")
	fs.IntVar(&cfg.ChatPort, "chat-port", cfg.ChatPort, "Chat WebSocket port")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN for device storage")
	fs.StringVar(&timeoutStr, "http-timeout", timeoutStr, "Backend request timeout")
	fs.StringVar(&refreshStr, "refresh-interval", refreshStr, "Interval between admin order refreshes")
	fs.IntVar(&cfg.OrderMaxPages, "max-pages", cfg.OrderMaxPages, "Maximum order pages loaded per refresh")
	fs.StringVar(&shutdownStr, "shutdown-timeout", shutdownStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.ChatReconnectAttempts, "chat-reconnect", cfg.ChatReconnectAttempts, "Chat reconnect attempts, 0 disables reconnects")
	fs.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.HTTPTimeout, err = time.ParseDuration(timeoutStr); err != nil {
		return nil, fmt.Errorf("invalid http timeout: %w", err)
	}

	if cfg.OrderRefreshInterval, err = time.ParseDuration(refreshStr); err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if secretFile, ok := lookup("DEVICE_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read device secret file: %w", err)
		}
		cfg.DeviceSecret = strings.TrimSpace(string(content))
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}

	if cfg.OrderRefreshInterval <= 0 {
		cfg.OrderRefreshInterval = defaultOrderRefreshInterval
	}

	if cfg.OrderMaxPages <= 0 {
		cfg.OrderMaxPages = defaultOrderMaxPages
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.ChatPort <= 0 {
		cfg.ChatPort = defaultChatPort
	}

	if cfg.ChatReconnectAttempts < 0 {
		cfg.ChatReconnectAttempts = 0
	}

	if cfg.ChatReconnectDelay <= 0 {
		cfg.ChatReconnectDelay = defaultChatReconnectDelay
	}

	if cfg.ChatReconnectMaxDelay < cfg.ChatReconnectDelay {
		cfg.ChatReconnectMaxDelay = defaultChatReconnectMaxDelay
	}

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("backend URL must be provided")
	}

	backend, err := url.Parse(cfg.BackendURL)
	if err != nil || !backend.IsAbs() {
		return nil, fmt.Errorf("backend URL must be absolute: %q", cfg.BackendURL)
	}

	if cfg.ChatHost == "" {
		cfg.ChatHost = backend.Hostname()
	}

	if cfg.DeviceSecret == "" {
		return nil, fmt.Errorf("device secret must not be empty")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
