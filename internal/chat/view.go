package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/domain/model"
	"github.com/polkiloo/iowasensors/internal/metrics"
)

const writeTimeout = 10 * time.Second

// Dialer opens WebSocket connections. *websocket.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}

// TokenSource yields the auth token stored on the device.
type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
}

// Options configure the chat endpoint and the reconnect policy.
// ReconnectAttempts of zero disables reconnects.
type Options struct {
	Host              string
	Port              int
	ReconnectAttempts int
	ReconnectDelay    time.Duration
	ReconnectMaxDelay time.Duration
}

// View is a direct conversation bound to at most one socket at a time.
type View struct {
	id     string
	owner  context.Context
	cancel context.CancelFunc

	dialer  Dialer
	tokens  TokenSource
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	gen      uint64
	friendID int64
	mounted  bool
	conn     *websocket.Conn
	state    model.ConnState
	messages []model.ChatMessage
	input    string

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

// NewView creates an idle view bound to the lifetime of ctx.
func NewView(ctx context.Context, dialer Dialer, tokens TokenSource, opts Options, logger *slog.Logger, m *metrics.Metrics) *View {
	if opts.Port <= 0 {
		opts.Port = 8000
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = time.Second
	}
	if opts.ReconnectMaxDelay < opts.ReconnectDelay {
		opts.ReconnectMaxDelay = 30 * time.Second
	}
	owner, cancel := context.WithCancel(ctx)
	id := uuid.NewString()
	return &View{
		id:       id,
		owner:    owner,
		cancel:   cancel,
		dialer:   dialer,
		tokens:   tokens,
		opts:     opts,
		logger:   logger.With(slog.String("chat_view", id)),
		metrics:  m,
		state:    model.ConnIdle,
		messages: []model.ChatMessage{},
	}
}

// Mount opens the conversation with friendID. Mounting the conversation that
// is already connecting or open does nothing; mounting another one closes the
// current socket first. An identifier that is not an integer mounts nothing.
func (v *View) Mount(ctx context.Context, friendID string) error {
	if v.owner.Err() != nil {
		return domainErrors.ErrClosed
	}

	id, err := strconv.ParseInt(strings.TrimSpace(friendID), 10, 64)
	if err != nil {
		v.Unmount()
		return fmt.Errorf("friend id %q: %w", friendID, domainErrors.ErrInvalidInput)
	}

	v.mu.Lock()
	if v.mounted && v.friendID == id && (v.state == model.ConnConnecting || v.state == model.ConnOpen) {
		v.mu.Unlock()
		return nil
	}
	if !v.mounted || v.friendID != id {
		v.messages = []model.ChatMessage{}
	}
	v.detachLocked()
	v.gen++
	gen := v.gen
	v.friendID = id
	v.mounted = true
	v.state = model.ConnConnecting
	v.mu.Unlock()

	token, ok, err := v.tokens.Token(ctx)
	if err != nil || !ok {
		v.mu.Lock()
		if v.gen == gen {
			v.mounted = false
			v.state = model.ConnIdle
		}
		v.mu.Unlock()
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		return domainErrors.ErrNotAuthenticated
	}

	dialCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(v.owner, cancel)
	defer stop()

	v.connect(dialCtx, gen, id, token, 0)
	return nil
}

// Unmount closes the current socket, if any, and opens no new one. The
// conversation and the input buffer go with the screen.
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.messages = []model.ChatMessage{}
	v.input = ""
	if !v.mounted {
		return
	}
	v.detachLocked()
	v.gen++
	v.mounted = false
	v.state = model.ConnClosed
	v.logger.Info("chat unmounted", slog.Int64("friend_id", v.friendID))
}

// SetInput replaces the input buffer.
func (v *View) SetInput(text string) {
	v.mu.Lock()
	v.input = text
	v.mu.Unlock()
}

func (v *View) Input() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

// Send writes the input buffer as one frame and clears it. Blank input is not sent.
// Sent messages are not appended locally; the room broadcasts them back.
func (v *View) Send() error {
	v.mu.Lock()
	conn := v.conn
	input := v.input
	v.mu.Unlock()

	if conn == nil {
		return domainErrors.ErrNotMounted
	}
	if strings.TrimSpace(input) == "" {
		return nil
	}

	payload, err := json.Marshal(model.OutgoingChatMessage{Message: input})
	if err != nil {
		return err
	}

	v.writeMu.Lock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	err = conn.WriteMessage(websocket.TextMessage, payload)
	v.writeMu.Unlock()
	if err != nil {
		v.metrics.ChatFrame("out", "error")
		v.logger.Error("chat send failed", slog.String("error", err.Error()))
		return fmt.Errorf("send chat message: %w", err)
	}
	v.metrics.ChatFrame("out", "ok")

	v.mu.Lock()
	if v.input == input {
		v.input = ""
	}
	v.mu.Unlock()
	return nil
}

// Messages returns the received messages in arrival order.
func (v *View) Messages() []model.ChatMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.ChatMessage(nil), v.messages...)
}

func (v *View) State() model.ConnState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// FriendID returns the mounted conversation, if any.
func (v *View) FriendID() (int64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.friendID, v.mounted
}

// Close unmounts the view and waits for its goroutines to finish.
func (v *View) Close() {
	v.cancel()
	v.Unmount()
	v.wg.Wait()
}

func (v *View) endpoint(friendID int64, token string) string {
	u := url.URL{
		Scheme:   "ws",
		Host:     net.JoinHostPort(v.opts.Host, strconv.Itoa(v.opts.Port)),
		Path:     fmt.Sprintf("/ws/chat/%d/", friendID),
		RawQuery: "token=" + url.QueryEscape(token),
	}
	return u.String()
}

// connect dials and installs the socket for generation gen. Failures are
// logged and may schedule a reconnect.
func (v *View) connect(ctx context.Context, gen uint64, friendID int64, token string, attempt int) {
	conn, resp, err := v.dialer.DialContext(ctx, v.endpoint(friendID, token), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		v.metrics.ChatConnect("error")
		v.logger.Error("chat connect failed", slog.Int64("friend_id", friendID), slog.Int("attempt", attempt), slog.String("error", err.Error()))
		v.mu.Lock()
		current := v.gen == gen
		if current {
			v.state = model.ConnFailed
		}
		v.mu.Unlock()
		if current {
			v.scheduleReconnect(gen, friendID, token, attempt+1)
		}
		return
	}

	v.mu.Lock()
	if v.gen != gen || v.owner.Err() != nil {
		v.mu.Unlock()
		closeConn(conn)
		return
	}
	v.conn = conn
	v.state = model.ConnOpen
	v.wg.Add(1)
	v.mu.Unlock()

	v.metrics.ChatConnect("ok")
	v.logger.Info("chat connected", slog.Int64("friend_id", friendID))
	go v.readLoop(gen, conn, friendID, token)
}

func (v *View) readLoop(gen uint64, conn *websocket.Conn, friendID int64, token string) {
	defer v.wg.Done()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			v.disconnected(gen, friendID, token, err)
			return
		}

		var msg model.ChatMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			v.metrics.ChatFrame("in", "malformed")
			v.logger.Warn("skipping malformed chat frame", slog.String("error", err.Error()))
			continue
		}

		v.mu.Lock()
		if v.gen != gen {
			v.mu.Unlock()
			return
		}
		v.messages = append(v.messages, msg)
		v.mu.Unlock()
		v.metrics.ChatFrame("in", "ok")
	}
}

func (v *View) disconnected(gen uint64, friendID int64, token string, err error) {
	v.mu.Lock()
	if v.gen != gen {
		v.mu.Unlock()
		return
	}
	v.conn = nil
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		v.state = model.ConnClosed
		v.logger.Info("chat closed by server", slog.Int64("friend_id", friendID))
	} else {
		v.state = model.ConnFailed
		v.logger.Error("chat connection lost", slog.Int64("friend_id", friendID), slog.String("error", err.Error()))
	}
	v.mu.Unlock()

	v.scheduleReconnect(gen, friendID, token, 1)
}

func (v *View) scheduleReconnect(gen uint64, friendID int64, token string, attempt int) {
	if attempt > v.opts.ReconnectAttempts || v.owner.Err() != nil {
		return
	}
	delay := v.backoff(attempt)
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-v.owner.Done():
			return
		case <-timer.C:
		}

		v.mu.Lock()
		if v.gen != gen {
			v.mu.Unlock()
			return
		}
		v.state = model.ConnConnecting
		v.mu.Unlock()

		v.logger.Info("chat reconnecting", slog.Int64("friend_id", friendID), slog.Int("attempt", attempt))
		v.connect(v.owner, gen, friendID, token, attempt)
	}()
}

func (v *View) backoff(attempt int) time.Duration {
	delay := v.opts.ReconnectDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= v.opts.ReconnectMaxDelay {
			return v.opts.ReconnectMaxDelay
		}
	}
	return delay
}

// detachLocked closes the current socket. Must be called with mu held.
func (v *View) detachLocked() {
	if v.conn == nil {
		return
	}
	closeConn(v.conn)
	v.conn = nil
}

func closeConn(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	_ = conn.Close()
}
