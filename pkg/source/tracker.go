package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// handshakeTimeout bounds the initial dial.
	handshakeTimeout = 10 * time.Second

	// readTimeout is how long a poll will wait for the tracker before the
	// connection is considered dead. The tracker sends status messages
	// even while unfocused, so a healthy connection never goes this quiet.
	readTimeout = 30 * time.Second

	// maxMessageSize is the maximum tracker message size allowed.
	maxMessageSize = 64 * 1024
)

// Tracker streams samples from a tracking-runtime sidecar over WebSocket.
// It implements Source.
type Tracker struct {
	url      string
	clientID string
	conn     *websocket.Conn
	logger   *slog.Logger
}

var _ Source = (*Tracker)(nil)

// NewTracker creates a tracker client for the given WebSocket URL.
func NewTracker(url string, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		url:      url,
		clientID: uuid.NewString(),
		logger:   logger.With("component", "tracker"),
	}
}

// Connect establishes the WebSocket connection to the tracker.
func (t *Tracker) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}

	header := http.Header{}
	header.Set("X-Client-ID", t.clientID)

	conn, _, err := dialer.DialContext(ctx, t.url, header)
	if err != nil {
		return fmt.Errorf("tracker connect failed: %w", err)
	}
	conn.SetReadLimit(maxMessageSize)
	t.conn = conn

	t.logger.Info("connected to tracker", "url", t.url, "client_id", t.clientID)
	return nil
}

// Poll reads tracker messages until it finds a sample or a status change.
// Pings are answered in-line; unknown message types are skipped.
func (t *Tracker) Poll(ctx context.Context) (Sample, Status, error) {
	if t.conn == nil {
		return Sample{}, StatusSessionEnding, fmt.Errorf("tracker is not connected")
	}

	for {
		if err := ctx.Err(); err != nil {
			return Sample{}, StatusSessionEnding, err
		}

		t.conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, raw, err := t.conn.ReadMessage()
		if err != nil {
			return Sample{}, StatusSessionEnding, fmt.Errorf("tracker read failed: %w", err)
		}

		msg, err := parseMessage(raw)
		if err != nil {
			t.logger.Warn("dropping malformed tracker message", "error", err)
			continue
		}

		switch msg.Type {
		case typeSample:
			var sample Sample
			if err := msg.parseData(&sample); err != nil {
				t.logger.Warn("dropping malformed sample", "error", err)
				continue
			}
			return sample, StatusOK, nil

		case typeStatus:
			var status statusData
			if err := msg.parseData(&status); err != nil {
				t.logger.Warn("dropping malformed status", "error", err)
				continue
			}
			switch status.State {
			case stateNotFocused:
				return Sample{}, StatusNotFocused, nil
			case stateSessionEnding:
				return Sample{}, StatusSessionEnding, nil
			default:
				t.logger.Warn("unknown tracker state", "state", status.State)
			}

		case typePing:
			pong, err := newMessage(typePong, nil)
			if err == nil {
				if data, err := pong.bytes(); err == nil {
					t.conn.WriteMessage(websocket.TextMessage, data)
				}
			}

		case typePong:
			// keepalive response, nothing to do
		}
	}
}

// Close closes the connection to the tracker.
func (t *Tracker) Close() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
