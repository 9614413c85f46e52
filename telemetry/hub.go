package telemetry

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/skykernel/logger"
	"github.com/lixenwraith/skykernel/parameter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub keeps the latest frame and fans it out to HTTP and websocket clients
// Publish is called from the frame loop, readers run on server goroutines
type Hub struct {
	mu     sync.RWMutex
	latest Frame
	has    bool

	interval time.Duration
	done     chan struct{}
	log      *logrus.Entry

	// sessionMu orders joins against Close so clients.Add never races Wait
	sessionMu sync.Mutex
	closed    bool
	clients   sync.WaitGroup
}

// NewHub creates a hub pushing to websocket clients every interval, 0 uses the default
func NewHub(interval time.Duration) *Hub {
	if interval <= 0 {
		interval = parameter.TelemetryPushInterval
	}
	return &Hub{
		interval: interval,
		done:     make(chan struct{}),
		log:      logger.With("telemetry"),
	}
}

// Close ends every websocket session and waits for them to finish
func (h *Hub) Close() {
	h.sessionMu.Lock()
	if !h.closed {
		h.closed = true
		close(h.done)
	}
	h.sessionMu.Unlock()
	h.clients.Wait()
}

// join registers a session, false once Close has begun
func (h *Hub) join() bool {
	h.sessionMu.Lock()
	defer h.sessionMu.Unlock()
	if h.closed {
		return false
	}
	h.clients.Add(1)
	return true
}

// Publish replaces the latest frame
func (h *Hub) Publish(f Frame) {
	h.mu.Lock()
	h.latest = f
	h.has = true
	h.mu.Unlock()
}

// Latest returns the most recent frame, false before the first Publish
func (h *Hub) Latest() (Frame, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.has
}

// Handler serves /frame and /ws
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frame", h.serveFrame)
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

func (h *Hub) serveFrame(w http.ResponseWriter, r *http.Request) {
	f, ok := h.Latest()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f); err != nil {
		h.log.WithError(err).Debug("frame response")
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade")
		return
	}
	defer conn.Close()
	if !h.join() {
		return
	}
	defer h.clients.Done()

	conn.SetReadLimit(parameter.TelemetryReadLimit)
	h.log.WithField("remote", r.RemoteAddr).Debug("telemetry client connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// inbound messages are ignored, a read error ends the session
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	tick := time.NewTicker(h.interval)
	defer tick.Stop()

	sent := uint64(0)
	first := true
	for {
		if f, ok := h.Latest(); ok && (first || f.Frame != sent) {
			if err := h.write(conn, f); err != nil {
				h.log.WithError(err).Debug("telemetry client dropped")
				return
			}
			sent, first = f.Frame, false
		}
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case <-tick.C:
		}
	}
}

func (h *Hub) write(conn *websocket.Conn, f Frame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(parameter.TelemetryWriteTimeout)); err != nil {
		return errors.Wrap(err, "set write deadline")
	}
	return errors.Wrap(conn.WriteJSON(f), "write frame")
}

// Serve listens on addr until ctx is cancelled
func (h *Hub) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", addr)
	}
	return h.serveListener(ctx, ln)
}

func (h *Hub) serveListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: h.Handler(), ReadHeaderTimeout: parameter.TelemetryWriteTimeout}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	h.log.WithField("addr", ln.Addr().String()).Info("telemetry listening")

	select {
	case err := <-errc:
		return errors.Wrap(err, "telemetry server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), parameter.TelemetryWriteTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	h.Close()
	if err != nil {
		return errors.Wrap(err, "telemetry shutdown")
	}
	return nil
}
