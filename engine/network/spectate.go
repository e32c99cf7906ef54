package network

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/creature-waves/engine/core"
)

// OutcomePath is where the spectator feed is served
const OutcomePath = "/outcome"

// Snapshot is the JSON form of a session outcome
type Snapshot struct {
	SessionID   string `json:"session_id"`
	Score       int    `json:"score"`
	Win         bool   `json:"win"`
	Wave        int    `json:"wave"`
	RemainingMs int64  `json:"remaining_ms"`
	Alive       int    `json:"alive"`
	Kills       int    `json:"kills"`
	State       string `json:"state"`
}

// SnapshotOf captures the outcome of s
func SnapshotOf(s *core.Session) Snapshot {
	o := s.Outcome
	return Snapshot{
		SessionID:   s.ID,
		Score:       o.Score,
		Win:         o.Win,
		Wave:        o.Wave,
		RemainingMs: o.WaveRemaining.Milliseconds(),
		Alive:       o.Alive,
		Kills:       o.Kills,
		State:       o.Phase.String(),
	}
}

type subscriber struct {
	ch chan Snapshot
}

// Hub fans outcome snapshots out to websocket spectators. Slow spectators
// miss intermediate snapshots but always get the latest one next.
type Hub struct {
	mu      sync.Mutex
	subs    map[*subscriber]struct{}
	last    Snapshot
	hasLast bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Publish sends s to every spectator unless it equals the previous snapshot
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hasLast && s == h.last {
		return
	}
	h.last, h.hasLast = s, true
	for sub := range h.subs {
		offer(sub.ch, s)
	}
}

// offer replaces a pending snapshot rather than blocking the game loop
func offer(ch chan Snapshot, s Snapshot) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}

func (h *Hub) subscribe() (*subscriber, func()) {
	sub := &subscriber{ch: make(chan Snapshot, 1)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	if h.hasLast {
		sub.ch <- h.last
	}
	h.mu.Unlock()
	return sub, func() {
		h.mu.Lock()
		delete(h.subs, sub)
		h.mu.Unlock()
	}
}

// Spectators returns the number of connected spectators
func (h *Hub) Spectators() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to accept spectator", "err", err)
		return
	}
	defer conn.CloseNow()

	sub, unsubscribe := h.subscribe()
	defer unsubscribe()
	slog.DebugContext(r.Context(), "spectator joined", "remote", r.RemoteAddr)

	// spectators never send anything; CloseRead cancels ctx when they leave
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-sub.ch:
			wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(wctx, conn, s)
			cancel()
			if err != nil {
				slog.DebugContext(ctx, "spectator dropped", "err", err)
				return
			}
		}
	}
}

// Serve runs the spectator feed on addr until ctx is cancelled
func Serve(ctx context.Context, addr string, hub *Hub) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return ServeListener(ctx, ln, hub)
}

// ServeListener is Serve on an existing listener
func ServeListener(ctx context.Context, ln net.Listener, hub *Hub) error {
	mux := http.NewServeMux()
	mux.Handle(OutcomePath, hub)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		slog.Info("spectator feed listening", "addr", ln.Addr().String(), "path", OutcomePath)
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return eg.Wait()
}
