// Package monitor exposes the live session state over a websocket, so a UI
// or a debugging client can follow a recording without polling.
package monitor

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/murmurapp/murmur/pkg/session"
	"github.com/murmurapp/murmur/pkg/transcript"
)

// stateMsg is the wire form of a session.State snapshot.
type stateMsg struct {
	Phase      string               `json:"phase"`
	Name       string               `json:"name,omitempty"`
	DurationMs int64                `json:"durationMs"`
	Segments   []transcript.Segment `json:"segments"`
	Waveform   []float32            `json:"waveform"`
	Level      float32              `json:"level"`
	Error      string               `json:"error,omitempty"`
}

func encodeState(st session.State) stateMsg {
	msg := stateMsg{
		Phase:      st.Phase.String(),
		Name:       st.Name,
		DurationMs: st.Duration.Milliseconds(),
		Segments:   st.Segments,
		Waveform:   st.Waveform.Buckets[:],
		Level:      st.Waveform.Mean,
	}
	if st.Err != nil {
		msg.Error = st.Err.Error()
	}
	return msg
}

// Server streams session state snapshots to websocket clients.
type Server struct {
	orch     *session.Orchestrator
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a monitor for orch. A nil logger discards logs.
func NewServer(orch *session.Orchestrator, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		orch: orch,
		log:  log.With("component", "monitor"),
		upgrader: websocket.Upgrader{
			// Local debugging endpoint; no cross-origin policy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler serving the state feed at /v1/state.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/state", s.serveState)
	return mux
}

// ListenAndServe serves the state feed on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info("monitor listening", "addr", addr)
	return srv.ListenAndServe()
}

func (s *Server) serveState(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	states, cancel := s.orch.Watch()
	defer cancel()

	// The read side only detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case st := <-states:
			if err := conn.WriteJSON(encodeState(st)); err != nil {
				return
			}
		}
	}
}
