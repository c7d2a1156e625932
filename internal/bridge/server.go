package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/studiowebux/deskkeys/internal/config"
	"github.com/studiowebux/deskkeys/internal/filter"
	"github.com/studiowebux/deskkeys/internal/shortcut"
)

const maxLogs = 1000

// ActionFunc names the action behind a fired shortcut
type ActionFunc func(s shortcut.Shortcut) string

// Server exposes a dispatcher to browser pages over a WebSocket
type Server struct {
	config     *Config
	dispatcher *shortcut.Dispatcher
	actionFor  ActionFunc
	upgrader   websocket.Upgrader
	httpServer *http.Server

	// Keydowns from every connection go through one at a time
	dispatchMu sync.Mutex

	logs      []DispatchLog
	logsMutex sync.RWMutex
	nextSeq   uint64
	notifyCh  chan struct{}
}

// NewServer creates a new bridge for d. actionFor may be nil.
func NewServer(cfg *Config, d *shortcut.Dispatcher, actionFor ActionFunc) *Server {
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultListenAddr
	}

	s := &Server{
		config:     cfg,
		dispatcher: d,
		actionFor:  actionFor,
		logs:       make([]DispatchLog, 0),
		notifyCh:   make(chan struct{}, 100),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the HTTP routes of the bridge
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/shortcuts", s.handleShortcuts)
	mux.HandleFunc("/help", s.handleHelp)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.config.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Bridge listening on %s", s.GetAddress())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("bridge server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// GetAddress returns the WebSocket URL of the bridge
func (s *Server) GetAddress() string {
	return fmt.Sprintf("ws://%s/ws", s.config.Addr)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return r.Host != "" && (origin == "http://"+r.Host || origin == "https://"+r.Host)
}

// handleWebSocket reads keydown frames and answers each with a result
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Bridge upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Bridge connection %s closed: %v", r.RemoteAddr, err)
			}
			return
		}

		var reply interface{}
		var frame KeydownFrame
		switch {
		case json.Unmarshal(data, &frame) != nil:
			reply = ErrorFrame{Type: FrameError, Error: "invalid JSON frame"}
		case frame.Type != FrameKeydown:
			reply = ErrorFrame{Type: FrameError, Error: fmt.Sprintf("unsupported frame type %q", frame.Type)}
		default:
			reply = s.Dispatch(r.RemoteAddr, frame)
		}

		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("Bridge write to %s failed: %v", r.RemoteAddr, err)
			return
		}
	}
}

// Dispatch runs one keydown through the dispatcher
func (s *Server) Dispatch(remote string, frame KeydownFrame) ResultFrame {
	start := time.Now()
	event := frame.Event()
	combo, _ := event.Combo()

	result := ResultFrame{Type: FrameResult, Combo: combo}

	fired, found := s.dispatch(combo, event, &result)

	result.PreventDefault = event.DefaultPrevented()
	result.StopPropagation = event.PropagationStopped()
	if result.Handled && found && s.actionFor != nil {
		result.Action = s.actionFor(fired)
	}

	if s.config.Logging {
		entry := DispatchLog{
			Timestamp: start,
			Remote:    remote,
			Combo:     combo,
			Handled:   result.Handled,
			Action:    result.Action,
			Duration:  time.Since(start),
		}
		if frame.Target != nil {
			entry.TargetTag = frame.Target.Tag
		}
		s.logDispatch(entry)
	}

	return result
}

// dispatch holds dispatchMu for one keydown. A panicking handler still
// releases it before the panic reaches net/http.
func (s *Server) dispatch(combo string, event *shortcut.KeyEvent, result *ResultFrame) (shortcut.Shortcut, bool) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	fired, found := s.dispatcher.Lookup(combo)
	result.Handled = s.dispatcher.HandleKeydown(event)
	return fired, found
}

// Listing returns the registered shortcuts sorted by combo
func (s *Server) Listing() []ListingRow {
	shortcuts := s.dispatcher.Shortcuts()
	rows := make([]ListingRow, 0, len(shortcuts))
	for _, sc := range shortcuts {
		row := ListingRow{
			Combo:          sc.Combo,
			Display:        shortcut.FormatCombo(sc.Combo),
			Description:    sc.Description,
			PreventDefault: sc.PreventDefault,
		}
		if s.actionFor != nil {
			row.Action = s.actionFor(sc)
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Server) handleShortcuts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := filter.ApplyTo(s.Listing(), "", r.URL.Query().Get("query"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows := shortcut.HelpRows(s.dispatcher.Shortcuts())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h5>%s</h5>\n%s\n", shortcut.HelpTitle, shortcut.RenderHTML(rows))
}

// logDispatch adds a keydown to the log and numbers it
func (s *Server) logDispatch(entry DispatchLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.nextSeq++
	entry.Seq = s.nextSeq
	s.logs = append(s.logs, entry)

	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}

	// Notify listeners (non-blocking)
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// NotifyChannel signals every logged keydown
func (s *Server) NotifyChannel() <-chan struct{} {
	return s.notifyCh
}

// GetLogs returns a copy of the dispatch log
func (s *Server) GetLogs() []DispatchLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	logs := make([]DispatchLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// ClearLogs clears the dispatch log
func (s *Server) ClearLogs() {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = make([]DispatchLog, 0)
}
