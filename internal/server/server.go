// Package server is the remote presentation shell: one shared playback
// controller driven over WebSocket, with the current frame served as PNG.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/san-kum/deepshow/internal/canvas"
	"github.com/san-kum/deepshow/internal/clock"
	"github.com/san-kum/deepshow/internal/playback"
	"github.com/san-kum/deepshow/internal/render"
	"github.com/san-kum/deepshow/internal/scene"
	"github.com/san-kum/deepshow/internal/scenes"
)

//go:embed static
var static embed.FS

const (
	DefaultFrameWidth  = 800
	DefaultFrameHeight = 600
	maxFrameSide       = 4096
	writeWait          = 200 * time.Millisecond
)

var ErrUnknownCommand = errors.New("server: unknown command")

type Options struct {
	Catalog      *scene.Catalog
	Registry     *scenes.Registry
	TickInterval time.Duration
	Transition   time.Duration
	Autoplay     bool
	// Clock drives both playback and animation. Nil means the system clock.
	Clock clock.Source
}

// Command is a client request. Scene is used by select, T by seek.
type Command struct {
	Cmd   string  `json:"cmd"`
	Scene int     `json:"scene,omitempty"`
	T     float64 `json:"t,omitempty"`
}

// Message is what the server sends to clients.
type Message struct {
	Type  string             `json:"type"`
	State *playback.Snapshot `json:"state,omitempty"`
	Error string             `json:"error,omitempty"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

type Server struct {
	player   *playback.Safe
	clock    clock.Source
	interval time.Duration

	// mu guards the dispatcher, which is not safe for concurrent use.
	mu         sync.Mutex
	dispatcher *render.Dispatcher
	fonts      *canvas.Fonts

	cmu     sync.RWMutex
	clients map[*client]bool

	upgrader  websocket.Upgrader
	startTime time.Time
}

func New(opts Options) (*Server, error) {
	if opts.Catalog == nil {
		opts.Catalog = scene.Default()
	}
	if opts.Registry == nil {
		opts.Registry = scenes.Default()
	}
	if err := opts.Registry.Validate(opts.Catalog); err != nil {
		return nil, err
	}
	ctl, err := playback.New(opts.Catalog)
	if err != nil {
		return nil, err
	}
	if opts.Autoplay {
		ctl.Play()
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewSystem()
	}
	fonts, err := canvas.LoadFonts()
	if err != nil {
		return nil, err
	}

	return &Server{
		player:     playback.NewSafe(ctl),
		clock:      opts.Clock,
		interval:   opts.TickInterval,
		dispatcher: render.New(opts.Registry, render.WithTransition(opts.Transition)),
		fonts:      fonts,
		clients:    map[*client]bool{},
		upgrader:   websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		startTime:  time.Now(),
	}, nil
}

func (s *Server) Player() *playback.Safe { return s.player }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.HandleFunc("/state", s.HandleState)
	mux.HandleFunc("/frame.png", s.HandleFrame)
	mux.HandleFunc("/health", s.HandleHealth)

	root, _ := fs.Sub(static, "static")
	mux.Handle("/", http.FileServer(http.FS(root)))
	return mux
}

// Serve runs the playback timer and the HTTP server on ln until ctx is
// done, then shuts both down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timerDone := make(chan error, 1)
	go func() {
		timerDone <- playback.RunTimer(ctx, s.player, s.clock, s.interval, func(playback.State) { s.broadcast() })
	}()

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("HTTP server starting")
		serveErr <- srv.Serve(ln)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
		cancel()
	}

	log.Info().Msg("shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if serr := srv.Shutdown(shutdownCtx); serr != nil && err == nil {
		err = serr
	}
	s.closeClients()
	<-timerDone
	s.fonts.Close()

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Apply runs cmd against the shared controller.
func (s *Server) Apply(cmd Command) error {
	switch cmd.Cmd {
	case "play":
		s.player.Play()
	case "pause":
		s.player.Pause()
	case "toggle":
		s.player.Toggle()
	case "next":
		s.player.Next()
	case "prev":
		s.player.Prev()
	case "select":
		return s.player.Select(cmd.Scene)
	case "seek":
		s.player.Seek(cmd.T)
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Cmd)
	}
	return nil
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}

	s.cmu.Lock()
	s.clients[c] = true
	s.cmu.Unlock()
	log.Debug().Str("remote", r.RemoteAddr).Msg("client connected")

	defer func() {
		s.cmu.Lock()
		delete(s.clients, c)
		s.cmu.Unlock()
		conn.Close()
	}()

	if !s.reply(c, s.stateMessage()) {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			if !s.reply(c, errorMessage(fmt.Errorf("bad command: %w", err))) {
				return
			}
			continue
		}
		if err := s.Apply(cmd); err != nil {
			log.Warn().Err(err).Str("cmd", cmd.Cmd).Msg("command rejected")
			if !s.reply(c, errorMessage(err)) {
				return
			}
			continue
		}
		st := s.player.State()
		log.Debug().Str("cmd", cmd.Cmd).Int("scene", st.SceneID).Float64("elapsed", st.Elapsed).Msg("command applied")
		s.broadcast()
	}
}

// reply writes b to one client. A failed write means the connection is
// gone, and the caller drops it.
func (s *Server) reply(c *client, b []byte) bool {
	if err := c.send(b); err != nil {
		log.Debug().Err(err).Msg("write reply")
		return false
	}
	return true
}

func (s *Server) HandleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.player.Snapshot())
}

// HandleFrame paints the current frame. Query parameters w and h set the
// size in pixels.
func (s *Server) HandleFrame(w http.ResponseWriter, r *http.Request) {
	width, err := sizeParam(r, "w", DefaultFrameWidth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := sizeParam(r, "h", DefaultFrameHeight)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	raster := canvas.NewRaster(width, height, s.fonts)
	defer raster.Close()

	s.mu.Lock()
	err = s.dispatcher.Frame(raster, float64(width), float64(height), s.player.State().SceneID, s.clock.Now())
	s.mu.Unlock()
	if err == nil {
		err = raster.Err()
	}
	if err != nil {
		log.Error().Err(err).Msg("paint frame")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := raster.EncodePNG(w); err != nil {
		log.Debug().Err(err).Msg("write frame")
	}
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.cmu.RLock()
	n := len(s.clients)
	s.cmu.RUnlock()
	resp := map[string]any{
		"uptime_s": time.Since(s.startTime).Seconds(),
		"clients":  n,
		"scenes":   s.player.Catalog().Len(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) broadcast() {
	b := s.stateMessage()
	s.cmu.RLock()
	defer s.cmu.RUnlock()
	for c := range s.clients {
		if err := c.send(b); err != nil {
			log.Debug().Err(err).Msg("write state")
		}
	}
}

func (s *Server) closeClients() {
	s.cmu.Lock()
	defer s.cmu.Unlock()
	for c := range s.clients {
		c.mu.Lock()
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		c.mu.Unlock()
		c.conn.Close()
	}
}

func (s *Server) stateMessage() []byte {
	snap := s.player.Snapshot()
	b, _ := json.Marshal(Message{Type: "state", State: &snap})
	return b
}

func errorMessage(err error) []byte {
	b, _ := json.Marshal(Message{Type: "error", Error: err.Error()})
	return b
}

func sizeParam(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > maxFrameSide {
		return 0, fmt.Errorf("%s must be an integer in 1..%d", name, maxFrameSide)
	}
	return n, nil
}
