package server

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/shravanasati/preview/pool"
	"github.com/shravanasati/preview/request"
	"github.com/shravanasati/preview/response"
)

// Server accepts connections and hands each one to a fixed pool of workers.
// Every connection carries exactly one request and one response.
type Server struct {
	cfg      Config
	handler  Handler
	pool     *pool.Pool
	listener net.Listener
	url      string
	closed   atomic.Bool
}

// New validates bindAddress and returns a server for rootDirectory.
// Nothing is bound until Run or Listen is called.
func New(bindAddress, rootDirectory string, colorOutput bool) (*Server, error) {
	return NewWithConfig(Config{
		BindAddress:   bindAddress,
		RootDirectory: rootDirectory,
		ColorOutput:   colorOutput,
	})
}

// NewWithConfig is like New with every setting exposed.
func NewWithConfig(cfg Config) (*Server, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:     cfg,
		handler: NewStaticHandler(cfg.RootDirectory),
		pool:    pool.New(cfg.Workers),
	}, nil
}

// Config returns the server configuration with defaults applied.
func (s *Server) Config() Config {
	return s.cfg
}

// Use wraps the request handler with the given middlewares. The first one is outermost.
// It must be called before Serve.
func (s *Server) Use(middlewares ...Middleware) {
	for i := len(middlewares) - 1; i >= 0; i-- {
		s.handler = middlewares[i](s.handler)
	}
}

// Run binds the listening socket and serves until the process exits.
// It only returns on a bind failure or after Close.
func (s *Server) Run() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Listen binds the listening socket and prints the URL it serves on.
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.cfg.BindAddress)
	if err != nil {
		return &ServerStartError{Address: s.cfg.BindAddress, Err: err}
	}
	s.listener = listener
	s.url = s.resolvedURL()

	fmt.Fprintf(s.cfg.Stdout, "Server running on %s\n\n", s.bold(s.url))
	return nil
}

// resolvedURL names the configured host with the port actually bound,
// which differs from the configured one when port 0 was requested.
func (s *Server) resolvedURL() string {
	host, port, _ := net.SplitHostPort(s.cfg.BindAddress)
	if _, bound, err := net.SplitHostPort(s.listener.Addr().String()); err == nil {
		port = bound
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

func (s *Server) bold(text string) string {
	if !s.cfg.ColorOutput {
		return text
	}
	renderer := lipgloss.NewRenderer(s.cfg.Stdout)
	renderer.SetColorProfile(termenv.ANSI)
	return renderer.NewStyle().Bold(true).Render(text)
}

// URL returns the address being served, e.g. "http://127.0.0.1:8000/".
// It is empty before Listen.
func (s *Server) URL() string {
	return s.url
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve runs the accept loop. When every worker is busy the loop waits for one
// to free up before accepting the next connection.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server: Serve called before Listen")
	}

	var tempDelay time.Duration
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			// accept failures such as EMFILE are retried with backoff, like net/http does
			if tempDelay == 0 {
				tempDelay = 5 * time.Millisecond
			} else {
				tempDelay = min(2*tempDelay, time.Second)
			}
			s.cfg.ErrorLog.Printf("unable to accept connection: %v; retrying in %v", err, tempDelay)
			time.Sleep(tempDelay)
			continue
		}
		tempDelay = 0

		s.pool.Submit(func() {
			s.handle(conn)
		})
	}
}

// Close stops the accept loop. In-flight requests are not waited for.
func (s *Server) Close() error {
	s.closed.Store(true)
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) handle(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			s.reportError(err)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			s.cfg.ErrorLog.Println("recovered from panic:", r)
			s.respond(conn, response.Empty(response.StatusInternalServerError))
		}
	}()

	req, err := request.FromReader(conn)
	if err != nil {
		if errors.Is(err, request.ErrIncompleteRequest) || response.IsDisconnect(err) {
			// the peer went away before finishing its request
			return
		}
		s.respond(conn, response.Empty(response.StatusBadRequest))
		return
	}

	resp, err := s.handler(req)
	if err != nil {
		s.reportError(err)
		return
	}
	s.respond(conn, resp)
}

func (s *Server) respond(conn net.Conn, resp *response.Response) {
	if err := resp.Write(conn); err != nil {
		s.reportError(err)
	}
}

// reportError drops disconnects silently and logs everything else.
func (s *Server) reportError(err error) {
	if response.IsDisconnect(err) {
		return
	}
	s.cfg.ErrorLog.Printf("    HTTP server threw error: %v", err)
}
