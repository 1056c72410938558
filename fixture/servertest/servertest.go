// Package servertest provides HTTP application test harnesses in two
// flavors: an in-process variant wrapping the handler with a test server and
// ready-made client, and a real-listener variant for code that must talk to
// an actual network endpoint.
package servertest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful shutdown of the real-listener server.
const shutdownTimeout = 5 * time.Second

// StartWithClient wraps the handler in an in-process test server and returns
// it together with a client configured for it. Both are torn down when the
// test finishes.
func StartWithClient(tb testing.TB, handler http.Handler) (*httptest.Server, *http.Client) {
	tb.Helper()
	srv := httptest.NewServer(handler)
	tb.Cleanup(srv.Close)
	return srv, srv.Client()
}

// Server is a real HTTP server bound to an ephemeral localhost port, for
// tests that need an actual listening endpoint rather than an in-process
// round trip.
type Server struct {
	base string
	srv  *http.Server
	g    *errgroup.Group
}

// Start binds a listener on 127.0.0.1 and begins serving the handler. The
// listener is open when Start returns, so requests cannot race startup.
func Start(handler http.Handler) (*Server, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("servertest: listen: %w", err)
	}
	s := &Server{
		base: "http://" + ln.Addr().String(),
		srv:  &http.Server{Handler: handler},
		g:    &errgroup.Group{},
	}
	s.g.Go(func() error {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	return s, nil
}

// StartTB is like Start but fails the test on error and closes the server
// when the test finishes.
func StartTB(tb testing.TB, handler http.Handler) *Server {
	tb.Helper()
	s, err := Start(handler)
	if err != nil {
		tb.Fatalf("servertest: %v", err)
	}
	tb.Cleanup(func() {
		if err := s.Close(); err != nil {
			tb.Errorf("servertest: close: %v", err)
		}
	})
	return s
}

// BaseURL returns the server's root URL, e.g. "http://127.0.0.1:43215".
func (s *Server) BaseURL() string {
	return s.base
}

// URL joins a path onto the base URL.
func (s *Server) URL(path string) string {
	return s.base + path
}

// Close gracefully shuts the server down, waiting for in-flight requests up
// to a bounded timeout, and returns any serve or shutdown error.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := s.srv.Shutdown(ctx)
	if err := s.g.Wait(); err != nil {
		return err
	}
	return shutdownErr
}
