package server

import (
	"context"
	"net/http"
)

// httpServer is the seam between the server lifecycle and net/http; tests
// substitute a stub that never binds a port.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

// netHTTPServer adapts *http.Server to the httpServer seam.
type netHTTPServer struct {
	srv *http.Server
}

func newNetHTTPServer(srv *http.Server) netHTTPServer {
	return netHTTPServer{srv: srv}
}

func (n netHTTPServer) ListenAndServe() error              { return n.srv.ListenAndServe() }
func (n netHTTPServer) Shutdown(ctx context.Context) error { return n.srv.Shutdown(ctx) }
func (n netHTTPServer) Addr() string                       { return n.srv.Addr }
func (n netHTTPServer) Handler() http.Handler              { return n.srv.Handler }
