package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/metrics"
)

// Transport is how the server talks to its client.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

const (
	defaultName     = "zenday"
	defaultVersion  = "dev"
	defaultAddr     = "127.0.0.1:8080"
	defaultEndpoint = "/mcp"
	metricsEndpoint = "/metrics"
	shutdownGrace   = 5 * time.Second

	instructions = "Read and update the daily journal, fetch the almanac and request personal readings."
)

// Runner serves the journal, almanac and analysis over MCP.
type Runner struct {
	Controller *app.Controller
	Name       string
	Version    string
	Log        *zap.Logger
	// Now decides what "today" means. Defaults to time.Now.
	Now func() time.Time

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// Do blocks until ctx is done (http) or stdin closes (stdio).
func (r Runner) Do(ctx context.Context) error {
	if r.Controller == nil {
		return errors.New("mcp: no controller")
	}
	r.fill()

	srv := r.newServer()
	switch r.Transport {
	case TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	}
	return fmt.Errorf("mcp: unknown transport %q", r.Transport)
}

func (r *Runner) fill() {
	if r.Name == "" {
		r.Name = defaultName
	}
	if r.Version == "" {
		r.Version = defaultVersion
	}
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.Log == nil {
		r.Log = zap.NewNop()
	}
	if r.Transport == "" {
		r.Transport = TransportHTTP
	}
	if r.HTTPListenAddr == "" {
		r.HTTPListenAddr = defaultAddr
	}
	switch p := r.HTTPEndpointPath; {
	case p == "":
		r.HTTPEndpointPath = defaultEndpoint
	case !strings.HasPrefix(p, "/"):
		r.HTTPEndpointPath = "/" + p
	}
}

func (r Runner) newServer() *server.MCPServer {
	srv := server.NewMCPServer(r.Name+" MCP", r.Version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	svc := NewService(r.Controller)
	registerResources(srv, svc, r.Now)
	registerTools(srv, svc, r.Now)
	return srv
}

// handler routes the MCP endpoint and the Prometheus scrape endpoint.
func (r Runner) handler(srv *server.MCPServer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(r.HTTPEndpointPath, server.NewStreamableHTTPServer(srv))
	mux.Handle(metricsEndpoint, metrics.Handler())
	return mux
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	tls := r.HTTPServerCert != "" || r.HTTPServerKey != ""
	if tls && (r.HTTPServerCert == "" || r.HTTPServerKey == "") {
		return errors.New("mcp: tls needs both a cert and a key")
	}

	ln, err := net.Listen("tcp", r.HTTPListenAddr)
	if err != nil {
		return fmt.Errorf("mcp: listen %s: %w", r.HTTPListenAddr, err)
	}
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}
	r.Log.Info("mcp server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("path", r.HTTPEndpointPath),
		zap.Bool("tls", tls))

	hs := &http.Server{Handler: r.handler(srv)}
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := hs.Shutdown(sctx); err != nil {
			r.Log.Warn("mcp shutdown", zap.Error(err))
		}
	}()

	if tls {
		err = hs.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = hs.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
