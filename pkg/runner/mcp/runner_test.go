package mcp

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/store/storetest"
)

func TestRunnerServesMetricsAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrs := make(chan net.Addr, 1)
	r := Runner{
		Controller:      app.New(storetest.New(), routed{}, nil),
		Transport:       TransportHTTP,
		HTTPListenAddr:  "127.0.0.1:0",
		OnHTTPListening: func(a net.Addr) { addrs <- a },
	}
	done := make(chan error, 1)
	go func() { done <- r.Do(ctx) }()

	var addr net.Addr
	select {
	case addr = <-addrs:
	case err := <-done:
		t.Fatalf("Do returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server never listened")
	}

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "zenday_") {
		t.Fatalf("unexpected /metrics response %d:\n%s", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Do after cancel: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestRunnerRejectsBadConfig(t *testing.T) {
	ctrl := app.New(storetest.New(), routed{}, nil)
	tests := map[string]Runner{
		"no controller":     {},
		"unknown transport": {Controller: ctrl, Transport: "pigeon"},
		"cert without key":  {Controller: ctrl, Transport: TransportHTTP, HTTPListenAddr: "127.0.0.1:0", HTTPServerCert: "cert.pem"},
	}
	for name, r := range tests {
		if err := r.Do(context.Background()); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestRunnerDefaults(t *testing.T) {
	r := Runner{HTTPEndpointPath: "rpc"}
	r.fill()
	if r.Name != defaultName || r.Transport != TransportHTTP || r.HTTPListenAddr != defaultAddr {
		t.Fatalf("unexpected defaults %+v", r)
	}
	if r.HTTPEndpointPath != "/rpc" {
		t.Fatalf("endpoint = %q, want /rpc", r.HTTPEndpointPath)
	}
}
