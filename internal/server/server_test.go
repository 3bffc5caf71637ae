package server

import (
	"context"
	"net/http"
	"testing"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"8080":  ":8080",
		":5683": ":5683",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q)=%q; want %q", in, got, want)
		}
	}
}

func TestNewHTTPServer_Timeouts(t *testing.T) {
	srv := newHTTPServer(":0", http.NotFoundHandler())
	if srv.ReadHeaderTimeout != readHeaderTimeout || srv.IdleTimeout != idleTimeout {
		t.Fatalf("unexpected timeouts: %+v", srv)
	}
	if srv.MaxHeaderBytes != maxHeaderBytes {
		t.Fatalf("MaxHeaderBytes=%d", srv.MaxHeaderBytes)
	}
}

func TestShutdownWithoutRun(t *testing.T) {
	var s Server
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
