package ruwlertest

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/ruwler/ruwler-go/component"
)

func TestServer_UnprogrammedRouteIs404(t *testing.T) {
	srv := Start(t)

	resp, err := http.Get(srv.URL() + "/missing?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"description":"not found"`) {
		t.Errorf("unexpected body %s", body)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("expected generated X-Request-Id")
	}
}

func TestServer_RepliesInOrderAndRepeatsLast(t *testing.T) {
	srv := Start(t)
	srv.Handle(http.MethodGet, "/tokens",
		Reply{Status: http.StatusOK, Body: map[string]any{"n": 1}},
		Reply{Status: http.StatusAccepted, Body: map[string]any{"n": 2}},
	)

	var got []int
	for i := 0; i < 3; i++ {
		resp, err := http.Get(srv.URL() + "/tokens")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp.Body.Close()
		got = append(got, resp.StatusCode)
	}
	want := []int{200, 202, 202}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected statuses %v, got %v", want, got)
		}
	}
}

func TestServer_RecordsRequests(t *testing.T) {
	srv := Start(t)
	srv.JSON(http.MethodPost, "/projects", http.StatusCreated, map[string]any{"id": 7})

	req, _ := http.NewRequest(http.MethodPost, srv.URL()+"/projects?a=1", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("X-Request-Id", "req-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if resp.Header.Get("X-Request-Id") != "req-123" {
		t.Errorf("expected echoed request id, got %q", resp.Header.Get("X-Request-Id"))
	}
	rec, ok := srv.LastRequest()
	if !ok {
		t.Fatal("expected a recorded request")
	}
	if rec.Method != http.MethodPost || rec.Path != "/projects" {
		t.Errorf("unexpected request %s %s", rec.Method, rec.Path)
	}
	if rec.Query().Get("a") != "1" {
		t.Errorf("expected query a=1, got %q", rec.RawQuery)
	}
	body, err := rec.JSONBody()
	if err != nil || body["name"] != "x" {
		t.Errorf("unexpected body %v (%v)", body, err)
	}
}

func TestServer_RawBody(t *testing.T) {
	srv := Start(t)
	srv.Handle(http.MethodGet, "/html", Reply{Status: http.StatusOK, Body: "<p>hi</p>", ContentType: "text/html"})

	resp, err := http.Get(srv.URL() + "/html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "<p>hi</p>" {
		t.Errorf("unexpected body %q", body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html" {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestServer_Endpoint(t *testing.T) {
	srv := Start(t)
	scheme, host, port := srv.Endpoint()
	if scheme != "http" || host != "127.0.0.1" || port == 0 {
		t.Errorf("unexpected endpoint %s %s %d", scheme, host, port)
	}
}

func TestServer_Lifecycle(t *testing.T) {
	srv := New()
	ctx := context.Background()

	if h := srv.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := srv.Start(ctx); err == nil {
		t.Error("expected error on second Start")
	}
	if h := srv.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy after start, got %s", h.Status)
	}

	srv.JSON(http.MethodGet, "/x", http.StatusOK, map[string]any{})
	_, _ = http.Get(srv.URL() + "/x")
	if err := srv.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if len(srv.Requests()) != 0 {
		t.Error("expected no recorded requests after Reset")
	}

	if err := srv.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if srv.URL() != "" {
		t.Error("expected empty URL after Stop")
	}
}
