package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/freshguard/freshd/internal/domain"
)

type recordedRequest struct {
	method  string
	path    string
	query   string
	payload notificationPayload
}

type gatewayStub struct {
	mu       sync.Mutex
	requests []recordedRequest
	granted  bool
	status   int
}

func (g *gatewayStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
		}
		if r.Method == http.MethodPost && r.URL.Path == "/notifications" {
			if err := json.NewDecoder(r.Body).Decode(&rec.payload); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}

		g.mu.Lock()
		g.requests = append(g.requests, rec)
		g.mu.Unlock()

		if g.status != 0 {
			w.WriteHeader(g.status)
			return
		}
		if r.URL.Path == "/permission" {
			json.NewEncoder(w).Encode(permissionResponse{Granted: g.granted})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (g *gatewayStub) last(t *testing.T) recordedRequest {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.requests) == 0 {
		t.Fatal("gateway received no requests")
	}
	return g.requests[len(g.requests)-1]
}

func TestGatewayClient_Submit(t *testing.T) {
	stub := &gatewayStub{}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewGatewayClient(server.URL)
	fireAt := time.Date(2025, 5, 19, 9, 0, 0, 0, time.UTC)

	err := client.Submit(context.Background(), domain.NotificationRequest{
		Identifier: "milk_3d",
		ItemID:     "milk",
		DaysBefore: 3,
		FireAt:     fireAt,
		Title:      "🧊 FreshGuard Reminder",
		Body:       `"Milk" expires in 3 days!`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := stub.last(t)
	if got.method != http.MethodPost || got.path != "/notifications" {
		t.Errorf("request = %s %s, want POST /notifications", got.method, got.path)
	}
	if got.payload.Identifier != "milk_3d" {
		t.Errorf("identifier = %q, want %q", got.payload.Identifier, "milk_3d")
	}
	if got.payload.FireAt != fireAt.Format(time.RFC3339) {
		t.Errorf("fire_at = %q, want %q", got.payload.FireAt, fireAt.Format(time.RFC3339))
	}
	if got.payload.Badge != 1 {
		t.Errorf("badge = %d, want 1", got.payload.Badge)
	}
}

func TestGatewayClient_SubmitErrorStatus(t *testing.T) {
	stub := &gatewayStub{status: http.StatusInternalServerError}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewGatewayClient(server.URL)
	err := client.Submit(context.Background(), domain.NotificationRequest{Identifier: "milk_3d"})
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestGatewayClient_Cancel(t *testing.T) {
	stub := &gatewayStub{}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewGatewayClient(server.URL)

	t.Run("cancel all omits the prefix", func(t *testing.T) {
		if err := client.CancelAll(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := stub.last(t)
		if got.method != http.MethodDelete || got.path != "/notifications" {
			t.Errorf("request = %s %s, want DELETE /notifications", got.method, got.path)
		}
		if got.query != "" {
			t.Errorf("unexpected query %q", got.query)
		}
	})

	t.Run("prefix cancel scopes by item", func(t *testing.T) {
		if err := client.CancelWithPrefix(context.Background(), "milk"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := stub.last(t)
		if got.query != "prefix=milk" {
			t.Errorf("query = %q, want %q", got.query, "prefix=milk")
		}
	})
}

func TestGatewayClient_RequestPermission(t *testing.T) {
	tests := []struct {
		name    string
		granted bool
	}{
		{"granted", true},
		{"denied", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &gatewayStub{granted: tt.granted}
			server := httptest.NewServer(stub.handler())
			defer server.Close()

			client := NewGatewayClient(server.URL)
			granted, err := client.RequestPermission(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if granted != tt.granted {
				t.Errorf("granted = %v, want %v", granted, tt.granted)
			}

			got := stub.last(t)
			if got.method != http.MethodPost || got.path != "/permission" {
				t.Errorf("request = %s %s, want POST /permission", got.method, got.path)
			}
		})
	}
}

func TestGatewayClient_ClearBadge(t *testing.T) {
	stub := &gatewayStub{}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewGatewayClient(server.URL)
	if err := client.ClearBadge(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := stub.last(t)
	if got.method != http.MethodDelete || got.path != "/badge" {
		t.Errorf("request = %s %s, want DELETE /badge", got.method, got.path)
	}
}
