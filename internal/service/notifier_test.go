package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWebhookNotifier_DeliversEvent(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var received mutationEvent
	done := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		_ = json.Unmarshal(body, &received)
		mu.Unlock()
		close(done)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, testLogger())
	n.GroupMutated(context.Background(), ActionEdit, "Machine Learning", "AI Club")

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was never called")
	}

	mu.Lock()
	defer mu.Unlock()
	if received.Category != "Interest Group" {
		t.Errorf("expected category Interest Group, got %s", received.Category)
	}
	if received.Action != ActionEdit || received.Name != "Machine Learning" || received.OldName != "AI Club" {
		t.Errorf("unexpected event %+v", received)
	}
}

func TestWebhookNotifier_EmptyURLIsNoop(t *testing.T) {
	t.Parallel()

	n := NewWebhookNotifier("", testLogger())
	// Must not panic or block.
	n.GroupMutated(context.Background(), ActionCreate, "Robotics", "")
}

func TestWebhookNotifier_DeliverReportsServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, testLogger())
	err := n.deliver(mutationEvent{Category: "Interest Group", Action: ActionDelete, Name: "Robotics"})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
