package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Mutation actions reported to the webhook.
const (
	ActionCreate = "Create"
	ActionEdit   = "Edit"
	ActionDelete = "Delete"
)

// Notifier reports interest group mutations to an external channel.
// Notifications are best-effort: a failed delivery never fails the mutation.
type Notifier interface {
	GroupMutated(ctx context.Context, action, name, oldName string)
}

// WebhookNotifier posts mutation events to a configured webhook URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewWebhookNotifier creates a webhook notifier. An empty URL yields a
// notifier that silently drops every event.
func NewWebhookNotifier(url string, logger *slog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type mutationEvent struct {
	Category string `json:"category"`
	Action   string `json:"action"`
	Name     string `json:"name"`
	OldName  string `json:"old_name,omitempty"`
}

// GroupMutated delivers the event in the background. The caller's context is
// not used for the delivery so an already-finished request cannot cancel it.
func (n *WebhookNotifier) GroupMutated(_ context.Context, action, name, oldName string) {
	if n.url == "" {
		return
	}

	event := mutationEvent{
		Category: "Interest Group",
		Action:   action,
		Name:     name,
		OldName:  oldName,
	}

	go func() {
		if err := n.deliver(event); err != nil {
			n.logger.Warn("webhook delivery failed",
				"action", action,
				"group", name,
				"error", err)
		}
	}()
}

func (n *WebhookNotifier) deliver(event mutationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
