package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tiktok/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalHTTPPublisher_PublishAccountEvent(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.DiscardHandler))
	event := &service.AccountEvent{
		RequestID:  "req-1",
		EventID:    "evt-1",
		Type:       service.EventUserRegistered,
		UserID:     12,
		Email:      "a@example.com",
		OccurredAt: time.Now().UTC(),
	}

	require.NoError(t, publisher.PublishAccountEvent(context.Background(), event))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, service.EventUserRegistered, received.Message.Attributes["event_type"])
	assert.Equal(t, "12", received.Message.Attributes["user_id"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.AccountEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(12), decoded.UserID)
	assert.Equal(t, "a@example.com", decoded.Email)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.DiscardHandler))

	err := publisher.PublishAccountEvent(context.Background(), &service.AccountEvent{EventID: "evt-2"})
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewNoopPublisher(slog.New(slog.DiscardHandler))

	assert.NoError(t, publisher.PublishAccountEvent(context.Background(), &service.AccountEvent{}))
	assert.NoError(t, publisher.Close())
}
