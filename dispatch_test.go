package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func completionHandler(t *testing.T, reply string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		require.Equal(t, roleUser, req.Messages[0].Role)

		resp := chatResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: roleAssistant, Content: reply}})
		json.NewEncoder(w).Encode(resp)
	}
}

func awaitMessage(t *testing.T, d *Dispatcher) Message {
	t.Helper()
	select {
	case msg := <-d.Deliveries():
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("no delivery arrived")
		return Message{}
	}
}

func TestDispatchDeliversAssistantReply(t *testing.T) {
	server := httptest.NewServer(completionHandler(t, "hi there"))
	defer server.Close()

	d := NewDispatcher(server.URL)
	d.Dispatch("test-token", "deepseek-r1", "hello")

	msg := awaitMessage(t, d)
	require.Equal(t, roleAssistant, msg.Role)
	require.Equal(t, "hi there", msg.Content)
}

func TestDispatchTransportErrorBecomesSystemMessage(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // refuse connections

	d := NewDispatcher(server.URL)
	d.Dispatch("test-token", "deepseek-r1", "hello")

	msg := awaitMessage(t, d)
	require.Equal(t, roleSystem, msg.Role)
	require.Contains(t, msg.Content, "Request error:")
}

func TestDispatchMalformedBodyBecomesSystemMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	d := NewDispatcher(server.URL)
	d.Dispatch("test-token", "deepseek-r1", "hello")

	msg := awaitMessage(t, d)
	require.Equal(t, roleSystem, msg.Role)
	require.Contains(t, msg.Content, "Error parsing response:")
}

func TestDispatchMissingContentBecomesSystemMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"invalid token"}}`))
	}))
	defer server.Close()

	d := NewDispatcher(server.URL)
	d.Dispatch("bad-token", "deepseek-r1", "hello")

	msg := awaitMessage(t, d)
	require.Equal(t, roleSystem, msg.Role)
	require.Contains(t, msg.Content, "Response missing message content")
	require.Contains(t, msg.Content, "400")
}

func TestDispatchDeliversExactlyOnePerRequest(t *testing.T) {
	server := httptest.NewServer(completionHandler(t, "pong"))
	defer server.Close()

	d := NewDispatcher(server.URL)
	for i := 0; i < 3; i++ {
		d.Dispatch("test-token", "deepseek-r1", "ping")
	}

	for i := 0; i < 3; i++ {
		msg := awaitMessage(t, d)
		require.Equal(t, "pong", msg.Content)
	}

	select {
	case msg := <-d.Deliveries():
		t.Fatalf("unexpected extra delivery: %+v", msg)
	case <-time.After(200 * time.Millisecond):
	}
}
