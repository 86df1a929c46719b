package main

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultAPIURL  = "https://qianfan.baidubce.com/v2/chat/completions"
	requestTimeout = 30 * time.Second

	// deliveryBuffer is sized well above any realistic number of
	// in-flight requests; a full channel blocks the producing
	// goroutine, never the UI.
	deliveryBuffer = 100
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Dispatcher performs chat completion requests off the UI goroutine.
// Every Dispatch call spawns one goroutine that delivers exactly one
// Message, success or error, on the delivery channel. Requests are
// never cancelled; they run to completion or to the client timeout,
// and responses arrive in completion order.
type Dispatcher struct {
	apiURL     string
	client     *http.Client
	deliveries chan Message
}

// NewDispatcher builds a dispatcher for the given endpoint.
//
// Certificate validation and proxies are bypassed on purpose: the
// client trusts the configured endpoint and talks to it directly.
// This is a trust trade-off, not a recommendation.
func NewDispatcher(apiURL string) *Dispatcher {
	return &Dispatcher{
		apiURL: apiURL,
		client: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
				Proxy:           nil,
			},
		},
		deliveries: make(chan Message, deliveryBuffer),
	}
}

// Deliveries exposes the consumer side of the delivery channel. The
// main loop is its only reader.
func (d *Dispatcher) Deliveries() <-chan Message {
	return d.deliveries
}

// Dispatch sends userText to the endpoint in the background and
// returns immediately.
func (d *Dispatcher) Dispatch(token, model, userText string) {
	go func() {
		d.deliveries <- d.perform(token, model, userText)
	}()
}

func (d *Dispatcher) perform(token, model, userText string) Message {
	payload, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: roleUser, Content: userText}},
	})
	if err != nil {
		return newMessage(roleSystem, fmt.Sprintf("Request error: %v", err))
	}

	req, err := http.NewRequest(http.MethodPost, d.apiURL, bytes.NewReader(payload))
	if err != nil {
		return newMessage(roleSystem, fmt.Sprintf("Request error: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := d.client.Do(req)
	if err != nil {
		slog.Warn("chat request failed", "model", model, "error", err)
		return newMessage(roleSystem, fmt.Sprintf("Request error: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newMessage(roleSystem, fmt.Sprintf("Error reading response: %v", err))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		slog.Warn("chat response unparseable", "status", resp.StatusCode, "error", err)
		return newMessage(roleSystem, fmt.Sprintf("Error parsing response: %v", err))
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return newMessage(roleSystem, fmt.Sprintf("Response missing message content (HTTP %d)", resp.StatusCode))
	}

	return newMessage(roleAssistant, parsed.Choices[0].Message.Content)
}
