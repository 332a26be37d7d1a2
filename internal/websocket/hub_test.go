// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/storelens/internal/dataset"
)

// startHub runs a hub until the test ends.
func startHub(t *testing.T) (*Hub, <-chan error) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.RunWithContext(ctx) }()
	t.Cleanup(cancel)
	return hub, errCh
}

// detachedClient is a client with no connection; tests read its send channel.
func detachedClient(hub *Hub) *Client {
	return NewClient(hub, nil)
}

func receive(t *testing.T, c *Client) (Message, bool) {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		return msg, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}, false
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	t.Parallel()
	hub, _ := startHub(t)

	first := detachedClient(hub)
	second := detachedClient(hub)
	hub.Register <- first
	hub.Register <- second

	hub.BroadcastJSON("custom", map[string]int{"n": 1})

	for _, c := range []*Client{first, second} {
		msg, ok := receive(t, c)
		if !ok || msg.Type != "custom" {
			t.Errorf("client %d got %+v (open=%v)", c.ID(), msg, ok)
		}
	}
	if hub.GetClientCount() != 2 {
		t.Errorf("GetClientCount() = %d, want 2", hub.GetClientCount())
	}
}

func TestHub_BroadcastDatasetReloaded(t *testing.T) {
	t.Parallel()
	hub, _ := startHub(t)

	c := detachedClient(hub)
	hub.Register <- c

	loaded := time.Date(2024, 9, 23, 12, 0, 0, 0, time.UTC)
	hub.BroadcastDatasetReloaded(dataset.Snapshot{
		Version:  4,
		Rows:     112650,
		Identity: dataset.FileIdentity{Path: "dashboard/main_data.csv"},
		LoadedAt: loaded,
	})

	msg, _ := receive(t, c)
	if msg.Type != MessageTypeDatasetReloaded {
		t.Fatalf("message type = %q, want %q", msg.Type, MessageTypeDatasetReloaded)
	}
	data, ok := msg.Data.(DatasetReloadedData)
	if !ok {
		t.Fatalf("data type = %T", msg.Data)
	}
	if data.Version != 4 || data.Rows != 112650 || data.LoadedAt != "2024-09-23T12:00:00Z" {
		t.Errorf("payload = %+v", data)
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	t.Parallel()
	hub, _ := startHub(t)

	c := detachedClient(hub)
	hub.Register <- c
	hub.Unregister <- c

	if _, ok := receive(t, c); ok {
		t.Error("send channel should be closed after unregister")
	}
	if hub.GetClientCount() != 0 {
		t.Errorf("GetClientCount() = %d, want 0", hub.GetClientCount())
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	t.Parallel()
	hub := NewHub()

	slow := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message)}
	hub.clients[slow] = true

	hub.broadcastToClients(Message{Type: "custom"})

	if hub.GetClientCount() != 0 {
		t.Error("client with a full buffer should be removed")
	}
	if _, ok := <-slow.send; ok {
		t.Error("slow client's send channel should be closed")
	}
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	t.Parallel()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.RunWithContext(ctx) }()

	c := detachedClient(hub)
	hub.Register <- c
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RunWithContext() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	if _, ok := receive(t, c); ok {
		t.Error("client should be closed on shutdown")
	}
}

func TestMarshalMessage(t *testing.T) {
	t.Parallel()

	raw, err := MarshalMessage(Message{Type: MessageTypePong})
	if err != nil {
		t.Fatalf("MarshalMessage() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != "pong" {
		t.Errorf("type = %v, want pong", decoded["type"])
	}
	if _, ok := decoded["data"]; !ok {
		t.Error("data key should always be present")
	}
}
