// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Notifier publishes a toast to one user.
//
// Domain services depend on this interface rather than on [Hub] so they can be
// tested with [Discard] or a recording fake.
type Notifier interface {
	Notify(userID string, kind Kind, message string) string
}

// Hub owns one [Store] per user.
type Hub struct {
	clock  Clock
	logger *slog.Logger

	mutex  sync.Mutex
	stores map[string]*Store
}

var _ Notifier = (*Hub)(nil)

// NewHub creates an empty hub. A nil clock means the wall clock.
func NewHub(clock Clock, logger *slog.Logger) *Hub {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{clock: clock, logger: logger, stores: make(map[string]*Store)}
}

// For returns the user's store, creating it on first use.
func (h *Hub) For(userID string) *Store {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.storeLocked(userID)
}

// Subscribe streams the user's snapshots. See [Store.Subscribe].
func (h *Hub) Subscribe(userID string) (<-chan []Toast, func()) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.storeLocked(userID).Subscribe()
}

// Add appends a toast to the user's store. See [Store.Add].
func (h *Hub) Add(userID, message string, kind Kind, duration time.Duration) string {
	// Held across Add so Prune cannot close the store in between.
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.storeLocked(userID).Add(message, kind, duration)
}

// Notify implements [Notifier].
func (h *Hub) Notify(userID string, kind Kind, message string) string {
	id := h.Add(userID, message, kind, 0)

	h.logger.Debug("toast_added",
		slog.String("user_id", userID),
		slog.String("kind", string(kind)),
		slog.String("toast_id", id),
	)
	return id
}

func (h *Hub) storeLocked(userID string) *Store {
	store, ok := h.stores[userID]
	if !ok {
		store = NewStore(h.clock)
		h.stores[userID] = store
	}
	return store
}

// Prune drops the stores that hold no toasts and no subscribers.
//
// It returns the number of stores dropped.
func (h *Hub) Prune() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	dropped := 0
	for userID, store := range h.stores {
		if store.idle() {
			store.Close()
			delete(h.stores, userID)
			dropped++
		}
	}
	return dropped
}

// Close shuts every store down. The hub is unusable afterwards.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, store := range h.stores {
		store.Close()
		delete(h.stores, userID)
	}
}

// # Discard

type discard struct{}

// Discard is a [Notifier] that drops every toast.
var Discard Notifier = discard{}

func (discard) Notify(string, Kind, string) string { return "" }
