// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify holds the transient toast messages shown to each user.

A toast is created by a successful or failed operation, stays visible for its
duration, and is then dismissed by a timer or by the user. Dismissal is
idempotent. There is no deduplication and no cap on the number of toasts.

Architecture:

  - Store: One user's ordered toast list plus its subscribers.
  - Hub: The process-wide registry of stores, owned by the composition root.
  - Handler: HTTP list, dismiss and websocket stream endpoints.

Timers run on an injectable [Clock] so expiry is deterministic in tests.
*/
package notify

import (
	"encoding/json"
	"time"
)

// Kind is the visual category of a toast.
type Kind string

// Supported kinds.
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// DefaultDuration applies when a toast is added without a duration.
const DefaultDuration = 5000 * time.Millisecond

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return true
	}
	return false
}

// Toast is one transient message.
type Toast struct {
	ID        string
	Message   string
	Kind      Kind
	Duration  time.Duration
	CreatedAt time.Time
}

// MarshalJSON renders the duration in milliseconds.
func (t Toast) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string    `json:"id"`
		Message   string    `json:"message"`
		Kind      Kind      `json:"type"`
		Duration  int64     `json:"duration"`
		CreatedAt time.Time `json:"created_at"`
	}{
		ID:        t.ID,
		Message:   t.Message,
		Kind:      t.Kind,
		Duration:  t.Duration.Milliseconds(),
		CreatedAt: t.CreatedAt,
	})
}

// # Clock

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock abstracts time so expiry can be driven by tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// AfterFunc schedules f on its own goroutine after d.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
