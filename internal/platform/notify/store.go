// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Store is one user's toast list.
//
// # Concurrency
//
// Store is safe for concurrent use. Subscribers receive the latest snapshot
// after every change. A slow subscriber skips intermediate snapshots rather
// than blocking the writer.
type Store struct {
	clock Clock

	mutex       sync.Mutex
	toasts      []Toast
	timers      map[string]Timer
	subscribers map[uint64]chan []Toast
	counter     uint64
	closed      bool
}

// NewStore creates an empty store driven by clock.
func NewStore(clock Clock) *Store {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Store{
		clock:       clock,
		timers:      make(map[string]Timer),
		subscribers: make(map[uint64]chan []Toast),
	}
}

/*
Add appends a toast and schedules its dismissal.

Parameters:
  - message: string
  - kind: Kind
  - duration: time.Duration (zero or negative means DefaultDuration)

Returns:
  - string: The generated toast ID
*/
func (s *Store) Add(message string, kind Kind, duration time.Duration) string {
	if duration <= 0 {
		duration = DefaultDuration
	}

	toast := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		Duration:  duration,
		CreatedAt: s.clock.Now(),
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return toast.ID
	}

	s.toasts = append(s.toasts, toast)
	s.timers[toast.ID] = s.clock.AfterFunc(duration, func() { s.Remove(toast.ID) })
	s.publishLocked()

	return toast.ID
}

// Success adds a success toast with the default duration.
func (s *Store) Success(message string) string { return s.Add(message, KindSuccess, 0) }

// Error adds an error toast with the default duration.
func (s *Store) Error(message string) string { return s.Add(message, KindError, 0) }

// Warning adds a warning toast with the default duration.
func (s *Store) Warning(message string) string { return s.Add(message, KindWarning, 0) }

// Info adds an info toast with the default duration.
func (s *Store) Info(message string) string { return s.Add(message, KindInfo, 0) }

// Remove dismisses a toast. Unknown IDs are ignored.
//
// It reports whether a toast was actually removed.
func (s *Store) Remove(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	index := slices.IndexFunc(s.toasts, func(t Toast) bool { return t.ID == id })
	if index < 0 {
		return false
	}

	s.toasts = slices.Delete(s.toasts, index, index+1)
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	s.publishLocked()

	return true
}

// List returns the visible toasts in insertion order.
func (s *Store) List() []Toast {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of visible toasts.
func (s *Store) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.toasts)
}

/*
Subscribe registers for snapshots.

The channel immediately receives the current list and then the new list after
every change. It is closed by the returned cancel function or by [Store.Close].

Returns:
  - <-chan []Toast: Snapshot stream
  - func(): Cancel, safe to call more than once
*/
func (s *Store) Subscribe() (<-chan []Toast, func()) {
	updates := make(chan []Toast, 1)

	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		close(updates)
		return updates, func() {}
	}
	id := atomic.AddUint64(&s.counter, 1)
	s.subscribers[id] = updates
	updates <- s.snapshotLocked()
	s.mutex.Unlock()

	var once sync.Once
	return updates, func() {
		once.Do(func() {
			s.mutex.Lock()
			defer s.mutex.Unlock()
			if channel, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(channel)
			}
		})
	}
}

// Close stops every pending timer and closes every subscription.
func (s *Store) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	for id, channel := range s.subscribers {
		delete(s.subscribers, id)
		close(channel)
	}
}

// idle reports whether the store holds nothing worth keeping.
func (s *Store) idle() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.toasts) == 0 && len(s.subscribers) == 0
}

func (s *Store) snapshotLocked() []Toast {
	snapshot := make([]Toast, len(s.toasts))
	copy(snapshot, s.toasts)
	return snapshot
}

// publishLocked replaces any unread snapshot with the current one.
func (s *Store) publishLocked() {
	for _, channel := range s.subscribers {
		select {
		case <-channel:
		default:
		}
		channel <- s.snapshotLocked()
	}
}
