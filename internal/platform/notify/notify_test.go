// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify_test

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/notify"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// # Fake Clock

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mutex.Lock()
	defer t.clock.mutex.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeClock struct {
	mutex  sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) notify.Timer {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	timer := &fakeTimer{clock: c, at: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, timer)
	return timer
}

// Advance moves time forward and fires due timers outside the lock.
func (c *fakeClock) Advance(d time.Duration) {
	c.mutex.Lock()
	c.now = c.now.Add(d)
	due := make([]*fakeTimer, 0)
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired && !timer.at.After(c.now) {
			timer.fired = true
			due = append(due, timer)
		}
	}
	c.mutex.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, timer := range due {
		timer.fn()
	}
}

func messages(toasts []notify.Toast) []string {
	result := make([]string, len(toasts))
	for i, toast := range toasts {
		result[i] = toast.Message
	}
	return result
}

// # Store

/*
TestStore_AddDefaults uses the default duration and a unique id.
*/
func TestStore_AddDefaults(t *testing.T) {
	store := notify.NewStore(newFakeClock())
	defer store.Close()

	first := store.Add("Saved", notify.KindSuccess, 0)
	second := store.Add("Saved", notify.KindSuccess, 0)

	assert.NotEqual(t, first, second)
	toasts := store.List()
	require.Len(t, toasts, 2)
	assert.Equal(t, notify.DefaultDuration, toasts[0].Duration)
	assert.Equal(t, notify.KindSuccess, toasts[0].Kind)
}

/*
TestStore_Expiry dismisses each toast when its own timer fires.
*/
func TestStore_Expiry(t *testing.T) {
	clock := newFakeClock()
	store := notify.NewStore(clock)
	defer store.Close()

	store.Add("short", notify.KindInfo, time.Second)
	store.Add("default", notify.KindInfo, 0)

	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, []string{"short", "default"}, messages(store.List()))

	clock.Advance(time.Millisecond)
	assert.Equal(t, []string{"default"}, messages(store.List()))

	clock.Advance(4 * time.Second)
	assert.Empty(t, store.List())
}

/*
TestStore_RemoveIdempotent ignores repeated and unknown ids.
*/
func TestStore_RemoveIdempotent(t *testing.T) {
	clock := newFakeClock()
	store := notify.NewStore(clock)
	defer store.Close()

	id := store.Error("Failed")

	assert.True(t, store.Remove(id))
	assert.False(t, store.Remove(id))
	assert.False(t, store.Remove("unknown"))

	// The cancelled timer must not resurrect or double-remove anything.
	clock.Advance(time.Minute)
	assert.Empty(t, store.List())
}

/*
TestStore_NoDedup keeps identical messages as separate toasts.
*/
func TestStore_NoDedup(t *testing.T) {
	store := notify.NewStore(newFakeClock())
	defer store.Close()

	for range 3 {
		store.Warning("Same")
	}

	assert.Equal(t, 3, store.Len())
}

/*
TestStore_Subscribe delivers the current list then every change.
*/
func TestStore_Subscribe(t *testing.T) {
	clock := newFakeClock()
	store := notify.NewStore(clock)
	defer store.Close()

	updates, cancel := store.Subscribe()

	assert.Empty(t, <-updates)

	store.Success("Chapter created successfully")
	assert.Equal(t, []string{"Chapter created successfully"}, messages(<-updates))

	clock.Advance(notify.DefaultDuration)
	assert.Empty(t, <-updates)

	cancel()
	cancel()
	_, open := <-updates
	assert.False(t, open)
}

/*
TestStore_SlowSubscriber only sees the latest snapshot.
*/
func TestStore_SlowSubscriber(t *testing.T) {
	store := notify.NewStore(newFakeClock())
	defer store.Close()

	updates, cancel := store.Subscribe()
	defer cancel()

	store.Info("one")
	store.Info("two")
	store.Info("three")

	assert.Equal(t, []string{"one", "two", "three"}, messages(<-updates))
}

/*
TestStore_Close closes subscriptions and ignores later adds.
*/
func TestStore_Close(t *testing.T) {
	store := notify.NewStore(newFakeClock())
	updates, _ := store.Subscribe()
	<-updates

	store.Close()
	store.Close()

	_, open := <-updates
	assert.False(t, open)

	store.Info("late")
	assert.Empty(t, store.List())
}

/*
TestStore_SystemClock expires a real timer without leaking goroutines.
*/
func TestStore_SystemClock(t *testing.T) {
	store := notify.NewStore(nil)
	defer store.Close()

	updates, cancel := store.Subscribe()
	defer cancel()
	<-updates

	store.Add("blink", notify.KindInfo, 10*time.Millisecond)
	require.Len(t, <-updates, 1)

	select {
	case snapshot := <-updates:
		assert.Empty(t, snapshot)
	case <-time.After(2 * time.Second):
		t.Fatal("toast did not expire")
	}
}

// # Hub

/*
TestHub_IsolatesUsers keeps each user's toasts apart.
*/
func TestHub_IsolatesUsers(t *testing.T) {
	hub := notify.NewHub(newFakeClock(), nil)
	defer hub.Close()

	hub.Notify("alice", notify.KindSuccess, "Note created successfully")

	assert.Len(t, hub.For("alice").List(), 1)
	assert.Empty(t, hub.For("bob").List())
}

/*
TestHub_Prune drops idle stores only.
*/
func TestHub_Prune(t *testing.T) {
	clock := newFakeClock()
	hub := notify.NewHub(clock, nil)
	defer hub.Close()

	hub.Notify("alice", notify.KindInfo, "hello")
	hub.For("bob")
	_, cancel := hub.Subscribe("carol")
	defer cancel()

	assert.Equal(t, 1, hub.Prune())

	clock.Advance(notify.DefaultDuration)
	assert.Equal(t, 1, hub.Prune())
	assert.Equal(t, 0, hub.Prune())
}

/*
TestHub_AddSurvivesPrune never loses a toast to a concurrent prune.
*/
func TestHub_AddSurvivesPrune(t *testing.T) {
	hub := notify.NewHub(newFakeClock(), nil)
	defer hub.Close()

	const rounds = 200
	ids := make(chan string, rounds)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range rounds {
			ids <- hub.Add("alice", "saved", notify.KindInfo, time.Minute)
		}
		close(ids)
	}()
	go func() {
		defer wg.Done()
		for range rounds {
			hub.Prune()
		}
	}()
	wg.Wait()

	visible := make(map[string]bool)
	for _, toast := range hub.For("alice").List() {
		visible[toast.ID] = true
	}
	for id := range ids {
		assert.True(t, visible[id], "toast %s was dropped", id)
	}
	assert.Len(t, visible, rounds)
}

/*
TestToast_JSON renders the wire shape.
*/
func TestToast_JSON(t *testing.T) {
	toast := notify.Toast{ID: "t1", Message: "Hi", Kind: notify.KindWarning, Duration: 1500 * time.Millisecond}

	payload, err := json.Marshal(toast)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "warning", decoded["type"])
	assert.Equal(t, float64(1500), decoded["duration"])
	assert.Equal(t, "Hi", decoded["message"])
}

/*
TestKind_Valid accepts the four kinds only.
*/
func TestKind_Valid(t *testing.T) {
	for _, kind := range []notify.Kind{notify.KindSuccess, notify.KindError, notify.KindWarning, notify.KindInfo} {
		assert.True(t, kind.Valid())
	}
	assert.False(t, notify.Kind("fatal").Valid())
}

/*
TestFailure picks the toast message from the error class.
*/
func TestFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"validation", apperr.ValidationError("Validation failed"), notify.InvalidForm},
		{"not found", apperr.NotFound("Note"), "Note not found"},
		{"internal", apperr.Internal(errors.New("boom")), "Error saving note"},
		{"plain", errors.New("boom"), "Error saving note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &notify.Recorder{}
			err := notify.Failure(recorder, "alice", tt.err, "Error saving note")

			assert.Same(t, tt.err, err)
			assert.Equal(t, notify.Recorded{UserID: "alice", Kind: notify.KindError, Message: tt.message}, recorder.Last())
		})
	}
}
