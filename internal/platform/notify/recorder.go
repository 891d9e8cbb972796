// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import "sync"

// Recorded is one toast captured by a [Recorder].
type Recorded struct {
	UserID  string
	Kind    Kind
	Message string
}

// Recorder is a [Notifier] that keeps every toast in memory. Handy in tests.
type Recorder struct {
	mutex  sync.Mutex
	toasts []Recorded
}

// Notify implements [Notifier].
func (r *Recorder) Notify(userID string, kind Kind, message string) string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.toasts = append(r.toasts, Recorded{UserID: userID, Kind: kind, Message: message})
	return ""
}

// Toasts returns a copy of everything recorded so far.
func (r *Recorder) Toasts() []Recorded {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]Recorded(nil), r.toasts...)
}

// Last returns the most recent toast, or the zero value.
func (r *Recorder) Last() Recorded {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if len(r.toasts) == 0 {
		return Recorded{}
	}
	return r.toasts[len(r.toasts)-1]
}
