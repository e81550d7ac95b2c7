// Package testutil provides deterministic test doubles shared across
// package tests.
package testutil

import "github.com/alphaArgon/alkaline/internal/notify"

// Notification is one recorded delivery.
type Notification struct {
	Name    string
	Sender  any
	Payload any
}

// Recorder captures every notification delivered to it, in order. It backs
// assertions like "exactly one post per outermost mutation session".
//
// Single-threaded like the code under test; no locking.
type Recorder struct {
	Notifications []Notification
}

// Handler returns the notify.Handler that appends to the recorder.
func (r *Recorder) Handler() notify.Handler {
	return func(name string, sender, payload any) {
		r.Notifications = append(r.Notifications, Notification{
			Name:    name,
			Sender:  sender,
			Payload: payload,
		})
	}
}

// Count returns the number of recorded notifications.
func (r *Recorder) Count() int { return len(r.Notifications) }

// Last returns the most recent notification. Panics if none were recorded;
// tests should check Count first.
func (r *Recorder) Last() Notification {
	return r.Notifications[len(r.Notifications)-1]
}

// Reset clears the recorded notifications.
func (r *Recorder) Reset() {
	r.Notifications = nil
}
