// Package notify implements the notification center that reactive values
// post into.
//
// The center is single-threaded by contract, like the rest of the library:
// Post runs every matching handler synchronously, in subscription order, on
// the caller's stack. Handlers may subscribe or unsubscribe reentrantly;
// a Post iterates over the subscription list as it was when the Post began.
package notify

import "github.com/google/uuid"

// Handler receives a posted notification.
type Handler func(name string, sender, payload any)

// Token identifies a subscription for later removal.
//
// Tokens are UUIDv7 strings: time-sortable, which keeps debug dumps of
// long-lived subscription lists readable.
type Token string

type subscription struct {
	token   Token
	name    string
	sender  any
	handler Handler
}

// Center routes posted notifications to subscribers. The zero value is
// ready to use.
type Center struct {
	subs []subscription
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{}
}

// Subscribe registers fn for notifications with the given name. A non-nil
// sender restricts delivery to posts from that exact sender; a nil sender
// receives posts from every sender. Returns the token to pass to
// Unsubscribe.
func (c *Center) Subscribe(name string, sender any, fn Handler) Token {
	token := Token(uuid.Must(uuid.NewV7()).String())
	c.subs = append(c.subs, subscription{
		token:   token,
		name:    name,
		sender:  sender,
		handler: fn,
	})
	return token
}

// Unsubscribe removes the subscription identified by token. Unknown tokens
// are ignored, so double-unsubscribe is harmless.
func (c *Center) Unsubscribe(token Token) {
	for i, sub := range c.subs {
		if sub.token == token {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

// Post delivers payload to every subscriber matching name and sender,
// synchronously, in subscription order.
func (c *Center) Post(name string, sender, payload any) {
	// Snapshot so reentrant (un)subscription from a handler cannot skip or
	// double-deliver within this post.
	subs := make([]subscription, len(c.subs))
	copy(subs, c.subs)

	for _, sub := range subs {
		if sub.name != name {
			continue
		}
		if sub.sender != nil && sub.sender != sender {
			continue
		}
		sub.handler(name, sender, payload)
	}
}
