// Package notify sends best-effort follow-up text messages when a
// conversation indicates scheduling intent.
//
// Dispatch is fire-and-forget relative to the audio reply path: a failed
// dispatch is logged by the caller and never alters what the caller hears.
package notify

import (
	"context"
	"fmt"
)

// Dispatcher sends one follow-up message to a contact address.
type Dispatcher interface {
	// Notify delivers the body to the contact address.
	Notify(ctx context.Context, to, body string) error
}

// NotifyFunc is an adapter to allow the use of ordinary functions as
// Dispatchers.
type NotifyFunc func(ctx context.Context, to, body string) error

// Notify calls the underlying function.
func (f NotifyFunc) Notify(ctx context.Context, to, body string) error {
	return f(ctx, to, body)
}

// FollowUpBody returns the fixed follow-up message embedding the scheduling
// link.
func FollowUpBody(link string) string {
	return fmt.Sprintf("Thanks for calling! You can book an appointment here: %s", link)
}
