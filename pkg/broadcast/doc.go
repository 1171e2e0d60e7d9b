// Package broadcast fans messages out to subscribers of named channels.
//
// The web layer keeps one channel per browser session: the session's
// event stream subscribes, and toast delivery publishes patches to it.
// Delivery never blocks the publisher; a subscriber that cannot keep up
// is dropped and its receive channel closed.
package broadcast
