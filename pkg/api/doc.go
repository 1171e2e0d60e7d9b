// Package api is the client for the server endpoints the page talks to:
// material lookups, dashboard statistics, material deletion, duplicate
// checks and AJAX form submission.
//
// Every request carries the X-Requested-With header and, when configured,
// the X-CSRFToken header. The client never retries and applies no timeout
// of its own; cancel the context to abandon a call.
//
//	c := api.NewClient("https://bau.example.com", api.WithCSRFToken(token))
//	info, err := c.MaterialInfo(ctx, "42")
//
// Responses that may arrive out of order can be guarded with a Sequencer.
package api
