// Package web serves the site diary page and the datastar endpoints behind
// it: field validation, form submission with auto-save, toasts, theme
// switching, material tables, uploads and the dashboard counters.
//
// Per-browser state is keyed by a signed session cookie. Toasts reach the
// browser through one long-lived event stream per page opened at /events.
package web
