// Package autosave keeps drafts of in-progress forms.
//
// Every change to a form opted into auto-save calls Saver.Touch. After two
// quiet seconds the current values are written as a flat JSON object under
// the key "autosave_<form id>" ("autosave_default" for forms without an
// id), and the info toast "Daten automatisch gespeichert" is shown. When
// the form is rendered again, Saver.Restore puts the saved values back.
//
// Snapshots live in a Store: MemoryStore for a single process or
// RedisStore for a shared one.
package autosave
