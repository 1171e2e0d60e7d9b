// Package theme manages the light/dark color scheme.
//
// A Manager is created once per page with two ports: a PreferenceStore
// for the explicit choice (cookie, memory) and a SystemPreference for the
// operating system scheme. An explicit choice always wins; system changes
// are followed only while no choice is stored.
package theme
