// Package format renders values the way German users expect them,
// using golang.org/x/text for number grouping and decimal separators.
package format
