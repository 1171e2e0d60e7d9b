// Package table sorts and filters tabular data for rendering.
package table
