// Package present turns field validation results into DOM mutations.
//
// Decisions are pure: ForField and Clear return Mutation values that
// touch only the field's own subtree (its control classes, a single
// feedback node and a single icon). The web layer translates them into
// datastar element patches; View applies them in memory.
package present
