package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	DataStarAcceptHeader = "text/event-stream"
	DataStarQueryParam   = "datastar"
	DataStarHeader       = "Datastar-Request"
)

// Patch modes.
const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
	PatchBefore  = datastar.ElementPatchModeBefore
	PatchAfter   = datastar.ElementPatchModeAfter
)

// IsDataStar reports whether the request came from the datastar client.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarHeader) == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}

// Signals binds the datastar signals of the request into v. Requests
// that are not datastar requests are skipped.
func Signals() Bind {
	return func(r *http.Request, v any) error {
		if !IsDataStar(r) {
			return ErrNotApplicable
		}
		if r.Method != http.MethodGet && r.ContentLength == 0 {
			return ErrNotApplicable
		}
		return datastar.ReadSignals(r, v)
	}
}
