// Package htmx detects HTMX requests and picks fragment or full-page rendering.
package htmx

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RequestHeaderKey is the HTMX request header used to detect partial updates.
const RequestHeaderKey = "HX-Request"

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeaderKey), "true")
}

// RenderPage renders fragment for HTMX requests and full otherwise.
//
// If fragment is nil the full page serves both paths, and vice versa.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment templ.Component, full templ.Component) error {
	target := full
	if IsHTMXRequest(r) && fragment != nil {
		target = fragment
	}
	if target == nil {
		target = fragment
	}
	if target == nil {
		return nil
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return target.Render(r.Context(), w)
}
