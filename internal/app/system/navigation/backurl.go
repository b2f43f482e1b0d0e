// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/admin/applications").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/new").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParam is an optional query parameter to preserve in the
	// fallback URL. Paged lists use "start" so a status change on page N
	// redirects back to page N.
	PreserveQueryParam string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", validates
// the URL is safe (not an open redirect), optionally validates the prefix,
// and excludes specified subpaths to prevent redirect loops.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	// Try query parameter first, then form value
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	if ret != "" {
		valid := true

		if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
			valid = false
		}

		for _, excluded := range opts.ExcludedSubpaths {
			if strings.Contains(ret, excluded) {
				valid = false
				break
			}
		}

		if valid {
			return ret
		}
	}

	fallback := opts.Fallback
	if opts.PreserveQueryParam != "" {
		param := query.Get(r, opts.PreserveQueryParam)
		if param == "" {
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam))
		}
		if param != "" {
			if strings.Contains(fallback, "?") {
				fallback += "&" + opts.PreserveQueryParam + "=" + param
			} else {
				fallback += "?" + opts.PreserveQueryParam + "=" + param
			}
		}
	}

	return fallback
}

// Common back URL configurations for reuse across admin handlers.
var (
	// ApplicationsBackURL returns options for the membership applications list.
	ApplicationsBackURL = BackURLOptions{
		AllowedPrefix:      "/admin/applications",
		Fallback:           "/admin/applications",
		PreserveQueryParam: "start",
	}

	// ContactsBackURL returns options for the contact submissions list.
	ContactsBackURL = BackURLOptions{
		AllowedPrefix:      "/admin/contacts",
		Fallback:           "/admin/contacts",
		PreserveQueryParam: "start",
	}

	// EventsBackURL returns options for the admin events list.
	EventsBackURL = BackURLOptions{
		AllowedPrefix:    "/admin/events",
		ExcludedSubpaths: []string{"/edit", "/new"},
		Fallback:         "/admin/events",
	}
)
