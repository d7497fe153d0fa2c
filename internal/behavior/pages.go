// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package behavior

import "strings"

// pageCategories maps the first path segment of a page onto an interest category.
var pageCategories = map[string]string{
	"franchise": "franchise",
	"training":  "training",
	"products":  "products",
	"product":   "products",
	"stores":    "stores",
	"store":     "stores",
	"about":     "about",
	"news":      "news",
	"contact":   "contact",
}

// PageCategory returns the interest category of page, matching on its first
// path segment ("/stores/wuhua" is a stores page). The home page and unknown
// sections have no category.
func PageCategory(page string) (string, bool) {
	p := strings.ToLower(strings.TrimSpace(page))
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.Trim(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	category, ok := pageCategories[p]
	return category, ok
}
