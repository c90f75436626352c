// Package sanitize strips markup from text fields received from the
// upstream review API before they are served to the dashboard UI. Post
// content originates from scraped social platforms and is not trusted.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and unescapes entities, returning plain text.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
