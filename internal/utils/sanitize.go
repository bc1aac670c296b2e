package utils

import (
	"github.com/microcosm-cc/bluemonday"
)

// commentPolicy is the allow-list applied to comment text before it is
// persisted: inline markup only, links restricted to http/https, and every
// anchor rewritten to open in a new tab without leaking a referrer.
var commentPolicy = bluemonday.NewPolicy()

func init() {
	commentPolicy.AllowElements("b", "i", "em", "strong")
	commentPolicy.AllowAttrs("href", "target").OnElements("a")
	commentPolicy.AllowURLSchemes("http", "https")
	commentPolicy.RequireParseableURLs(true)
	commentPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	commentPolicy.RequireNoReferrerOnLinks(true)
}

// SanitizeComment strips everything outside the comment allow-list.
func SanitizeComment(text string) string {
	return commentPolicy.Sanitize(text)
}
