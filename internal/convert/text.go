// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// ParseBoolean interprets a CMS flag value. Booleans pass through; strings
// are true when they lower-case to "true", "yes" or "1". Anything else,
// including nil and the empty string, is false.
func ParseBoolean(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "true", "yes", "1":
			return true
		}
	}
	return false
}

// CleanText strips markup tags, decodes HTML entities and collapses
// whitespace. It is a naive sanitizer for rich-text CMS fields, not an
// HTML parser.
func CleanText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
