package processor

import (
	"net/url"
	"path"
	"strings"
	"unicode"
)

const unknownPageName = "Unknown Page"

// PageNameFromURL derives a display name from the last path segment of a
// page URL: "https://facebook.com/local-cafe?ref=x" becomes "Local Cafe".
func PageNameFromURL(pageURL string) string {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return unknownPageName
	}
	segment := path.Base(strings.TrimRight(u.Path, "/"))
	if segment == "." || segment == "/" {
		return unknownPageName
	}
	if unescaped, err := url.PathUnescape(segment); err == nil {
		segment = unescaped
	}

	words := strings.FieldsFunc(segment, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return unknownPageName
	}
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
