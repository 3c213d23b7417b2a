package web

import (
	"net/http"
	"strings"

	platformi18n "github.com/abacusweb/abacus/internal/platform/i18n"
	"golang.org/x/text/language"
)

// langParam is the query parameter used to select a grouping locale.
const langParam = "lang"

// langCookieName stores the locale preference.
const langCookieName = "abacus_lang"

// resolveLanguage determines the grouping locale for a request: explicit query
// parameter first, then cookie, then Accept-Language, then the default.
func resolveLanguage(r *http.Request) language.Tag {
	if r == nil {
		return platformi18n.DefaultTag()
	}

	if value := strings.TrimSpace(r.URL.Query().Get(langParam)); value != "" {
		if tag, ok := platformi18n.ParseTag(value); ok {
			return tag
		}
	}

	if cookie, err := r.Cookie(langCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags)
		}
	}

	return platformi18n.DefaultTag()
}
