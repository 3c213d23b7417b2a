// Package i18n resolves display languages for user-facing surfaces.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// supported lists the locales the calculator can group numbers for. The
// first entry is the default.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.German,
	language.French,
	language.BrazilianPortuguese,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

// SupportedTags returns the locales available to user-facing surfaces.
func SupportedTags() []language.Tag {
	tags := make([]language.Tag, len(supported))
	copy(tags, supported)
	return tags
}

// DefaultTag returns the fallback locale.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses a BCP 47 value and reports whether it maps to a supported
// locale with high confidence.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Tag{}, false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return language.Tag{}, false
	}
	return supported[index], true
}

// MatchTags picks the best supported locale for an ordered preference list.
func MatchTags(preferences []language.Tag) language.Tag {
	if len(preferences) == 0 {
		return DefaultTag()
	}
	_, index, _ := matcher.Match(preferences...)
	return supported[index]
}
