package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestDefaultTagIsAmericanEnglish(t *testing.T) {
	if got := DefaultTag(); got != language.AmericanEnglish {
		t.Fatalf("DefaultTag = %v, want %v", got, language.AmericanEnglish)
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		value string
		want  language.Tag
		ok    bool
	}{
		{value: "en-US", want: language.AmericanEnglish, ok: true},
		{value: "de", want: language.German, ok: true},
		{value: " fr ", want: language.French, ok: true},
		{value: "pt-BR", want: language.BrazilianPortuguese, ok: true},
		{value: "not-a-tag!", ok: false},
		{value: "", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			got, ok := ParseTag(tc.value)
			if ok != tc.ok {
				t.Fatalf("ParseTag(%q) ok = %v, want %v", tc.value, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("ParseTag(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestMatchTagsFallsBackToDefault(t *testing.T) {
	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %v, want default", got)
	}
}

func TestMatchTagsPrefersFirstSupported(t *testing.T) {
	prefs := []language.Tag{language.Japanese, language.German}
	if got := MatchTags(prefs); got != language.German {
		t.Fatalf("MatchTags = %v, want %v", got, language.German)
	}
}
