package appstate

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/osse101/XIVMarket_Go/internal/domain"
)

var supported = []language.Tag{
	language.MustParse(domain.PrimaryLocaleTag),
	language.English,
	language.Japanese,
	language.German,
	language.French,
}

var supportedLanguages = []domain.Language{
	domain.LanguageAuto,
	domain.LanguageEnglish,
	domain.LanguageJapanese,
	domain.LanguageGerman,
	domain.LanguageFrench,
}

var matcher = language.NewMatcher(supported)

// ParseLanguage normalizes user input ("auto", "ja-JP", "zh-Hant", "EN") to a supported Language.
// Unrecognized input falls back to the primary locale.
func ParseLanguage(raw string) domain.Language {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, string(domain.LanguageAuto)) {
		return domain.LanguageAuto
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return domain.LanguageAuto
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return domain.LanguageAuto
	}
	return supportedLanguages[idx]
}
