package domain

// Language is a display language accepted by the lookup services.
type Language string

const (
	// LanguageAuto is the primary locale (traditional Chinese), served by the localized search service.
	LanguageAuto     Language = "auto"
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "ja"
	LanguageGerman   Language = "de"
	LanguageFrench   Language = "fr"
)

// PrimaryLocaleTag is the BCP 47 tag behind LanguageAuto.
const PrimaryLocaleTag = "zh-TW"

// IsPrimary reports whether l is the primary locale.
func (l Language) IsPrimary() bool {
	return l == LanguageAuto || l == ""
}

// ProviderCode is the language code used by the game-data provider's localized fields.
// The primary locale has no provider field, so it falls back to English.
func (l Language) ProviderCode() string {
	switch l {
	case LanguageJapanese, LanguageGerman, LanguageFrench, LanguageEnglish:
		return string(l)
	default:
		return string(LanguageEnglish)
	}
}

// NeedsTranslation reports whether names from the game-data provider must go through name resolution.
func (l Language) NeedsTranslation() bool {
	return l.IsPrimary()
}
