package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/XIVMarket_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("language", validateLanguage)
	_ = v.RegisterValidation("world", validateWorld)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// without leaking internal struct names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "language":
			errs[field] = "Unsupported language"
		case "world":
			errs[field] = "Invalid world name"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidLanguages defines the accepted language codes
var ValidLanguages = map[domain.Language]bool{
	domain.LanguageAuto:     true,
	domain.LanguageEnglish:  true,
	domain.LanguageJapanese: true,
	domain.LanguageGerman:   true,
	domain.LanguageFrench:   true,
}

// validateLanguage allows empty (handled by 'required' tag if needed)
func validateLanguage(fl validator.FieldLevel) bool {
	lang := fl.Field().String()
	if lang == "" {
		return true
	}
	return ValidLanguages[domain.Language(strings.ToLower(lang))]
}

// validateWorld accepts world names as shown in game: letters only, or CJK names.
func validateWorld(fl validator.FieldLevel) bool {
	world := fl.Field().String()
	if world == "" {
		return true
	}
	if len(world) > 64 {
		return false
	}
	for _, r := range world {
		if r < 0x80 && !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-' || r == '\'') {
			return false
		}
	}
	return true
}
