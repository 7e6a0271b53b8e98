package config

import "log"

const (
	LangEN = "en"
	LangES = "es"
)

// IsValidLanguage reports whether lang is one of the supported languages.
func IsValidLanguage(lang string) bool {
	return lang == LangEN || lang == LangES
}

func GetLocaleConfig(lang string) string {
	switch lang {
	case LangEN:
		return LangEN
	case LangES:
		return LangES
	default:
		log.Printf("Language '%s' not supported. Falling back to English.", lang)
		return LangEN
	}
}
