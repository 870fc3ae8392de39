package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Language describes a code binding language supported by the schema registry
type Language struct {
	DisplayName string // Name shown to users
	APIValue    string // Value sent to the schema registry API
	Extension   string // Extension of generated source files
}

var languages = []Language{
	{DisplayName: "Java 8", APIValue: "Java8", Extension: ".java"},
	{DisplayName: "Python 3.6", APIValue: "Python36", Extension: ".py"},
	{DisplayName: "TypeScript 3", APIValue: "TypeScript3", Extension: ".ts"},
	{DisplayName: "Go 1", APIValue: "Go1", Extension: ".go"},
}

// Languages returns a copy of the supported language catalogue
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage finds a language by display name or API value, ignoring case
func LookupLanguage(name string) (*Language, error) {
	key := strings.TrimSpace(name)
	for i := range languages {
		if strings.EqualFold(languages[i].APIValue, key) || strings.EqualFold(languages[i].DisplayName, key) {
			lang := languages[i]
			return &lang, nil
		}
	}
	return nil, goerr.Wrap(ErrUnsupportedLanguage, "unknown code binding language", goerr.V("language", name))
}
