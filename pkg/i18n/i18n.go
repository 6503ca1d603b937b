// Package i18n resolves the user-facing strings the subsystem emits
// (save notifications, error messages) with per-language overrides and
// Accept-Language matching.
//
// It is deliberately small: a flattened key->string map per language,
// {name} placeholder interpolation, and fallback to the default
// language. Hosts with a full translation pipeline can ignore it and
// plug their own strings into the Notifier instead.
package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

var (
	ErrEmptyLanguage = errors.New("i18n: language must not be empty")
	ErrBadLanguage   = errors.New("i18n: cannot parse language tag")
)

// Translator is an immutable translation table. Safe for concurrent use.
type Translator struct {
	// key format: "lang:key"
	translations map[string]string
	defaultLang  string
	matcher      language.Matcher
	tags         []language.Tag
}

// Option configures the Translator during construction.
type Option func(*Translator) error

// New creates a Translator. All configuration happens at construction;
// the result is immutable.
func New(opts ...Option) (*Translator, error) {
	tr := &Translator{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}
	for _, opt := range opts {
		if err := opt(tr); err != nil {
			return nil, err
		}
	}

	seen := map[string]bool{tr.defaultLang: true}
	tr.tags = []language.Tag{language.Make(tr.defaultLang)}
	for key := range tr.translations {
		lang, _, _ := strings.Cut(key, ":")
		if !seen[lang] {
			seen[lang] = true
			tr.tags = append(tr.tags, language.Make(lang))
		}
	}
	tr.matcher = language.NewMatcher(tr.tags)

	return tr, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(tr *Translator) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		tr.defaultLang = lang
		return nil
	}
}

// WithTranslations merges a translation map for one language.
func WithTranslations(lang string, m map[string]string) Option {
	return func(tr *Translator) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		for k, v := range m {
			tr.translations[lang+":"+k] = v
		}
		return nil
	}
}

// T resolves a key in the given language with {name} placeholder
// interpolation, falling back to the default language and finally to the
// key itself so missing translations stay visible rather than silent.
func (tr *Translator) T(lang, key string, args map[string]string) string {
	msg, ok := tr.translations[lang+":"+key]
	if !ok {
		msg, ok = tr.translations[tr.defaultLang+":"+key]
	}
	if !ok {
		msg = key
	}
	for name, value := range args {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg
}

// Match picks the best supported language for an Accept-Language header.
func (tr *Translator) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return tr.defaultLang
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return tr.defaultLang
	}
	_, idx, conf := tr.matcher.Match(desired...)
	if conf == language.No {
		return tr.defaultLang
	}
	base, _ := tr.tags[idx].Base()
	return base.String()
}
