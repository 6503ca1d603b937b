package internal

import (
	"log/slog"
	"time"

	"github.com/contentkit/customfields/pkg/fieldtype"
	"github.com/contentkit/customfields/pkg/i18n"
	"github.com/contentkit/customfields/pkg/notify"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithNotifier sets the notifier save operations report through.
// Default: notifications are logged.
func WithNotifier(n notify.Notifier) Option {
	return func(r *Registry) {
		r.notifier = n
	}
}

// WithTranslator replaces the built-in English message table.
func WithTranslator(tr *i18n.Translator) Option {
	return func(r *Registry) {
		if tr != nil {
			r.tr = tr
		}
	}
}

// WithLanguage sets the language notifications are resolved in.
// Default: "en".
func WithLanguage(lang string) Option {
	return func(r *Registry) {
		if lang != "" {
			r.lang = lang
		}
	}
}

// WithFieldTypes replaces the built-in field-type registry, e.g. to add
// custom types on top of the defaults.
func WithFieldTypes(types *fieldtype.Registry) Option {
	return func(r *Registry) {
		if types != nil {
			r.types = types
		}
	}
}

// WithDefinitionsTTL sets how long cached definition snapshots live.
// Writes invalidate eagerly; the TTL only bounds staleness after missed
// invalidations. Default: 10 minutes.
func WithDefinitionsTTL(d time.Duration) Option {
	return func(r *Registry) {
		if d != 0 {
			r.defsTTL = d
		}
	}
}
