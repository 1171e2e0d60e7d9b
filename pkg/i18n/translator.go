package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/borrmann/bautagebuch/pkg/logger"
)

// DefaultLanguage is the language of the built-in catalogs.
const DefaultLanguage = "de"

// Translator renders keyed messages from a loaded catalog.
// It is safe for concurrent use.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	mu             sync.RWMutex
}

// NewTranslator loads the adapter once and validates the catalog shape.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, keys := range translations {
		if lang == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrInvalidTranslations)
		}
		if keys == nil {
			return nil, fmt.Errorf("%w: no keys for language %q", ErrInvalidTranslations, lang)
		}
	}

	t.translations = translations
	t.logger.DebugContext(ctx, "translations loaded", slog.Any("languages", t.supportedLanguages()))
	return t, nil
}

// DefaultLanguage returns the language used when a requested one is missing.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// SupportedLanguages returns the catalog's languages, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedLanguages()
}

func (t *Translator) supportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// HasTranslation reports whether key resolves to a string for lang,
// without falling back to the default language.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys, ok := t.translations[lang]
	if !ok {
		return false
	}
	_, ok = lookup(keys, key)
	return ok
}

// T renders key for lang. Args are key/value pairs filling %{name}
// placeholders; an odd trailing arg is ignored.
//
//	tr.T("de", "validation.min_length", "min", "3")
//
// When nothing matches, T returns the key itself or "" if WithFallbackToKey(false).
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.resolve(lang, key)
	if !ok {
		if !t.fallbackToKey {
			return ""
		}
		tmpl = key
	}
	return format(tmpl, args)
}

// Td renders key for lang, or def when the key is missing.
func (t *Translator) Td(lang, key, def string, args ...string) string {
	tmpl, ok := t.resolve(lang, key)
	if !ok {
		tmpl = def
	}
	return format(tmpl, args)
}

func (t *Translator) resolve(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys, ok := t.translations[lang]
	if ok {
		if s, found := lookup(keys, key); found {
			return s, true
		}
	}
	if lang != t.defaultLang {
		if keys, ok := t.translations[t.defaultLang]; ok {
			if s, found := lookup(keys, key); found {
				return s, true
			}
		}
	}

	if t.missingLogMode {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	return "", false
}

// lookup tries key verbatim, then as a dot-separated path.
func lookup(keys map[string]any, key string) (string, bool) {
	if v, ok := keys[key]; ok {
		s, isString := v.(string)
		return s, isString
	}

	parts := strings.Split(key, ".")
	current := keys
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}
	s, ok := current[parts[len(parts)-1]].(string)
	return s, ok
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// format fills %{name} placeholders. Unknown placeholders are kept.
func format(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := params[match[2:len(match)-1]]; ok {
			return v
		}
		return match
	})
}
