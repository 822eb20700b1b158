// Package i18n resolves message keys for outgoing chat text.
//
// Catalogs are JSON files embedded per locale and registered with
// golang.org/x/text/message, so values use fmt-style verbs. The active
// locale is process-wide and switchable at runtime via the lang command.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pscheid92/quizpulse/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.json
var embeddedLocaleFS embed.FS

type catalogFile struct {
	Locale   string            `json:"locale"`
	Messages map[string]string `json:"messages"`
}

// Translator implements domain.Localizer over the embedded catalogs.
type Translator struct {
	mu       sync.RWMutex
	active   *message.Printer
	printers map[string]*message.Printer
	locales  []string
}

// New loads the embedded catalogs and activates defaultLocale.
func New(defaultLocale string) (*Translator, error) {
	return NewFromFS(embeddedLocaleFS, defaultLocale)
}

// NewFromFS loads catalogs from the provided filesystem (tests use this).
func NewFromFS(localeFS fs.FS, defaultLocale string) (*Translator, error) {
	paths, err := fs.Glob(localeFS, "locales/*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)

	t := &Translator{printers: make(map[string]*message.Printer)}
	for _, path := range paths {
		data, err := fs.ReadFile(localeFS, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}

		var file catalogFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
		}

		code := strings.TrimSuffix(filepath.Base(path), ".json")
		if file.Locale != code {
			return nil, fmt.Errorf("catalog %s: locale %q must match filename locale %q", path, file.Locale, code)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: messages map is required", path)
		}

		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("failed to parse locale tag %q: %w", code, err)
		}

		keys := make([]string, 0, len(file.Messages))
		for key := range file.Messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := message.SetString(tag, key, file.Messages[key]); err != nil {
				return nil, fmt.Errorf("catalog %s: failed to register key %q: %w", path, key, err)
			}
		}

		t.printers[code] = message.NewPrinter(tag)
		t.locales = append(t.locales, code)
	}
	sort.Strings(t.locales)

	if err := t.SetLocale(defaultLocale); err != nil {
		return nil, err
	}
	return t, nil
}

// T renders the message for key in the active locale.
func (t *Translator) T(key string, args ...any) string {
	t.mu.RLock()
	printer := t.active
	t.mu.RUnlock()
	return printer.Sprintf(key, args...)
}

// SetLocale switches the active locale. Unknown codes are rejected.
func (t *Translator) SetLocale(code string) error {
	printer, ok := t.printers[strings.TrimSpace(code)]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownLocale, code)
	}
	t.mu.Lock()
	t.active = printer
	t.mu.Unlock()
	return nil
}

// Locales returns the available locale codes, sorted.
func (t *Translator) Locales() []string {
	out := make([]string, len(t.locales))
	copy(out, t.locales)
	return out
}
