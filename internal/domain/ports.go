package domain

import "context"

// UserRepository persists user records by name. Durability is best-effort:
// the game core calls SaveAll after every scoring event and never awaits
// verification beyond the returned error.
type UserRepository interface {
	Load(ctx context.Context) (map[string]*UserRecord, error)
	SaveAll(ctx context.Context, records map[string]*UserRecord) error
}

// Localizer resolves message keys to text in the active locale.
type Localizer interface {
	T(key string, args ...any) string
	SetLocale(code string) error
	Locales() []string
}
