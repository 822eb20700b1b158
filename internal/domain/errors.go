package domain

import "errors"

var (
	// ErrNoQuestion signals an exhausted pool or an invalid forced index.
	// It is an end-of-game condition, not a failure.
	ErrNoQuestion = errors.New("no question available")

	// ErrUnknownLocale is returned when switching to a locale without a catalog.
	ErrUnknownLocale = errors.New("unknown locale")
)
