package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/pscheid92/quizpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoadsEmbeddedCatalogs(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en"}, tr.Locales())
}

func TestTranslatorFormatsArguments(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "Question: 2+2?", tr.T("game.question", "2+2?"))
	assert.Contains(t, tr.T("game.correct", "alice", "4", 3), "alice")
	assert.Contains(t, tr.T("game.correct", "alice", "4", 3), "3")
}

func TestTranslatorSwitchesLocale(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	english := tr.T("game.stopped")
	require.NoError(t, tr.SetLocale("de"))
	german := tr.T("game.stopped")

	assert.NotEqual(t, english, german)
	assert.Contains(t, german, "Quiz")
}

func TestTranslatorRejectsUnknownLocale(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	err = tr.SetLocale("klingon")
	assert.ErrorIs(t, err, domain.ErrUnknownLocale)

	// The active locale is unchanged after a rejected switch.
	assert.Equal(t, "The quiz has stopped.", tr.T("game.stopped"))
}

func TestNewRejectsUnknownDefaultLocale(t *testing.T) {
	_, err := New("xx-unknown")
	assert.ErrorIs(t, err, domain.ErrUnknownLocale)
}

func TestNewFromFSValidatesCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"locale mismatch", `{"locale": "fr", "messages": {"k": "v"}}`},
		{"missing messages", `{"locale": "en"}`},
		{"invalid json", `{nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"locales/en.json": &fstest.MapFile{Data: []byte(tt.content)},
			}
			_, err := NewFromFS(fsys, "en")
			assert.Error(t, err)
		})
	}
}

func TestEveryLocaleCoversEveryKey(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)

	keys := []string{
		"game.started", "game.question", "game.tip", "game.timeout",
		"game.correct", "game.stopped", "game.stopped_inactive",
		"lang.changed", "lang.help", "stats.user", "stats.unknown",
		"top.header", "top.entry", "help.general",
	}

	for _, code := range tr.Locales() {
		require.NoError(t, tr.SetLocale(code))
		for _, key := range keys {
			rendered := tr.T(key, "x", 1, 2, 3, 4, 5)
			assert.NotEqual(t, key, rendered, "locale %s must define %s", code, key)
		}
	}
}
