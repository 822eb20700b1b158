package bank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileTextRoundTrip(t *testing.T) {
	path := writeFile(t, t.TempDir(), "math.txt", `2+2?\4`)

	questions, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "2+2?", questions[0].Prompt)
	require.Len(t, questions[0].Answers, 1)
	assert.True(t, questions[0].Matches("4"))
	assert.True(t, questions[0].Matches("  4 "))
}

func TestLoadFileTextTrimsAnswer(t *testing.T) {
	path := writeFile(t, t.TempDir(), "q.txt", "Capital of France?\\  Paris  \n")

	questions, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Paris", questions[0].Answers[0])
}

func TestLoadFileTextSkipsMalformedLines(t *testing.T) {
	content := "good question?\\yes\n" +
		"no separator on this line\n" +
		"\n" +
		"\\answer without prompt\n" +
		"prompt without answer\\\n" +
		"another good one?\\sure\n"
	path := writeFile(t, t.TempDir(), "mixed.txt", content)

	questions, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, questions, 2, "malformed lines are skipped, load continues")
	assert.Equal(t, "good question?", questions[0].Prompt)
	assert.Equal(t, "another good one?", questions[1].Prompt)
}

func TestLoadFileJSON(t *testing.T) {
	content := `[
		{"prompt": "Capital of France?", "answers": ["Paris", "paname"], "tip": "starts with P"},
		{"prompt": "2+2?", "answers": ["4"]}
	]`
	path := writeFile(t, t.TempDir(), "bank.json", content)

	questions, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Capital of France?", questions[0].Prompt)
	assert.Equal(t, []string{"Paris", "paname"}, questions[0].Answers)
	assert.Equal(t, "starts with P", questions[0].Tip)
	assert.Empty(t, questions[1].Tip)
}

func TestLoadFileJSONSkipsMalformedRecords(t *testing.T) {
	content := `[
		{"prompt": "", "answers": ["orphan"]},
		{"prompt": "no answers?"},
		{"prompt": "ok?", "answers": ["", "  ", "yes"]}
	]`
	path := writeFile(t, t.TempDir(), "bank.json", content)

	questions, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, []string{"yes"}, questions[0].Answers)
}

func TestLoadFileJSONInvalidSyntaxFails(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.json", `{not json]`)

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileUnknownExtensionSkipped(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.md", "not a bank")

	questions, err := LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestLoadDirMergesRecognizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "first?\\1\n")
	writeFile(t, dir, "b.json", `[{"prompt": "second?", "answers": ["2"]}]`)
	writeFile(t, dir, "readme.md", "ignored")

	questions, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "first?", questions[0].Prompt, "files load in name order")
	assert.Equal(t, "second?", questions[1].Prompt)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
