package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronkov/memorizer-api/internal/domain"
)

func writeFixture(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func validWords() []domain.Word {
	return []domain.Word{
		{ID: 1, PT: "casa", RU: "дом", Category: "home"},
		{ID: 2, PT: "pão", RU: "хлеб", Category: "food"},
		{ID: 3, PT: "água", RU: "вода", Category: "food"},
		{ID: 4, PT: "obrigado", RU: "спасибо"},
	}
}

func validVerbs() []domain.Verb {
	return []domain.Verb{
		{
			ID:         1,
			Infinitive: "ser",
			Forms:      map[string]string{"eu": "sou", "tu": "és", "ele": "é", "nos": "somos", "eles": "são"},
		},
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	wordsPath := writeFixture(t, dir, "words.json", validWords())
	verbsPath := writeFixture(t, dir, "verbs.json", validVerbs())

	cat, err := Load(wordsPath, verbsPath)
	require.NoError(t, err)

	assert.Len(t, cat.Words(nil), 4)
	assert.Len(t, cat.Verbs(), 1)
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	words := append(validWords(), domain.Word{ID: 1, PT: "dup", RU: "дубль"})
	wordsPath := writeFixture(t, dir, "words.json", words)
	verbsPath := writeFixture(t, dir, "verbs.json", validVerbs())

	_, err := Load(wordsPath, verbsPath)
	assert.ErrorContains(t, err, "duplicate word ID")
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	words := append(validWords(), domain.Word{ID: 9, PT: "", RU: "пусто"})
	wordsPath := writeFixture(t, dir, "words.json", words)
	verbsPath := writeFixture(t, dir, "verbs.json", validVerbs())

	_, err := Load(wordsPath, verbsPath)
	assert.ErrorContains(t, err, "invalid word")
}

func TestLoadRejectsCorruptJSON(t *testing.T) {
	dir := t.TempDir()
	wordsPath := filepath.Join(dir, "words.json")
	require.NoError(t, os.WriteFile(wordsPath, []byte("{not json"), 0o644))
	verbsPath := writeFixture(t, dir, "verbs.json", validVerbs())

	_, err := Load(wordsPath, verbsPath)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	verbsPath := writeFixture(t, dir, "verbs.json", validVerbs())

	_, err := Load(filepath.Join(dir, "absent.json"), verbsPath)
	assert.Error(t, err)
}

func TestWordsCategoryFilter(t *testing.T) {
	dir := t.TempDir()
	cat, err := Load(
		writeFixture(t, dir, "words.json", validWords()),
		writeFixture(t, dir, "verbs.json", validVerbs()),
	)
	require.NoError(t, err)

	food := cat.Words([]string{"food"})
	assert.Len(t, food, 2)
	for _, w := range food {
		assert.Equal(t, "food", w.Category)
	}

	both := cat.Words([]string{"home", "food"})
	assert.Len(t, both, 3)

	assert.Empty(t, cat.Words([]string{"nonexistent"}))
	assert.Len(t, cat.Words(nil), 4, "empty filter returns everything")
}

func TestLookupsByID(t *testing.T) {
	dir := t.TempDir()
	cat, err := Load(
		writeFixture(t, dir, "words.json", validWords()),
		writeFixture(t, dir, "verbs.json", validVerbs()),
	)
	require.NoError(t, err)

	w, err := cat.WordByID(1)
	require.NoError(t, err)
	assert.Equal(t, "casa", w.PT)

	_, err = cat.WordByID(999)
	assert.ErrorIs(t, err, domain.ErrWordNotFound)

	v, err := cat.VerbByID(1)
	require.NoError(t, err)
	assert.Equal(t, "ser", v.Infinitive)

	_, err = cat.VerbByID(999)
	assert.ErrorIs(t, err, domain.ErrVerbNotFound)
}

func TestCategories(t *testing.T) {
	dir := t.TempDir()
	cat, err := Load(
		writeFixture(t, dir, "words.json", validWords()),
		writeFixture(t, dir, "verbs.json", validVerbs()),
	)
	require.NoError(t, err)

	// Uncategorized words contribute no label; duplicates collapse.
	assert.Equal(t, []string{"home", "food"}, cat.Categories())
}
