// Package catalog loads and serves the static word and verb reference
// data. The catalog is read once at startup and is immutable afterward,
// so lookups need no synchronization.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"

	"github.com/avoronkov/memorizer-api/internal/domain"
)

// Catalog holds the loaded reference data with id indexes.
type Catalog struct {
	words     []domain.Word
	verbs     []domain.Verb
	wordsByID map[int64]domain.Word
	verbsByID map[int64]domain.Verb
}

// Load reads and validates the word and verb files. Duplicate IDs and
// entries failing domain validation are rejected so the engine can rely
// on id lookups being unambiguous.
func Load(wordsPath, verbsPath string) (*Catalog, error) {
	var words []domain.Word
	if err := readJSONFile(wordsPath, &words); err != nil {
		return nil, fmt.Errorf("failed to load words catalog: %w", err)
	}

	var verbs []domain.Verb
	if err := readJSONFile(verbsPath, &verbs); err != nil {
		return nil, fmt.Errorf("failed to load verbs catalog: %w", err)
	}

	c := &Catalog{
		words:     words,
		verbs:     verbs,
		wordsByID: make(map[int64]domain.Word, len(words)),
		verbsByID: make(map[int64]domain.Verb, len(verbs)),
	}

	for _, w := range words {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("invalid word %d in %s: %w", w.ID, wordsPath, err)
		}
		if _, dup := c.wordsByID[w.ID]; dup {
			return nil, fmt.Errorf("duplicate word ID %d in %s", w.ID, wordsPath)
		}
		c.wordsByID[w.ID] = w
	}

	for _, v := range verbs {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("invalid verb %d in %s: %w", v.ID, verbsPath, err)
		}
		if _, dup := c.verbsByID[v.ID]; dup {
			return nil, fmt.Errorf("duplicate verb ID %d in %s", v.ID, verbsPath)
		}
		c.verbsByID[v.ID] = v
	}

	return c, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("corrupt catalog file %s: %w", path, err)
	}
	return nil
}

// Words returns the words whose category is in the filter set. An empty
// filter returns the full catalog. The returned slice is shared; callers
// must not mutate it.
func (c *Catalog) Words(categories []string) []domain.Word {
	if len(categories) == 0 {
		return c.words
	}

	wanted := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		wanted[cat] = struct{}{}
	}

	return lo.Filter(c.words, func(w domain.Word, _ int) bool {
		_, ok := wanted[w.Category]
		return ok
	})
}

// WordByID resolves a word by id. Returns domain.ErrWordNotFound for
// unknown ids.
func (c *Catalog) WordByID(id int64) (domain.Word, error) {
	w, ok := c.wordsByID[id]
	if !ok {
		return domain.Word{}, domain.ErrWordNotFound
	}
	return w, nil
}

// Verbs returns all verbs in catalog order. The returned slice is
// shared; callers must not mutate it.
func (c *Catalog) Verbs() []domain.Verb {
	return c.verbs
}

// VerbByID resolves a verb by id. Returns domain.ErrVerbNotFound for
// unknown ids.
func (c *Catalog) VerbByID(id int64) (domain.Verb, error) {
	v, ok := c.verbsByID[id]
	if !ok {
		return domain.Verb{}, domain.ErrVerbNotFound
	}
	return v, nil
}

// Categories returns the distinct non-empty category labels in catalog
// order of first appearance.
func (c *Catalog) Categories() []string {
	return lo.Uniq(lo.FilterMap(c.words, func(w domain.Word, _ int) (string, bool) {
		return w.Category, w.Category != ""
	}))
}
