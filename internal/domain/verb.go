package domain

import (
	"errors"
	"fmt"
)

// Verb-specific validation errors
var (
	// ErrVerbIDInvalid is returned when a verb has a non-positive ID.
	ErrVerbIDInvalid = errors.New("verb ID must be positive")

	// ErrVerbInfinitiveEmpty is returned when a verb has no infinitive.
	ErrVerbInfinitiveEmpty = errors.New("verb infinitive cannot be empty")

	// ErrVerbFormMissing is returned when a conjugated form is absent or
	// empty for one of the five pronouns.
	ErrVerbFormMissing = errors.New("verb form missing for pronoun")
)

// Pronouns lists the pronoun keys every verb must be conjugated for, in
// presentation order. The order matters to clients rendering the
// conjugation table and to verb grading, which reports results per
// pronoun.
var Pronouns = []string{"eu", "tu", "ele", "nos", "eles"}

// Verb is a single conjugation card: an infinitive plus its present
// tense form for each pronoun in Pronouns. Like words, verbs are
// immutable reference data.
type Verb struct {
	ID         int64             `json:"id"`
	Infinitive string            `json:"infinitive"`
	Forms      map[string]string `json:"forms"`
}

// Validate checks that the verb carries a positive ID, an infinitive,
// and a non-empty form for all five pronouns.
func (v Verb) Validate() error {
	if v.ID <= 0 {
		return ErrVerbIDInvalid
	}

	if v.Infinitive == "" {
		return ErrVerbInfinitiveEmpty
	}

	for _, p := range Pronouns {
		if v.Forms[p] == "" {
			return fmt.Errorf("%w: %s", ErrVerbFormMissing, p)
		}
	}

	return nil
}
