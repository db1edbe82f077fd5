// Package domain contains the core entities of the trainer: catalog
// words and verbs, per-user progress statistics, and the question model.
package domain

import "errors"

// Word-specific validation errors
var (
	// ErrWordIDInvalid is returned when a word has a non-positive ID.
	ErrWordIDInvalid = errors.New("word ID must be positive")

	// ErrWordTextEmpty is returned when either side of a word pair is empty.
	ErrWordTextEmpty = errors.New("word text cannot be empty on either side")
)

// Word is a single vocabulary card: a Portuguese/Russian text pair with
// an optional category label. Words are immutable reference data loaded
// from the catalog; the engine never mutates them.
type Word struct {
	ID       int64  `json:"id"`
	PT       string `json:"pt"`
	RU       string `json:"ru"`
	Category string `json:"category,omitempty"`
}

// Validate checks that the word carries a positive ID and text on both
// sides. Category is optional.
func (w Word) Validate() error {
	if w.ID <= 0 {
		return ErrWordIDInvalid
	}

	if w.PT == "" || w.RU == "" {
		return ErrWordTextEmpty
	}

	return nil
}
