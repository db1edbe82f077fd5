// Package training implements the pure training algorithms: question
// sampling with distractor construction, and answer grading. The
// package has no storage or transport dependencies; the service layer
// supplies candidate pools and persists stat updates.
package training

import (
	"strings"

	"github.com/avoronkov/memorizer-api/internal/domain"
)

// GradeResult is the outcome of grading one word answer. CorrectAnswer
// always carries the canonical target text so the client can display it
// whether or not the submission matched.
type GradeResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// VerbGradeResult is the outcome of grading one verb conjugation
// attempt. Results and CorrectForms are keyed by pronoun; AllCorrect is
// the conjunction over all five pronouns.
type VerbGradeResult struct {
	VerbID       int64             `json:"verb_id"`
	Infinitive   string            `json:"infinitive"`
	Results      map[string]bool   `json:"results"`
	CorrectForms map[string]string `json:"correct_forms"`
	AllCorrect   bool              `json:"all_correct"`
}

// Normalize canonicalizes text for comparison: lower-cased, trimmed,
// with runs of inner whitespace collapsed to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Match reports whether a submitted answer matches the expected text
// under Normalize. Each word has a single canonical translation; no
// synonym lists are consulted.
func Match(expected, submitted string) bool {
	return Normalize(expected) == Normalize(submitted)
}

// GradeWord grades a submitted translation of w under the given word
// mode. Returns domain.ErrInvalidMode for the verbs mode or an unknown
// mode string.
func GradeWord(w domain.Word, mode domain.Mode, submitted string) (GradeResult, error) {
	if !mode.IsWord() {
		return GradeResult{}, domain.ErrInvalidMode
	}

	expected := mode.Answer(w)
	return GradeResult{
		Correct:       Match(expected, submitted),
		CorrectAnswer: expected,
	}, nil
}

// GradeVerb grades a full conjugation attempt against v. Each pronoun
// is compared independently under Normalize; a pronoun missing from the
// submission grades as incorrect.
func GradeVerb(v domain.Verb, answers map[string]string) VerbGradeResult {
	result := VerbGradeResult{
		VerbID:       v.ID,
		Infinitive:   v.Infinitive,
		Results:      make(map[string]bool, len(domain.Pronouns)),
		CorrectForms: make(map[string]string, len(domain.Pronouns)),
		AllCorrect:   true,
	}

	for _, p := range domain.Pronouns {
		expected := v.Forms[p]
		result.CorrectForms[p] = expected

		ok := answers[p] != "" && Match(expected, answers[p])
		result.Results[p] = ok
		if !ok {
			result.AllCorrect = false
		}
	}

	return result
}
