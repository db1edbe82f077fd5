package training

import (
	"errors"
	"math/rand"

	"github.com/samber/lo"

	"github.com/avoronkov/memorizer-api/internal/domain"
)

// Option count bounds for choice modes. Requests outside the range are
// clamped at the API boundary before reaching the generator.
const (
	MinOptions = 2
	MaxOptions = 6
)

// Generator errors
var (
	// ErrEmptyPool is returned when the candidate pool is empty, e.g.
	// because a category filter matched no words.
	ErrEmptyPool = errors.New("candidate pool is empty")

	// ErrInsufficientPool is returned in choice modes when the pool
	// holds fewer than two distinct answer texts, making it impossible
	// to show the correct answer next to at least one distractor.
	ErrInsufficientPool = errors.New("candidate pool too small for choice options")

	// ErrOptionCountTooSmall is returned when a choice question is
	// requested with fewer than MinOptions options.
	ErrOptionCountTooSmall = errors.New("option count must be at least 2")
)

// NewWordQuestion samples one question from pool. The item is chosen
// uniformly at random, independent of any progress statistics. For
// choice modes the returned options contain the correct answer exactly
// once among optionCount-1 distractors (fewer if the pool is smaller),
// in shuffled order. Input modes return the prompt alone.
//
// The random source is injected so tests can seed it; rng must not be
// shared across goroutines without external locking.
func NewWordQuestion(
	rng *rand.Rand,
	pool []domain.Word,
	mode domain.Mode,
	optionCount int,
) (*domain.Question, error) {
	if !mode.IsWord() {
		return nil, domain.ErrInvalidMode
	}

	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	word := pool[rng.Intn(len(pool))]

	question := &domain.Question{
		ItemID: word.ID,
		Mode:   mode,
		Prompt: mode.Prompt(word),
	}

	if !mode.IsChoice() {
		return question, nil
	}

	if optionCount < MinOptions {
		return nil, ErrOptionCountTooSmall
	}

	options, err := buildOptions(rng, pool, word, mode, optionCount)
	if err != nil {
		return nil, err
	}
	question.Options = options

	return question, nil
}

// NewVerbQuestion samples one verb uniformly at random and returns its
// infinitive as the prompt. The expected answer is the full pronoun
// form mapping, so no options are constructed.
func NewVerbQuestion(rng *rand.Rand, pool []domain.Verb) (*domain.Question, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	verb := pool[rng.Intn(len(pool))]

	return &domain.Question{
		ItemID: verb.ID,
		Mode:   domain.ModeVerbs,
		Prompt: verb.Infinitive,
	}, nil
}

// buildOptions assembles the shuffled option list for a choice
// question: the correct answer plus up to optionCount-1 distractors
// sampled without replacement from the other pool items' answer-side
// texts. Duplicate texts are removed before sampling so no two options
// read the same.
func buildOptions(
	rng *rand.Rand,
	pool []domain.Word,
	word domain.Word,
	mode domain.Mode,
	optionCount int,
) ([]string, error) {
	correct := mode.Answer(word)

	distractors := lo.Uniq(lo.FilterMap(pool, func(w domain.Word, _ int) (string, bool) {
		text := mode.Answer(w)
		return text, w.ID != word.ID && text != correct
	}))

	if len(distractors) == 0 {
		return nil, ErrInsufficientPool
	}

	// Sample without replacement, clamped to the available distractors.
	k := optionCount - 1
	if k > len(distractors) {
		k = len(distractors)
	}
	options := make([]string, 0, k+1)
	for _, idx := range rng.Perm(len(distractors))[:k] {
		options = append(options, distractors[idx])
	}

	options = append(options, correct)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options, nil
}
