package domain

import "time"

// Mastery thresholds for words. A word counts as learned once the user
// has answered it correctly at least LearnedMinCorrect times in total
// and the current streak is at least LearnedMinStreak. These are fixed
// policy constants, not user-configurable.
const (
	LearnedMinCorrect = 3
	LearnedMinStreak  = 2
)

// CardStat holds a user's accumulated answer statistics for one word.
// A missing stat is equivalent to the zero value: stats are created
// lazily on the first graded answer and only ever mutated by grading.
type CardStat struct {
	Seen      int       `json:"seen"`
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
	Streak    int       `json:"streak"`
	LastSeen  time.Time `json:"last_seen"`
}

// Learned reports whether the word satisfies the mastery predicate.
func (s CardStat) Learned() bool {
	return s.Correct >= LearnedMinCorrect && s.Streak >= LearnedMinStreak
}

// Apply folds one graded answer into the stat and returns the result.
// Seen always increments; a correct answer extends the streak, an
// incorrect one resets it to zero.
func (s CardStat) Apply(correct bool, now time.Time) CardStat {
	s.Seen++
	if correct {
		s.Correct++
		s.Streak++
	} else {
		s.Incorrect++
		s.Streak = 0
	}
	s.LastSeen = now
	return s
}

// VerbStat holds a user's accumulated attempt statistics for one verb.
// Mastered counts attempts where all five forms were correct; per-
// pronoun correctness is not persisted separately.
type VerbStat struct {
	Seen     int       `json:"seen"`
	Mastered int       `json:"mastered"`
	LastSeen time.Time `json:"last_seen"`
}

// IsMastered reports whether the verb has ever had a fully-correct
// attempt.
func (s VerbStat) IsMastered() bool {
	return s.Mastered > 0
}

// Apply folds one graded attempt into the stat and returns the result.
func (s VerbStat) Apply(allCorrect bool, now time.Time) VerbStat {
	s.Seen++
	if allCorrect {
		s.Mastered++
	}
	s.LastSeen = now
	return s
}
