// Package session implements the client-side session state machine: a
// bounded run of questions with aggregate scoring. A Coordinator is
// confined to a single client; it never touches persisted mastery state
// and needs no synchronization across requests.
package session

import (
	"errors"
	"slices"

	"github.com/avoronkov/memorizer-api/internal/domain"
)

// Size is the number of graded answers in one session.
const Size = 10

// State is the coordinator's position in the question/answer cycle.
type State string

// Session states. A session moves idle → loading → answering →
// loading → (feedback | finished); feedback loops back to loading for
// the next question, and finished returns to idle on restart.
const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateAnswering State = "answering"
	StateFeedback  State = "feedback"
	StateFinished  State = "finished"
)

// Coordinator errors
var (
	// ErrInvalidTransition is returned when an event arrives in a state
	// that does not accept it, e.g. grading after the session finished.
	ErrInvalidTransition = errors.New("invalid session transition")
)

// Coordinator tracks one client's session: the current state, the
// mode/filter the session was started with, and the running counters.
// It is not safe for concurrent use.
type Coordinator struct {
	state      State
	mode       domain.Mode
	categories []string

	answered int
	correct  int
}

// NewCoordinator returns an idle coordinator for the given mode and
// category filter.
func NewCoordinator(mode domain.Mode, categories []string) *Coordinator {
	return &Coordinator{
		state:      StateIdle,
		mode:       mode,
		categories: slices.Clone(categories),
	}
}

// State returns the current state.
func (c *Coordinator) State() State {
	return c.state
}

// Answered returns the number of graded answers this session.
func (c *Coordinator) Answered() int {
	return c.answered
}

// Correct returns the number of correct answers this session.
func (c *Coordinator) Correct() int {
	return c.correct
}

// Mode returns the mode the session was started with.
func (c *Coordinator) Mode() domain.Mode {
	return c.mode
}

// Categories returns the category filter the session was started with.
func (c *Coordinator) Categories() []string {
	return slices.Clone(c.categories)
}

// BeginFetch marks the start of a question fetch. Valid from idle (the
// first question) and from feedback (the next question).
func (c *Coordinator) BeginFetch() error {
	switch c.state {
	case StateIdle, StateFeedback:
		c.state = StateLoading
		return nil
	default:
		return ErrInvalidTransition
	}
}

// QuestionReceived marks a successful fetch; the client is now
// answering.
func (c *Coordinator) QuestionReceived() error {
	if c.state != StateLoading {
		return ErrInvalidTransition
	}
	c.state = StateAnswering
	return nil
}

// FetchFailed returns the coordinator to idle after a failed fetch. No
// counter changes: nothing was graded.
func (c *Coordinator) FetchFailed() error {
	if c.state != StateLoading {
		return ErrInvalidTransition
	}
	c.state = StateIdle
	return nil
}

// BeginSubmit marks the submission of an answer for grading.
func (c *Coordinator) BeginSubmit() error {
	if c.state != StateAnswering {
		return ErrInvalidTransition
	}
	c.state = StateLoading
	return nil
}

// Graded folds one grading result into the session counters. The
// session finishes when the answer count reaches Size; otherwise the
// coordinator shows feedback and awaits the next fetch.
func (c *Coordinator) Graded(correct bool) error {
	if c.state != StateLoading {
		return ErrInvalidTransition
	}

	c.answered++
	if correct {
		c.correct++
	}

	if c.answered >= Size {
		c.state = StateFinished
	} else {
		c.state = StateFeedback
	}
	return nil
}

// SetMode switches the session's mode. Any change forces a full reset:
// counters accumulated under the old mode must never be attributed to
// the new one.
func (c *Coordinator) SetMode(mode domain.Mode) {
	if mode == c.mode {
		return
	}
	c.mode = mode
	c.reset()
}

// SetCategories switches the session's category filter. Any change
// forces a full reset, same as SetMode.
func (c *Coordinator) SetCategories(categories []string) {
	if slices.Equal(categories, c.categories) {
		return
	}
	c.categories = slices.Clone(categories)
	c.reset()
}

// Restart begins a new session after the previous one finished.
func (c *Coordinator) Restart() error {
	if c.state != StateFinished {
		return ErrInvalidTransition
	}
	c.reset()
	return nil
}

func (c *Coordinator) reset() {
	c.state = StateIdle
	c.answered = 0
	c.correct = 0
}
