package domain

import "errors"

// ErrInvalidMode is returned when a question or answer names a mode the
// engine does not support. Unsupported modes are never silently
// defaulted.
var ErrInvalidMode = errors.New("invalid training mode")

// Mode identifies the direction and format of a question.
type Mode string

const (
	// ModePTToRUChoice shows a Portuguese prompt with Russian options.
	ModePTToRUChoice Mode = "pt2ru_choice"

	// ModeRUToPTChoice shows a Russian prompt with Portuguese options.
	ModeRUToPTChoice Mode = "ru2pt_choice"

	// ModePTToRUInput shows a Portuguese prompt and expects a typed
	// Russian answer.
	ModePTToRUInput Mode = "pt2ru_input"

	// ModeRUToPTInput shows a Russian prompt and expects a typed
	// Portuguese answer.
	ModeRUToPTInput Mode = "ru2pt_input"

	// ModeVerbs asks for the full five-pronoun conjugation of a verb.
	ModeVerbs Mode = "verbs"
)

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModePTToRUChoice, ModeRUToPTChoice, ModePTToRUInput, ModeRUToPTInput, ModeVerbs:
		return true
	}
	return false
}

// IsChoice reports whether the mode presents answer options.
func (m Mode) IsChoice() bool {
	return m == ModePTToRUChoice || m == ModeRUToPTChoice
}

// IsWord reports whether the mode grades a single word translation, as
// opposed to a verb conjugation table.
func (m Mode) IsWord() bool {
	return m != ModeVerbs && m.Valid()
}

// Prompt returns the side of the word shown to the user in this mode.
func (m Mode) Prompt(w Word) string {
	if m == ModeRUToPTChoice || m == ModeRUToPTInput {
		return w.RU
	}
	return w.PT
}

// Answer returns the side of the word the user must supply in this
// mode: the mirror of Prompt.
func (m Mode) Answer(w Word) string {
	if m == ModeRUToPTChoice || m == ModeRUToPTInput {
		return w.PT
	}
	return w.RU
}

// Question is one ephemeral practice prompt. It lives for a single
// request/answer round-trip and is never persisted: grading resolves
// the item by ID against the catalog, so client-echoed prompt text is
// never trusted. Options is populated for choice modes only.
type Question struct {
	ItemID  int64    `json:"item_id"`
	Mode    Mode     `json:"mode"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
}
