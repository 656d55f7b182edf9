// Package session holds the picker state and the pure transition function
// that applies input events to it.
package session

import (
	"unicode/utf8"

	"github.com/rnwolfe/fuhl/internal/fuzzy"
)

// Kind identifies an input event.
type Kind int

const (
	KindOther Kind = iota
	KindChar
	KindBackspace
	KindUp
	KindDown
	KindCancel
	KindAccept
)

func (k Kind) String() string {
	switch k {
	case KindChar:
		return "char"
	case KindBackspace:
		return "backspace"
	case KindUp:
		return "up"
	case KindDown:
		return "down"
	case KindCancel:
		return "cancel"
	case KindAccept:
		return "accept"
	default:
		return "other"
	}
}

// Event is a discrete input event.
type Event struct {
	Kind Kind
	Rune rune // set for KindChar
}

// Char returns the event for typing r.
func Char(r rune) Event { return Event{Kind: KindChar, Rune: r} }

// Convenience events.
var (
	Backspace = Event{Kind: KindBackspace}
	Up        = Event{Kind: KindUp}
	Down      = Event{Kind: KindDown}
	Cancel    = Event{Kind: KindCancel}
	Accept    = Event{Kind: KindAccept}
	Other     = Event{Kind: KindOther}
)

// Outcome tells the loop whether to keep going.
type Outcome int

const (
	Continue Outcome = iota
	Selected
	Canceled
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Canceled:
		return "canceled"
	default:
		return "continue"
	}
}

// State is the picker state between two frames.
//
// Selection is always a valid position in View, or 0 when View is empty.
type State struct {
	Query     string
	Selection int
	View      fuzzy.View
}

// New returns the initial state for src: empty query, first item selected.
func New(src fuzzy.Source) State {
	return State{}.Refresh(src)
}

// Refresh re-ranks src against the current query and clamps the selection.
func (s State) Refresh(src fuzzy.Source) State {
	s.View = fuzzy.Rank(s.Query, src)
	s.Selection = clamp(s.Selection, len(s.View))
	return s
}

// Chosen returns the candidate index under the selection, if any.
func (s State) Chosen() (int, bool) {
	if len(s.View) == 0 {
		return 0, false
	}
	return s.View[s.Selection].Index, true
}

// Dispatch applies ev to s and reports whether the session should end.
// It never fails: every event is valid in every state.
//
// Accept on an empty view is a no-op and the session continues.
func Dispatch(s State, ev Event, src fuzzy.Source) (State, Outcome) {
	switch ev.Kind {
	case KindChar:
		s.Query += string(ev.Rune)
		s.Selection = 0
		return s.Refresh(src), Continue

	case KindBackspace:
		if _, size := utf8.DecodeLastRuneInString(s.Query); size > 0 {
			s.Query = s.Query[:len(s.Query)-size]
		}
		s.Selection = 0
		return s.Refresh(src), Continue

	case KindUp:
		s.Selection = max(s.Selection-1, 0)
		return s, Continue

	case KindDown:
		if len(s.View) > 0 {
			s.Selection = min(s.Selection+1, len(s.View)-1)
		}
		return s, Continue

	case KindCancel:
		return s, Canceled

	case KindAccept:
		if len(s.View) == 0 {
			return s, Continue
		}
		return s, Selected
	}
	return s, Continue
}

func clamp(sel, n int) int {
	if n == 0 || sel < 0 {
		return 0
	}
	if sel >= n {
		return n - 1
	}
	return sel
}
