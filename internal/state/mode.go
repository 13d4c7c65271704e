package state

import (
	"errors"
	"fmt"
)

// ViewMode is the screen currently shown.
type ViewMode int

const (
	ModeUninitialized ViewMode = iota
	ModeScale
	ModeDistance
	ModeCredits

	modeCount
)

// String returns the mode name.
func (m ViewMode) String() string {
	switch m {
	case ModeUninitialized:
		return "uninitialized"
	case ModeScale:
		return "scale"
	case ModeDistance:
		return "distance"
	case ModeCredits:
		return "credits"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(m))
	}
}

// Valid reports whether m is one of the defined modes.
func (m ViewMode) Valid() bool {
	return m >= ModeUninitialized && m < modeCount
}

// MustValid panics if m is out of range. An unknown mode is a programming
// error, never user input.
func (m ViewMode) MustValid() {
	if !m.Valid() {
		panic(fmt.Sprintf("state: view mode %d out of range", int(m)))
	}
}

// Transition errors.
var (
	ErrNotReady          = errors.New("session not initialized")
	ErrInvalidTransition = errors.New("invalid view transition")
)

// Machine records the current view mode. Transitions happen only through
// Request; the menu is the hub between the other modes.
type Machine struct {
	mode        ViewMode
	ready       func() bool
	transitions int
}

// NewMachine returns a machine in ModeUninitialized. ready gates every
// transition; nil means always ready.
func NewMachine(ready func() bool) *Machine {
	if ready == nil {
		ready = func() bool { return true }
	}
	return &Machine{ready: ready}
}

// Mode returns the active mode.
func (m *Machine) Mode() ViewMode {
	return m.mode
}

// Transitions returns how many transitions have been accepted.
func (m *Machine) Transitions() int {
	return m.transitions
}

// CanTransition reports whether from → to is an allowed edge.
func CanTransition(from, to ViewMode) bool {
	from.MustValid()
	to.MustValid()
	if from == ModeUninitialized {
		return to != ModeUninitialized
	}
	return to == ModeUninitialized
}

// Request moves the machine to mode. It fails without changing state when
// the session is not ready or the edge is not allowed.
func (m *Machine) Request(mode ViewMode) error {
	mode.MustValid()
	if !m.ready() {
		return fmt.Errorf("%s -> %s: %w", m.mode, mode, ErrNotReady)
	}
	if !CanTransition(m.mode, mode) {
		return fmt.Errorf("%s -> %s: %w", m.mode, mode, ErrInvalidTransition)
	}
	m.mode = mode
	m.transitions++
	return nil
}
