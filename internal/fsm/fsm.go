// vi: sw=4 ts=4:

/*

	Mnemonic:	fsm
	Abstract:	The client driver's automaton: states, transitions, and the
				packed alphabet string table, ported from
				original_source/minix/eniac/GFSP/data_structures.h's
				FsmState/FsmTransition/FsmProcess. Go's append/slice take
				the place of the original's realloc'd alphabet_strings
				block and calloc'd transition arrays, but the shape --
				dense local alphabet indices bound to global
				Synchronisation Server transition indices by BindAlphabet
				-- is unchanged.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package fsm

import (
	"github.com/cockroachdb/errors"

	"github.com/att/rendez/internal/logging"
)

// ErrNotBound is returned by ChangeState before BindAlphabet has supplied
// the local-to-global transition index mapping. Sensitivities works on
// local indices only and does not need the mapping.
var ErrNotBound = errors.New("alphabet not yet bound to synchronisation server indices")

// ErrUnknownTransition is returned when ChangeState is asked to fire a
// global transition index the automaton's alphabet never registered.
var ErrUnknownTransition = errors.New("transition index not in process alphabet")

// Transition is one (action, destination) edge out of a state, keyed by the
// automaton-local alphabet index (not the Synchronisation Server's global
// index -- see fsm_parser.c's transition_index, which is always local).
type Transition struct {
	ActionIndex int
	NextState   int
}

// State is one FSM state's outgoing edges, in file order.
type State struct {
	Transitions []Transition
}

// Automaton is a single client's parsed .aut file plus the runtime state
// GFSP's main.c keeps alongside it: the current state and the local-to-SS
// alphabet index mapping filled in once AddAlphabet has replied.
type Automaton struct {
	States       []State
	CurrentState int

	// Alphabet holds each action string in first-seen order; its index is
	// the automaton-local alphabet index used by Transition.ActionIndex.
	Alphabet []string

	// ssIndex[i] is the global Synchronisation Server transition index
	// for Alphabet[i], set once by BindAlphabet. Nil until bound.
	ssIndex []int
}

// BindAlphabet records the global transition indices the Synchronisation
// Server assigned to this automaton's alphabet, in the same order Alphabet
// was built -- the Go analogue of main.c's init_process copying
// ss_add_alphabet's reply into process->alphabet_transitions.
func (a *Automaton) BindAlphabet(ssIndices []int) error {
	if len(ssIndices) != len(a.Alphabet) {
		return errors.Newf("bind alphabet: got %d indices for %d-action alphabet", len(ssIndices), len(a.Alphabet))
	}
	a.ssIndex = append(make([]int, 0, len(ssIndices)), ssIndices...)
	return nil
}

// ChangeState applies the effect of firing the global transition index
// received over the notification FIFO, mirroring change_state: translate
// the global index to a local alphabet index, then scan the current
// state's transition list for a matching edge. The original's loop never
// breaks on a match, so when a state lists the same action more than once
// the LAST matching edge in file order wins; ChangeState preserves that.
func (a *Automaton) ChangeState(globalTransitionIndex int) error {
	if a.ssIndex == nil {
		return ErrNotBound
	}

	localIndex := -1
	for i, ss := range a.ssIndex {
		if ss == globalTransitionIndex {
			localIndex = i
			break
		}
	}
	if localIndex == -1 {
		return errors.Wrapf(ErrUnknownTransition, "global index %d", globalTransitionIndex)
	}

	state := &a.States[a.CurrentState]
	matched := false
	for _, t := range state.Transitions {
		if t.ActionIndex == localIndex {
			a.CurrentState = t.NextState
			matched = true
		}
	}
	if !matched {
		return errors.Wrapf(ErrUnknownTransition, "action %q not enabled in state %d", a.Alphabet[localIndex], a.CurrentState)
	}
	return nil
}

// Sensitivities computes the boolean vector over the whole alphabet for the
// current state, mirroring update_sensitivites: true at every alphabet
// index the current state has an outgoing edge for, false elsewhere.
func (a *Automaton) Sensitivities() []bool {
	vec := make([]bool, len(a.Alphabet))
	for _, t := range a.States[a.CurrentState].Transitions {
		vec[t.ActionIndex] = true
	}
	return vec
}

// Dump logs every (state, action, next-state) edge and the alphabet-index
// to Synchronisation-Server-index mapping, the Go equivalent of
// fsm_print's two printf loops -- operator visibility into what got parsed
// and how it was bound, routed through the caller's logger instead of
// stdout.
func (a *Automaton) Dump(log *logging.Sheep) {
	for stateIdx, state := range a.States {
		for _, t := range state.Transitions {
			log.Baa(1, "(%d, %d, %d)", stateIdx, t.ActionIndex, t.NextState)
		}
	}
	for i, action := range a.Alphabet {
		ss := -1
		if i < len(a.ssIndex) {
			ss = a.ssIndex[i]
		}
		log.Baa(1, "%d (%s) => %d", i, action, ss)
	}
}
