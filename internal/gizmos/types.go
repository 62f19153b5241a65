// vi: sw=4 ts=4:

/*

	Mnemonic:	types
	Abstract:	The Synchronisation Server's data model: transition names
				interned as dense indices, registered processes, the
				transitions they participate in, and the per-(process,
				transition) sensitivity linking them.  Ported from
				original_source/minix/servers/ss/sync.c's
				TransitionStringItem/ProcessItem/TransitionItem/
				SensitivityItem, following design note 9's option (b): the
				per-transition participant list holds (process, slot)
				references rather than pointers to Sensitivity nodes, so a
				Sensitivity never needs a back-pointer to either its
				Process or its Transition, and the original's hand rolled
				next/next_proc_item/next_transition_item intrusive links
				disappear entirely in favour of plain slices.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package gizmos

// TransitionString is one globally named (prefix, action) pair and the
// dense index the registry assigned it on first sight. Prefix/Action are
// owned copies -- never aliases into a caller's transient wire buffer (see
// SPEC_FULL.md sec 9, resolving the original's ambiguity between the two).
type TransitionString struct {
	Index  int
	Prefix string
	Action string
}

// Sensitivity is the boolean "does this process's current state enable
// this transition" for exactly one (Process, Transition) pair.
type Sensitivity struct {
	Sensitive bool
}

// Process is a single registered client endpoint: its alphabet's
// sensitivity block (contiguous, one slot per action registered via
// AddAlphabet, slot i ordered the same as the i-th action string) and its
// notification FIFO path. TransitionIndices[i] is the global transition
// index that Sensitivities[i] belongs to -- the server-side analogue of
// the client driver's alphabet_transitions array (spec.md sec 4.2.2).
type Process struct {
	Endpoint         string
	FifoPath         string
	Sensitivities    []*Sensitivity
	TransitionIndices []int
	WaitingForUpdate bool
}

// Participant is one (process, slot) reference held in a Transition's
// participant list; it never owns the Sensitivity, only names where to
// find it (Process.Sensitivities[Slot]).
type Participant struct {
	Process *Process
	Slot    int
}

// Transition is the participant list for one dense transition index --
// every process that has this transition somewhere in its alphabet, in the
// order each called AddAlphabet.
type Transition struct {
	Index        int
	Participants []Participant
}

// Sensitivity returns the Sensitivity this participant reference names.
func (p Participant) Sensitivity() *Sensitivity {
	return p.Process.Sensitivities[p.Slot]
}
