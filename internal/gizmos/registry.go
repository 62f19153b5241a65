// vi: sw=4 ts=4:

/*

	Mnemonic:	registry
	Abstract:	The single server-state value the four SS request handlers
				operate against (design note 9: "encapsulate them in a
				single server-state value passed through handlers, rather
				than as free-floating statics, to make testing possible
				without process isolation"). No locking: callers are
				expected to drive a *Registry from exactly one goroutine,
				the way every tegu manager (Agent_mgr, Network_mgr, ...)
				owns its state and is only ever touched from its own
				dispatch loop.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package gizmos

import "fmt"

type nameKey struct {
	prefix string
	action string
}

// Registry is the authoritative index of transition names, the roster of
// registered processes, and the sensitivity matrix linking them.
type Registry struct {
	strings     []*TransitionString
	stringIndex map[nameKey]int

	processes map[string]*Process

	transitions map[int]*Transition

	waitingForUpdate int
}

// NewRegistry returns an empty registry, ready to accept alphabets.
func NewRegistry() *Registry {
	return &Registry{
		stringIndex: make(map[nameKey]int),
		processes:   make(map[string]*Process),
		transitions: make(map[int]*Transition),
	}
}

// WaitingForUpdate returns the global quiescence counter (spec.md sec 3's
// invariant: it always equals the number of processes with
// WaitingForUpdate == true).
func (r *Registry) WaitingForUpdate() int {
	return r.waitingForUpdate
}

// TransitionStrings returns the ordered, insertion-indexed set of known
// transition names. The returned slice is owned by the registry and must
// not be mutated by the caller.
func (r *Registry) TransitionStrings() []*TransitionString {
	return r.strings
}

// Process looks up a registered process by endpoint; returns nil if none.
func (r *Registry) Process(endpoint string) *Process {
	return r.processes[endpoint]
}

// Transition looks up a transition by its dense index; returns nil if none
// has ever been mentioned.
func (r *Registry) Transition(index int) *Transition {
	return r.transitions[index]
}

// internString finds or creates the TransitionString for (prefix, action),
// mirroring insert_transition_string: first-seen combinations get the next
// dense index, repeats resolve to the existing one.
func (r *Registry) internString(prefix, action string) *TransitionString {
	key := nameKey{prefix: prefix, action: action}
	if idx, ok := r.stringIndex[key]; ok {
		return r.strings[idx]
	}

	ts := &TransitionString{
		Index:  len(r.strings),
		Prefix: prefix,
		Action: action,
	}
	r.strings = append(r.strings, ts)
	r.stringIndex[key] = ts.Index
	return ts
}

// transitionFor returns (creating if necessary) the Transition for a dense
// index. Transitions persist for the registry's lifetime even once their
// participant list empties (spec.md sec 4.1.4: "TransitionStrings and
// Transitions persist even when their participant list becomes empty").
func (r *Registry) transitionFor(index int) *Transition {
	t, ok := r.transitions[index]
	if !ok {
		t = &Transition{Index: index}
		r.transitions[index] = t
	}
	return t
}

// AddAlphabet registers prefix/actions for endpoint and returns the dense
// transition index assigned to each action, in order (spec.md sec
// 4.1.1). A process re-announcing its alphabet without first calling
// Delete is a protocol error. Duplicate actions within a single call are
// rejected outright, since accepting them would break the "no duplicate
// participation" invariant (spec.md sec 3, sec 4.1.1 edge cases). Either
// every action is registered, or none are -- partial failure leaves the
// registry exactly as it was.
func (r *Registry) AddAlphabet(endpoint, prefix string, actions []string, fifoPath string) ([]int, error) {
	if endpoint == "" || prefix == "" {
		return nil, fmt.Errorf("%w: empty endpoint or prefix", ErrMalformedRequest)
	}
	if _, exists := r.processes[endpoint]; exists {
		return nil, fmt.Errorf("%w: process %s already registered, delete first", ErrInvalidArgument, endpoint)
	}

	seen := make(map[string]struct{}, len(actions))
	for _, a := range actions {
		if a == "" {
			return nil, fmt.Errorf("%w: empty action string", ErrMalformedRequest)
		}
		if _, dup := seen[a]; dup {
			return nil, fmt.Errorf("%w: duplicate action %q in one alphabet call", ErrInvalidArgument, a)
		}
		seen[a] = struct{}{}
	}

	proc := &Process{
		Endpoint:      endpoint,
		FifoPath:      fifoPath,
		Sensitivities: make([]*Sensitivity, 0, len(actions)),
	}

	indices := make([]int, len(actions))
	for i, action := range actions {
		ts := r.internString(prefix, action)
		transition := r.transitionFor(ts.Index)

		slot := len(proc.Sensitivities)
		proc.Sensitivities = append(proc.Sensitivities, &Sensitivity{})
		proc.TransitionIndices = append(proc.TransitionIndices, ts.Index)
		transition.Participants = append(transition.Participants, Participant{Process: proc, Slot: slot})

		indices[i] = ts.Index
	}

	r.processes[endpoint] = proc
	return indices, nil
}

// UpdateSensitivities sets the caller's sensitivity vector wholesale
// (spec.md sec 4.1.2). If the process was waiting-for-update its flag is
// cleared and the global quiescence counter decremented. A vector
// identical to the process's current one is a no-op in effect (spec.md sec
// 8's round-trip property) -- it is still applied, just without changing
// any observable value.
func (r *Registry) UpdateSensitivities(endpoint string, vector []bool) error {
	proc, ok := r.processes[endpoint]
	if !ok {
		return fmt.Errorf("%w: unknown process %s", ErrMalformedRequest, endpoint)
	}
	if len(vector) != len(proc.Sensitivities) {
		return fmt.Errorf("%w: got %d sensitivities, process has %d", ErrMalformedRequest, len(vector), len(proc.Sensitivities))
	}

	for i, v := range vector {
		proc.Sensitivities[i].Sensitive = v
	}

	if proc.WaitingForUpdate {
		proc.WaitingForUpdate = false
		r.waitingForUpdate--
	}

	return nil
}

// Notifier delivers one firing to a participant's notification channel,
// returning an error if the delivery could not be completed (e.g. the
// FIFO could not be opened or written). Synchronise stops at the first
// failure.
type Notifier func(p *Process, transitionIndex int) error

// Synchronise fires transitionIndex iff the registry is quiescent
// (waitingForUpdate == 0) and every participant is currently sensitive
// (spec.md sec 4.1.3, sec 9's explicit "fire iff ∀ participants p:
// p.sensitive"). Participants are notified in participant-list order,
// which is registration order (spec.md sec 5). A transition with zero
// participants fires vacuously: no notifications, no state change,
// success (spec.md sec 8, recommended resolution). A notifier failure
// aborts the remaining notifications; participants already notified stay
// marked waiting-for-update (spec.md sec 7's documented limitation --
// recovery is an operator concern, not retried here).
func (r *Registry) Synchronise(transitionIndex int, notify Notifier) error {
	if r.waitingForUpdate != 0 {
		return fmt.Errorf("%w: %d process(es) still owe an update", ErrPreconditionViolated, r.waitingForUpdate)
	}

	t, ok := r.transitions[transitionIndex]
	if !ok {
		return fmt.Errorf("%w: unknown transition index %d", ErrInvalidArgument, transitionIndex)
	}

	for _, p := range t.Participants {
		if !p.Sensitivity().Sensitive {
			return fmt.Errorf("%w: transition %d not sensitive for all participants", ErrPreconditionViolated, transitionIndex)
		}
	}

	for _, p := range t.Participants {
		if err := notify(p.Process, transitionIndex); err != nil {
			return fmt.Errorf("%w: %s", ErrTransientIO, err)
		}
		p.Process.WaitingForUpdate = true
		r.waitingForUpdate++
	}

	return nil
}

// DeleteProcess removes endpoint's Process, unlinking each of its
// Sensitivities from their Transition's participant list first (spec.md
// sec 4.1.4) so the "no duplicate participation" / "double membership"
// invariants never observe a dangling reference. TransitionStrings and
// Transitions are never removed -- their indices must remain stable across
// re-registrations.
func (r *Registry) DeleteProcess(endpoint string) error {
	proc, ok := r.processes[endpoint]
	if !ok {
		return fmt.Errorf("%w: unknown process %s", ErrMalformedRequest, endpoint)
	}

	for _, idx := range proc.TransitionIndices {
		if t, ok := r.transitions[idx]; ok {
			removeParticipantsOf(t, proc)
		}
	}

	if proc.WaitingForUpdate {
		r.waitingForUpdate--
	}

	delete(r.processes, endpoint)
	return nil
}

// removeParticipantsOf drops every participant entry belonging to proc
// from t's participant list, preserving the order of the rest.
func removeParticipantsOf(t *Transition, proc *Process) {
	kept := t.Participants[:0]
	for _, p := range t.Participants {
		if p.Process != proc {
			kept = append(kept, p)
		}
	}
	t.Participants = kept
}
