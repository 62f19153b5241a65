// vi: sw=4 ts=4:

/*

	Mnemonic:	parser
	Abstract:	Parses the .aut automaton format byte-for-byte the way
				fsm_parse does: skip to the first line's two comma-
				separated integers (transition count, state count), then
				read that many "(state,action,state)" triples, interning
				each action string into Alphabet on first sight.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package fsm

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Parse reads the .aut format and returns a ready-to-run Automaton whose
// CurrentState is 0 (fsm_parse never sets current_state explicitly; its
// calloc'd FsmProcess starts zeroed, and GFSP always begins in state 0).
func Parse(input string) (*Automaton, error) {
	idx := strings.IndexByte(input, ',')
	if idx == -1 {
		return nil, errors.New("invalid automaton input: number of transitions not found")
	}
	rest := input[idx+1:]

	numTransitions, rest, err := leadingInt(rest)
	if err != nil {
		return nil, errors.Wrap(err, "invalid automaton input: number of transitions")
	}

	idx = strings.IndexByte(rest, ',')
	if idx == -1 {
		return nil, errors.New("invalid automaton input: number of states not found")
	}
	rest = rest[idx+1:]

	numStates, rest, err := leadingInt(rest)
	if err != nil {
		return nil, errors.Wrap(err, "invalid automaton input: number of states")
	}
	if numStates <= 0 {
		return nil, errors.Newf("invalid automaton input: non-positive state count %d", numStates)
	}

	a := &Automaton{
		States: make([]State, numStates),
	}
	alphabetIndex := make(map[string]int)

	for i := 0; i < numTransitions; i++ {
		open := strings.IndexByte(rest, '(')
		if open == -1 {
			return nil, errors.Newf("invalid automaton input: transition %d: missing '('", i)
		}
		rest = rest[open+1:]

		stateIdx, rest2, err := leadingInt(rest)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid automaton input: transition %d: source state", i)
		}
		rest = rest2

		comma := strings.IndexByte(rest, ',')
		if comma == -1 {
			return nil, errors.Newf("invalid automaton input: transition %d: missing action separator", i)
		}
		rest = rest[comma+1:]

		comma = strings.IndexByte(rest, ',')
		if comma == -1 {
			return nil, errors.Newf("invalid automaton input: transition %d: missing next-state separator", i)
		}
		action := strings.TrimSpace(rest[:comma])
		action = strings.Trim(action, `"`)
		rest = rest[comma+1:]

		nextState, rest2, err := leadingInt(rest)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid automaton input: transition %d: destination state", i)
		}
		rest = rest2

		if stateIdx < 0 || stateIdx >= numStates {
			return nil, errors.Newf("invalid automaton input: transition %d: source state %d out of range", i, stateIdx)
		}
		if nextState < 0 || nextState >= numStates {
			return nil, errors.Newf("invalid automaton input: transition %d: destination state %d out of range", i, nextState)
		}

		actionIdx, ok := alphabetIndex[action]
		if !ok {
			actionIdx = len(a.Alphabet)
			alphabetIndex[action] = actionIdx
			a.Alphabet = append(a.Alphabet, action)
		}

		a.States[stateIdx].Transitions = append(a.States[stateIdx].Transitions, Transition{
			ActionIndex: actionIdx,
			NextState:   nextState,
		})
	}

	return a, nil
}

// leadingInt parses the run of optional leading whitespace, optional sign,
// and digits at the start of s, the way atoi does (skipping spaces/tabs
// first, then stopping -- not failing -- at the first non-digit), and
// returns the remainder of s starting at that first non-digit. Skipping
// whitespace here is what lets Parse tolerate the "any whitespace layout"
// the format allows, e.g. a space after a comma or after '('.
func leadingInt(s string) (int, string, error) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, s, errors.New("expected a number")
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, err
	}
	return n, s[i:], nil
}
