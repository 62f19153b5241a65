// vi: sw=4 ts=4:

package fsm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/att/rendez/internal/logging"
)

const sampleAut = `des (0,4,3)
(0,"go",1)
(1,"back",0)
(1,"advance",2)
(2,"advance",2)
`

func TestParseBuildsStatesAndAlphabet(t *testing.T) {
	a, err := Parse(sampleAut)
	require.NoError(t, err)

	assert.Len(t, a.States, 3)
	assert.Equal(t, []string{"go", "back", "advance"}, a.Alphabet)
	assert.Equal(t, 0, a.CurrentState)

	require.Len(t, a.States[0].Transitions, 1)
	assert.Equal(t, Transition{ActionIndex: 0, NextState: 1}, a.States[0].Transitions[0])

	require.Len(t, a.States[1].Transitions, 2)
	assert.Equal(t, Transition{ActionIndex: 1, NextState: 0}, a.States[1].Transitions[0])
	assert.Equal(t, Transition{ActionIndex: 2, NextState: 2}, a.States[1].Transitions[1])
}

func TestParseToleratesWhitespacePadding(t *testing.T) {
	a, err := Parse(`des ( 0 , 4 , 3 )
( 0 , "go" , 1 )
(1,"back",0)
(1, "advance", 2)
(2,"advance",2)
`)
	require.NoError(t, err)

	assert.Len(t, a.States, 3)
	assert.Equal(t, []string{"go", "back", "advance"}, a.Alphabet)
	require.Len(t, a.States[0].Transitions, 1)
	assert.Equal(t, Transition{ActionIndex: 0, NextState: 1}, a.States[0].Transitions[0])
}

func TestParseRejectsMissingHeader(t *testing.T) {
	_, err := Parse("not an automaton")
	assert.Error(t, err)
}

func TestParseRejectsOutOfRangeState(t *testing.T) {
	_, err := Parse(`des (0,1,1)
(0,"go",5)
`)
	assert.Error(t, err)
}

func TestSensitivitiesReflectsCurrentStateOnly(t *testing.T) {
	a, err := Parse(sampleAut)
	require.NoError(t, err)
	require.NoError(t, a.BindAlphabet([]int{10, 11, 12}))

	assert.Equal(t, []bool{true, false, false}, a.Sensitivities())

	require.NoError(t, a.ChangeState(10))
	assert.Equal(t, 1, a.CurrentState)
	assert.Equal(t, []bool{false, true, true}, a.Sensitivities())
}

func TestChangeStateBeforeBindFails(t *testing.T) {
	a, err := Parse(sampleAut)
	require.NoError(t, err)
	err = a.ChangeState(10)
	assert.ErrorIs(t, err, ErrNotBound)
}

func TestChangeStateUnknownGlobalIndexFails(t *testing.T) {
	a, err := Parse(sampleAut)
	require.NoError(t, err)
	require.NoError(t, a.BindAlphabet([]int{10, 11, 12}))

	err = a.ChangeState(999)
	assert.ErrorIs(t, err, ErrUnknownTransition)
	assert.Equal(t, 0, a.CurrentState, "state must not change on a failed lookup")
}

func TestChangeStateNotEnabledInCurrentStateFails(t *testing.T) {
	a, err := Parse(sampleAut)
	require.NoError(t, err)
	require.NoError(t, a.BindAlphabet([]int{10, 11, 12}))

	// "back" (index 1) is only enabled from state 1, not state 0.
	err = a.ChangeState(11)
	assert.ErrorIs(t, err, ErrUnknownTransition)
	assert.Equal(t, 0, a.CurrentState)
}

func TestChangeStateLastMatchWinsOnDuplicateAction(t *testing.T) {
	a, err := Parse(`des (0,2,3)
(0,"go",1)
(0,"go",2)
`)
	require.NoError(t, err)
	require.NoError(t, a.BindAlphabet([]int{10}))

	require.NoError(t, a.ChangeState(10))
	assert.Equal(t, 2, a.CurrentState, "duplicate action edges resolve to the last one in file order")
}

func TestBindAlphabetRejectsLengthMismatch(t *testing.T) {
	a, err := Parse(sampleAut)
	require.NoError(t, err)
	err = a.BindAlphabet([]int{1, 2})
	assert.Error(t, err)
}

func TestDumpLogsEdgesAndAlphabetMapping(t *testing.T) {
	a, err := Parse(sampleAut)
	require.NoError(t, err)
	require.NoError(t, a.BindAlphabet([]int{10, 11, 12}))

	var buf bytes.Buffer
	a.Dump(logging.New(1, &buf))

	out := buf.String()
	assert.Contains(t, out, `"(0, 0, 1)"`)
	assert.Contains(t, out, `"0 (go) => 10"`)
}
