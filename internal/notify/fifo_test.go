// vi: sw=4 ts=4:

package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendReceiveRoundTrip(t *testing.T) {
	path := Path(t.TempDir())
	require.NoError(t, Create(path))
	defer Remove(path)

	errCh := make(chan error, 1)
	go func() {
		errCh <- Send(path, 42)
	}()

	got, err := Receive(path)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	require.NoError(t, <-errCh)
}

func TestPathIsUniquePerCall(t *testing.T) {
	dir := t.TempDir()
	assert.NotEqual(t, Path(dir), Path(dir))
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	err := Remove(Path(t.TempDir()))
	assert.NoError(t, err)
}
