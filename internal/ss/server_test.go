// vi: sw=4 ts=4:

package ss

import (
	"context"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/att/rendez/internal/logging"
	"github.com/att/rendez/internal/notify"
	"github.com/att/rendez/internal/transport"
)

// newTestServer wires a Server's dispatch loop to a transport.Server over
// a real Unix socket in a temp directory, mirroring how cmd/ssd wires the
// two at startup.
func newTestServer(t *testing.T) *transport.Client {
	t.Helper()

	sockPath := filepath.Join(t.TempDir(), "rendez.sock")
	ln, err := net.Listen("unix", sockPath)
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	srv := NewServer(logging.New(0, io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.Run(ctx)

	tsrv := &transport.Server{Listener: ln, ReqCh: srv.ReqCh, ErrKind: KindOf}
	go tsrv.Serve()

	return transport.NewClient(sockPath)
}

// scenario 3/5 from spec.md sec 8, driven end-to-end over the real socket
// and real FIFOs: two processes share one transition name and must both
// become sensitive before it fires, in registration order, exactly once
// per round.
func TestEndToEndSharedTransitionRendezvous(t *testing.T) {
	client := newTestServer(t)
	fifoDir := t.TempDir()

	fifo1 := notify.Path(fifoDir)
	require.NoError(t, notify.Create(fifo1))
	defer notify.Remove(fifo1)

	fifo2 := notify.Path(fifoDir)
	require.NoError(t, notify.Create(fifo2))
	defer notify.Remove(fifo2)

	idx1, err := client.AddAlphabet("proc1", "shared", []string{"go"}, fifo1)
	require.NoError(t, err)
	idx2, err := client.AddAlphabet("proc2", "shared", []string{"go"}, fifo2)
	require.NoError(t, err)
	require.Equal(t, idx1, idx2)

	require.NoError(t, client.UpdateSensitivities("proc1", []bool{true}))
	require.NoError(t, client.UpdateSensitivities("proc2", []bool{true}))

	recv1 := make(chan int, 1)
	recv2 := make(chan int, 1)
	go func() { v, _ := notify.Receive(fifo1); recv1 <- v }()
	go func() { v, _ := notify.Receive(fifo2); recv2 <- v }()

	require.NoError(t, client.Synchronise(idx1[0]))

	select {
	case v := <-recv1:
		assert.Equal(t, idx1[0], v)
	case <-time.After(2 * time.Second):
		t.Fatal("proc1 was never notified")
	}
	select {
	case v := <-recv2:
		assert.Equal(t, idx1[0], v)
	case <-time.After(2 * time.Second):
		t.Fatal("proc2 was never notified")
	}

	// quiescence gate: a second synchronise must fail until both update.
	err = client.Synchronise(idx1[0])
	require.Error(t, err)

	require.NoError(t, client.UpdateSensitivities("proc1", []bool{true}))
	err = client.Synchronise(idx1[0])
	require.Error(t, err, "proc2 still owes its update")

	require.NoError(t, client.UpdateSensitivities("proc2", []bool{true}))

	go func() { v, _ := notify.Receive(fifo1); recv1 <- v }()
	go func() { v, _ := notify.Receive(fifo2); recv2 <- v }()
	require.NoError(t, client.Synchronise(idx1[0]))

	select {
	case <-recv1:
	case <-time.After(2 * time.Second):
		t.Fatal("proc1 was never notified on second round")
	}
	select {
	case <-recv2:
	case <-time.After(2 * time.Second):
		t.Fatal("proc2 was never notified on second round")
	}
}

// scenario 6: deleting a participant mid-life leaves the transition
// depending only on the survivor, driven over the real transport.
func TestEndToEndDeleteMidLife(t *testing.T) {
	client := newTestServer(t)
	fifoDir := t.TempDir()

	fifo1 := notify.Path(fifoDir)
	require.NoError(t, notify.Create(fifo1))
	defer notify.Remove(fifo1)
	fifo2 := notify.Path(fifoDir)
	require.NoError(t, notify.Create(fifo2))
	defer notify.Remove(fifo2)

	idx, err := client.AddAlphabet("proc1", "shared", []string{"go"}, fifo1)
	require.NoError(t, err)
	_, err = client.AddAlphabet("proc2", "shared", []string{"go"}, fifo2)
	require.NoError(t, err)

	require.NoError(t, client.UpdateSensitivities("proc1", []bool{true}))
	require.NoError(t, client.UpdateSensitivities("proc2", []bool{true}))

	require.NoError(t, client.Delete("proc1"))

	recv2 := make(chan int, 1)
	go func() { v, _ := notify.Receive(fifo2); recv2 <- v }()

	require.NoError(t, client.Synchronise(idx[0]))

	select {
	case v := <-recv2:
		assert.Equal(t, idx[0], v)
	case <-time.After(2 * time.Second):
		t.Fatal("proc2 was never notified")
	}
}

func TestAlphabetRejectsReRegistrationOverTransport(t *testing.T) {
	client := newTestServer(t)
	fifo := notify.Path(t.TempDir())
	require.NoError(t, notify.Create(fifo))
	defer notify.Remove(fifo)

	_, err := client.AddAlphabet("proc1", "a", []string{"x"}, fifo)
	require.NoError(t, err)

	_, err = client.AddAlphabet("proc1", "a", []string{"y"}, fifo)
	require.Error(t, err)

	remote, ok := err.(*transport.RemoteError)
	require.True(t, ok)
	assert.Equal(t, transport.ErrKindInvalidArg, remote.Kind)
}
