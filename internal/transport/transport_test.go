// vi: sw=4 ts=4:

package transport

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/att/rendez/internal/ipc"
)

// startEchoServer wires a Server to a trivial handler goroutine that
// answers every request with a canned success or failure, standing in for
// internal/ss's real dispatch loop.
func startEchoServer(t *testing.T, errKind ErrKindFunc, handle func(req *ipc.Chmsg)) *Server {
	t.Helper()
	sockPath := filepath.Join(t.TempDir(), "rendez.sock")
	ln, err := net.Listen("unix", sockPath)
	require.NoError(t, err)

	reqCh := make(chan *ipc.Chmsg)
	go func() {
		for req := range reqCh {
			handle(req)
			req.Reply()
		}
	}()

	srv := &Server{Listener: ln, ReqCh: reqCh, ErrKind: errKind}
	go srv.Serve()
	t.Cleanup(func() { ln.Close() })

	return srv
}

func sockPathOf(s *Server) string {
	return s.Listener.Addr().String()
}

func TestClientAddAlphabetRoundTrip(t *testing.T) {
	srv := startEchoServer(t, nil, func(req *ipc.Chmsg) {
		r := req.ReqData.(*AlphabetRequest)
		req.RespData = &AlphabetReply{Indices: make([]int, len(r.Actions))}
	})
	client := NewClient(sockPathOf(srv))

	indices, err := client.AddAlphabet("p1", "a", []string{"x", "y"}, "/tmp/p1.fifo")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, indices)
}

func TestClientSynchroniseSurfacesRemoteError(t *testing.T) {
	srv := startEchoServer(t, func(error) ErrKind { return ErrKindPrecondition }, func(req *ipc.Chmsg) {
		req.State = assert.AnError
	})
	client := NewClient(sockPathOf(srv))

	err := client.Synchronise(3)
	require.Error(t, err)

	remote, ok := err.(*RemoteError)
	require.True(t, ok)
	assert.Equal(t, ErrKindPrecondition, remote.Kind)
}

func TestClientDeleteAck(t *testing.T) {
	srv := startEchoServer(t, nil, func(req *ipc.Chmsg) {
		req.RespData = &Ack{}
	})
	client := NewClient(sockPathOf(srv))

	assert.NoError(t, client.Delete("p1"))
}

func TestDispatchRejectsNilPayloadWithoutTouchingReqCh(t *testing.T) {
	s := &Server{}

	for _, req := range []Request{
		{Kind: KindAlphabet},
		{Kind: KindSensitivity},
		{Kind: KindSynchronise},
		{Kind: KindDelete},
	} {
		env := s.dispatch(&req)
		assert.False(t, env.Ok)
		assert.Equal(t, ErrKindMalformed, env.ErrKind)
	}
}

func TestRemoteErrorIsMatchesByKindOnly(t *testing.T) {
	a := &RemoteError{Kind: ErrKindIO, Message: "fifo closed"}
	b := &RemoteError{Kind: ErrKindIO, Message: "different message, same kind"}
	c := &RemoteError{Kind: ErrKindMalformed, Message: "fifo closed"}

	assert.True(t, a.Is(b))
	assert.False(t, a.Is(c))
}
