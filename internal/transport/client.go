// vi: sw=4 ts=4:

/*

	Mnemonic:	client
	Abstract:	The client-side stub cmd/gfsp drives instead of linking
				ss.h and calling ss_add_alphabet/ss_update_sensitivities/
				ss_synchronise/ss_delete_process directly: one Unix socket
				connection per call, a gob-encoded Request out, a
				gob-decoded Envelope back.
	Date:		31 July 2026
	Author:		rendez contributors
*/

package transport

import (
	"encoding/gob"
	"net"

	"github.com/cockroachdb/errors"
)

// Client dials sockPath fresh for every call -- the request volume this
// protocol sees (one call per FSM transition, at most) does not warrant a
// persistent connection pool.
type Client struct {
	SockPath string
}

// NewClient returns a Client bound to sockPath.
func NewClient(sockPath string) *Client {
	return &Client{SockPath: sockPath}
}

// AddAlphabet is the client-side equivalent of ss_add_alphabet.
func (c *Client) AddAlphabet(endpoint, prefix string, actions []string, fifoPath string) ([]int, error) {
	env, err := c.call(Request{Kind: KindAlphabet, Alphabet: &AlphabetRequest{
		Endpoint: endpoint, Prefix: prefix, Actions: actions, FifoPath: fifoPath,
	}})
	if err != nil {
		return nil, err
	}
	if env.AlphabetReply == nil {
		return nil, errors.New("server reply missing alphabet payload")
	}
	return env.AlphabetReply.Indices, nil
}

// UpdateSensitivities is the client-side equivalent of
// ss_update_sensitivities.
func (c *Client) UpdateSensitivities(endpoint string, vector []bool) error {
	_, err := c.call(Request{Kind: KindSensitivity, Sensitivity: &SensitivityRequest{
		Endpoint: endpoint, Vector: vector,
	}})
	return err
}

// Synchronise is the client-side equivalent of ss_synchronise.
func (c *Client) Synchronise(transitionIndex int) error {
	_, err := c.call(Request{Kind: KindSynchronise, Synchronise: &SynchroniseRequest{
		TransitionIndex: transitionIndex,
	}})
	return err
}

// Delete is the client-side equivalent of ss_delete_process.
func (c *Client) Delete(endpoint string) error {
	_, err := c.call(Request{Kind: KindDelete, Delete: &DeleteRequest{Endpoint: endpoint}})
	return err
}

func (c *Client) call(req Request) (*Envelope, error) {
	conn, err := net.Dial("unix", c.SockPath)
	if err != nil {
		return nil, errors.Wrap(err, "dial synchronisation server")
	}
	defer conn.Close()

	if err := gob.NewEncoder(conn).Encode(&req); err != nil {
		return nil, errors.Wrap(err, "encode request")
	}

	var env Envelope
	if err := gob.NewDecoder(conn).Decode(&env); err != nil {
		return nil, errors.Wrap(err, "decode reply")
	}

	if !env.Ok {
		return &env, remoteError(env)
	}
	return &env, nil
}

// remoteError turns an Envelope's string/kind pair back into a Go error
// tagged with the wire ErrKind, so callers can errors.Is-match by kind
// (see RemoteError/Is).
func remoteError(env Envelope) error {
	return &RemoteError{Kind: env.ErrKind, Message: env.Err}
}

// RemoteError is the client-visible form of a server-side failure.
type RemoteError struct {
	Kind    ErrKind
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, &transport.RemoteError{Kind: transport.ErrKindIO})
// match regardless of message text.
func (e *RemoteError) Is(target error) bool {
	other, ok := target.(*RemoteError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}
